package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/sourcegraph/conc/pool"

	"github.com/cosmic-astrology/siteapi/internal/constants"
	internalhttp "github.com/cosmic-astrology/siteapi/internal/http"
	"github.com/cosmic-astrology/siteapi/pkg/siteapi"
)

var (
	opSubmitLead = operation{name: "SubmitLead", action: "submitting lead"}
	opGetLeads   = operation{name: "GetLeads", action: "fetching leads"}
)

// SubmitLead implements siteapi.LeadsClient.SubmitLead.
func (c *Client) SubmitLead(ctx context.Context, lead siteapi.Lead) *siteapi.Envelope {
	if lead == nil {
		lead = siteapi.Lead{}
	}

	return c.call(ctx, opSubmitLead, &internalhttp.Request{
		Method: http.MethodPost,
		Path:   leadPath(lead),
		Body:   lead,
	})
}

// leadPath routes contact-form leads to the contact endpoint and everything
// else to bookings.
func leadPath(lead siteapi.Lead) string {
	if lead.IsContactForm() {
		return constants.PathContact
	}

	return constants.PathBookings
}

// GetLeads implements siteapi.LeadsClient.GetLeads. Both fetches always run to
// completion; a bookings failure takes precedence over a messages failure.
func (c *Client) GetLeads(ctx context.Context) *siteapi.Envelope {
	var (
		bookings, messages       *siteapi.Envelope
		bookingsErr, messagesErr *siteapi.OperationError
	)

	fetches := pool.New().WithErrors()

	fetches.Go(func() error {
		bookings, bookingsErr = c.fetch(ctx, opGetLeads, &internalhttp.Request{
			Method: http.MethodGet,
			Path:   constants.PathAdminBookings,
		})
		if bookingsErr != nil {
			return bookingsErr
		}

		return nil
	})

	fetches.Go(func() error {
		messages, messagesErr = c.fetch(ctx, opGetLeads, &internalhttp.Request{
			Method: http.MethodGet,
			Path:   constants.PathAdminMessages,
		})
		if messagesErr != nil {
			return messagesErr
		}

		return nil
	})

	if err := fetches.Wait(); err != nil {
		if bookingsErr != nil {
			return c.failed(bookingsErr)
		}

		return c.failed(messagesErr)
	}

	bookingItems, err := listField(bookings, constants.FieldBookings)
	if err != nil {
		return c.failed(newOperationError(opGetLeads, siteapi.ErrorKindParse, bookings.StatusCode, err))
	}

	messageItems, err := listField(messages, constants.FieldMessages)
	if err != nil {
		return c.failed(newOperationError(opGetLeads, siteapi.ErrorKindParse, messages.StatusCode, err))
	}

	leads := make([]interface{}, 0, len(bookingItems)+len(messageItems))
	leads = append(leads, bookingItems...)
	leads = append(leads, messageItems...)

	env, err := siteapi.NewEnvelopeFromValue(map[string]interface{}{
		"success":            true,
		constants.FieldLeads: leads,
	})
	if err != nil {
		return c.failed(newOperationError(opGetLeads, siteapi.ErrorKindParse, 0, err))
	}

	return env
}

// listField returns the array stored under key. A missing key or a falsy
// value (null, false, 0, "") yields an empty list; a null body or any other
// non-array value is an error.
func listField(env *siteapi.Envelope, key string) ([]interface{}, error) {
	if env.Body == nil {
		return nil, fmt.Errorf("reading %q: %w", key, siteapi.ErrNullBody)
	}

	value := env.Field(key)
	if isFalsy(value) {
		return []interface{}{}, nil
	}

	items, ok := value.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: %q is %T", siteapi.ErrNotAList, key, value)
	}

	return items, nil
}

func isFalsy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case bool:
		return !v
	case string:
		return v == ""
	case json.Number:
		f, err := strconv.ParseFloat(v.String(), 64)

		return err == nil && f == 0
	case float64:
		return v == 0
	default:
		return false
	}
}
