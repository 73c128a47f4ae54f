package leadimport

import (
	"fmt"
	"strings"

	"github.com/nleeper/goment"

	"github.com/cosmic-astrology/siteapi/internal/constants"
	"github.com/cosmic-astrology/siteapi/pkg/siteapi"
)

const fieldBookingDate = "booking_date"

// NormalizeDate rewrites value to YYYY-MM-DD. ISO dates pass through;
// anything else is parsed with layout, a goment format such as DD.MM.YYYY.
func NormalizeDate(value, layout string) (string, error) {
	value = strings.TrimSpace(value)

	for _, candidate := range []string{constants.BookingDateLayout, layout} {
		if candidate == "" {
			continue
		}

		parsed, err := goment.New(value, candidate)
		if err != nil || parsed == nil {
			continue
		}

		// goment is lenient; only accept a parse that formats back to the input.
		if parsed.Format(candidate) != value {
			continue
		}

		return parsed.Format(constants.BookingDateLayout), nil
	}

	return "", fmt.Errorf("%w: %q does not match %s or %s", constants.ErrInvalidDate, value, constants.BookingDateLayout, layout)
}

// Normalize returns a copy of lead ready for submission. Empty records are
// rejected and a string booking_date is rewritten to YYYY-MM-DD.
func Normalize(lead siteapi.Lead, layout string) (siteapi.Lead, error) {
	if len(lead) == 0 {
		return nil, constants.ErrEmptyRecord
	}

	normalized := make(siteapi.Lead, len(lead))
	for key, value := range lead {
		normalized[key] = value
	}

	date, ok := normalized[fieldBookingDate].(string)
	if ok && strings.TrimSpace(date) != "" {
		iso, err := NormalizeDate(date, layout)
		if err != nil {
			return nil, err
		}

		normalized[fieldBookingDate] = iso
	}

	return normalized, nil
}
