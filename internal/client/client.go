package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	internalhttp "github.com/cosmic-astrology/siteapi/internal/http"
	"github.com/cosmic-astrology/siteapi/pkg/siteapi"
)

// Client implements the siteapi.Client interface.
type Client struct {
	httpClient *internalhttp.Client
	baseURL    string
	logger     siteapi.Logger
}

var _ siteapi.Client = (*Client)(nil)

// operation names a client method for logs and error messages.
type operation struct {
	name   string
	action string
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *siteapi.Config) []internalhttp.Option {
	var httpOpts []internalhttp.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, internalhttp.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, internalhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, internalhttp.WithHTTPClient(config.HTTPClient))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, internalhttp.WithTimeout(config.HTTPTimeout))
	}

	if config.DisableCookies {
		httpOpts = append(httpOpts, internalhttp.WithoutCookies())
	}

	if config.Interceptors != nil {
		httpOpts = append(httpOpts, internalhttp.WithInterceptors(config.Interceptors))
	}

	return httpOpts
}

// New creates a new site API client. config.BaseURL must already be normalized.
func New(config *siteapi.Config) (*Client, error) {
	if config == nil {
		return nil, siteapi.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, siteapi.ErrBaseURLRequired
	}

	httpClient := internalhttp.NewClient(config.BaseURL, createHTTPClientOptions(config)...)

	return &Client{
		httpClient: httpClient,
		baseURL:    config.BaseURL,
		logger:     config.Logger,
	}, nil
}

// BaseURL returns the origin requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// call performs one request and normalizes the outcome. Failures are logged.
func (c *Client) call(ctx context.Context, op operation, req *internalhttp.Request) *siteapi.Envelope {
	env, opErr := c.fetch(ctx, op, req)
	if opErr != nil {
		return c.failed(opErr)
	}

	return env
}

// fetch performs one request without logging failures.
func (c *Client) fetch(ctx context.Context, op operation, req *internalhttp.Request) (*siteapi.Envelope, *siteapi.OperationError) {
	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		statusCode := 0
		if resp != nil {
			statusCode = resp.StatusCode
		}

		return nil, newOperationError(op, transportErrorKind(err), statusCode, err)
	}

	env, err := siteapi.NewEnvelope(resp.StatusCode, resp.Body)
	if err != nil {
		if !isSuccessStatus(resp.StatusCode) {
			err = fmt.Errorf("%w %d: %w", siteapi.ErrUnexpectedStatus, resp.StatusCode, err)

			return nil, newOperationError(op, siteapi.ErrorKindHTTPStatus, resp.StatusCode, err)
		}

		return nil, newOperationError(op, siteapi.ErrorKindParse, resp.StatusCode, err)
	}

	return env, nil
}

// failed reports opErr to the logger and wraps it in an envelope.
func (c *Client) failed(opErr *siteapi.OperationError) *siteapi.Envelope {
	if c.logger != nil {
		fields := map[string]interface{}{
			"operation": opErr.Op,
			"kind":      string(opErr.Kind),
			"error":     opErr.Error(),
		}

		if opErr.StatusCode != 0 {
			fields["status_code"] = opErr.StatusCode
		}

		c.logger.Error("Operation failed", fields)
	}

	return siteapi.Failure(opErr)
}

func newOperationError(op operation, kind siteapi.ErrorKind, statusCode int, err error) *siteapi.OperationError {
	return &siteapi.OperationError{
		Op:         op.name,
		Kind:       kind,
		StatusCode: statusCode,
		Err:        fmt.Errorf("%s: %w", op.action, err),
	}
}

func transportErrorKind(err error) siteapi.ErrorKind {
	if errors.Is(err, internalhttp.ErrEncodeBody) {
		return siteapi.ErrorKindEncode
	}

	return siteapi.ErrorKindNetwork
}

func isSuccessStatus(statusCode int) bool {
	return statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices
}

// loggerAdapter adapts siteapi.Logger to internalhttp.Logger.
type loggerAdapter struct {
	logger siteapi.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
