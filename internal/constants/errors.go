package constants

import "errors"

// Configuration errors.
var (
	ErrNoBaseURLConfigured = errors.New("no API base URL configured, use --api or set SITEAPI_API")
	ErrInvalidLogLevel     = errors.New("invalid log level")
	ErrInvalidOutputFormat = errors.New("invalid output format")
)

// Command errors.
var (
	ErrOperationFailed     = errors.New("operation failed")
	ErrPasswordRequired    = errors.New("password is required")
	ErrNotATerminal        = errors.New("stdin is not a terminal, use --password")
	ErrTitleRequired       = errors.New("--title is required")
	ErrImageRequired       = errors.New("--image is required")
	ErrFileRequired        = errors.New("--file is required")
	ErrInvalidThreadCount  = errors.New("invalid thread count")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrNATSURLRequired     = errors.New("--nats-url is required")
)

// Import errors.
var (
	ErrEmptyRecord     = errors.New("record has no fields")
	ErrInvalidCSVInput = errors.New("CSV input must have a header row")
	ErrInvalidDate     = errors.New("invalid date")
)

var (
	ErrUnknownConfigKey = errors.New("unknown configuration key")
)
