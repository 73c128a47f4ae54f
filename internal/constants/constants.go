package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// API endpoint paths, relative to the base origin.
const (
	PathHeroSlides         = "/api/hero-slides"
	PathGallerySlides      = "/api/gallery-slides"
	PathBusinessInfo       = "/api/business-info"
	PathChatbotConfig      = "/api/chatbot-config"
	PathContact            = "/api/contact"
	PathBookings           = "/api/bookings"
	PathAdminLogin         = "/api/admin/login"
	PathAdminBookings      = "/api/admin/bookings"
	PathAdminMessages      = "/api/admin/messages"
	PathAdminHeroSlides    = "/api/admin/hero-slides"
	PathAdminGallerySlides = "/api/admin/gallery-slides"
	PathAdminTestimonials  = "/api/admin/testimonials"
)

// Response fields read by the client.
const (
	// FieldBookings holds the list returned by the admin bookings endpoint.
	FieldBookings = "bookings"

	// FieldMessages holds the list returned by the admin messages endpoint.
	FieldMessages = "messages"

	// FieldLeads holds the combined list of the GetLeads envelope.
	FieldLeads = "leads"
)

// HTTP headers and media types.
const (
	MediaTypeJSON     = "application/json"
	HeaderAccept      = "Accept"
	HeaderContentType = "Content-Type"
	HeaderUserAgent   = "User-Agent"

	// DefaultUserAgent identifies the client when none is configured.
	DefaultUserAgent = "siteapi-go"
)

// HTTP and network timeouts.
const (
	// ShortHTTPTimeout is used by the CLI for quick operations.
	ShortHTTPTimeout = 10 * time.Second

	// DefaultHTTPTimeout is the CLI default per-command timeout.
	DefaultHTTPTimeout = 30 * time.Second
)

// Concurrency limits for bulk lead import.
const (
	// DefaultConcurrencyLimit is the default number of import workers.
	DefaultConcurrencyLimit = 3

	// MaxConcurrencyLimit caps the number of import workers.
	MaxConcurrencyLimit = 10
)

// Lead defaults applied by the backend and mirrored by the import command.
const (
	// DefaultBookingTime is used by the backend when booking_time is empty.
	DefaultBookingTime = "10:00:00"

	// BookingDateLayout is the goment layout of booking_date.
	BookingDateLayout = "YYYY-MM-DD"

	// DefaultImportDateLayout is the goment layout tried for non-ISO dates.
	DefaultImportDateLayout = "DD.MM.YYYY"
)

// Output formatting.
const (
	// OutputFormatTable is the default CLI output.
	OutputFormatTable = "table"

	// OutputFormatJSON renders envelopes as JSON.
	OutputFormatJSON = "json"

	// OutputFormatYAML renders envelopes as YAML.
	OutputFormatYAML = "yaml"

	// JSONIndentSize is the indent used for JSON and YAML output.
	JSONIndentSize = 2

	// MaxCellWidth truncates long table cells.
	MaxCellWidth = 48
)

// Configuration defaults.
const (
	// ConfigDirName is the directory under $HOME holding config.yml.
	ConfigDirName = ".siteapi"

	// EnvPrefix prefixes environment variables read by the CLI.
	EnvPrefix = "SITEAPI"

	// DefaultBaseURL targets a local development backend.
	DefaultBaseURL = "http://localhost:5000"

	// DefaultNATSSubject is the subject the lead relay subscribes to.
	DefaultNATSSubject = "site.leads.submit"

	// RelayDrainTimeout bounds how long the relay finishes in-flight leads on shutdown.
	RelayDrainTimeout = 30 * time.Second

	// RelayPendingMessages is the relay's delivery buffer. Messages beyond it
	// are dropped by the NATS client as a slow consumer.
	RelayPendingMessages = 1024
)
