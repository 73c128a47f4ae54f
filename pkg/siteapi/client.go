package siteapi

import (
	"context"
	"net/http"
	"time"
)

// ContentClient provides access to the public site content endpoints.
type ContentClient interface {
	GetHeroSlides(ctx context.Context) *Envelope
	GetGallerySlides(ctx context.Context) *Envelope
	GetBusinessInfo(ctx context.Context) *Envelope
}

// ChatbotClient reads and writes the chatbot configuration.
type ChatbotClient interface {
	GetChatbotConfig(ctx context.Context) *Envelope
	// UpdateChatbotConfig posts config verbatim as the JSON body.
	UpdateChatbotConfig(ctx context.Context, config interface{}) *Envelope
}

// LeadsClient submits and lists leads.
type LeadsClient interface {
	// SubmitLead posts to the contact endpoint when lead.Source() equals
	// SourceContactForm and to the bookings endpoint otherwise.
	SubmitLead(ctx context.Context, lead Lead) *Envelope
	// GetLeads returns {"success":true,"leads":[bookings..., messages...]}.
	// If either underlying request fails the whole call fails.
	GetLeads(ctx context.Context) *Envelope
}

// AdminClient provides access to the administrative endpoints.
type AdminClient interface {
	VerifyAdmin(ctx context.Context, password string) *Envelope
	CreateHeroSlide(ctx context.Context, slide interface{}) *Envelope
	CreateGallerySlide(ctx context.Context, slide interface{}) *Envelope
	GetTestimonials(ctx context.Context) *Envelope
}

// Client is the full site API surface. Every method is total: it always
// returns a non-nil envelope and never panics on transport or decode failures.
type Client interface {
	ContentClient
	ChatbotClient
	LeadsClient
	AdminClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a siteapi.Client.
//
// # Base URL
//
// BaseURL is the origin serving /api (e.g. "https://cosmicastrology.example").
// siteclient.New trims a trailing slash and adds "https://" when no scheme is
// present.
//
// # Timeouts and cancellation
//
// The client imposes no timeout of its own. Per-call deadlines belong in the
// context passed to each method; HTTPTimeout is an optional transport-wide
// ceiling and is disabled when zero.
//
// # Sessions
//
// The admin login endpoint establishes a server-side session cookie. Cookies
// are kept in an in-memory jar shared by all calls on the client unless
// DisableCookies is set.
type Config struct {
	// BaseURL is required.
	BaseURL string

	// HTTPTimeout: optional transport-wide timeout. Zero means none.
	HTTPTimeout time.Duration
	// Debug: enables HTTP request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger. Failed operations are reported at
	// error level with the operation name, error kind, and message.
	Logger Logger
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// DisableCookies turns off the session cookie jar.
	DisableCookies bool
	// Interceptors: optional chain run around every request.
	Interceptors *InterceptorChain
	// HTTPClient: optional base HTTP client for the transport.
	HTTPClient *http.Client
}
