package siteapi

// Lead sources recognized by the backend.
const (
	// SourceContactForm routes a lead to the contact endpoint.
	SourceContactForm = "Contact Form"

	// SourceWebsite is the backend default for bookings without a source.
	SourceWebsite = "Website"
)

// Lead is a contact or booking submission. Its shape is owned by the server;
// the client only reads "source".
type Lead map[string]interface{}

// Source returns the lead's "source" field, or "" when absent or not a string.
func (l Lead) Source() string {
	source, _ := l["source"].(string)

	return source
}

// IsContactForm reports whether the lead routes to the contact endpoint.
func (l Lead) IsContactForm() bool {
	return l.Source() == SourceContactForm
}

// Slide represents a hero or gallery slide.
type Slide struct {
	ID           int    `json:"id"                    yaml:"id"`
	Title        string `json:"title"                 yaml:"title"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
	Image        string `json:"image"                 yaml:"image"`
	DisplayOrder int    `json:"display_order"         yaml:"display_order"`
	IsActive     int    `json:"is_active"             yaml:"is_active"`
	CreatedAt    string `json:"created_at,omitempty"  yaml:"created_at,omitempty"`
}

// SlidesResponse is the body of the hero and gallery slide endpoints.
type SlidesResponse struct {
	Success bool    `json:"success"         yaml:"success"`
	Slides  []Slide `json:"slides"          yaml:"slides"`
	Error   string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// SlideCreateRequest is the body for creating a hero or gallery slide.
// Gallery slides ignore Description.
type SlideCreateRequest struct {
	Title        string `json:"title"                 yaml:"title"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
	Image        string `json:"image"                 yaml:"image"`
	DisplayOrder int    `json:"display_order"         yaml:"display_order"`
}

// SocialMedia groups the business social links.
type SocialMedia struct {
	Facebook  string `json:"facebook,omitempty"  yaml:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty" yaml:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty"   yaml:"twitter,omitempty"`
	YouTube   string `json:"youtube,omitempty"   yaml:"youtube,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"  yaml:"linkedin,omitempty"`
}

// BusinessInfo is the flattened body of /api/business-info.
type BusinessInfo struct {
	Success         bool        `json:"success"                    yaml:"success"`
	Error           string      `json:"error,omitempty"            yaml:"error,omitempty"`
	BusinessName    string      `json:"business_name,omitempty"    yaml:"business_name,omitempty"`
	EmailAddress    string      `json:"email_address,omitempty"    yaml:"email_address,omitempty"`
	WhatsAppNumber  string      `json:"whatsapp_number,omitempty"  yaml:"whatsapp_number,omitempty"`
	BusinessAddress string      `json:"business_address,omitempty" yaml:"business_address,omitempty"`
	GoogleMapsURL   string      `json:"google_maps_url,omitempty"  yaml:"google_maps_url,omitempty"`
	GoogleReviewURL string      `json:"google_review_url,omitempty" yaml:"google_review_url,omitempty"`
	HoursWeekday    string      `json:"hours_weekday,omitempty"    yaml:"hours_weekday,omitempty"`
	HoursSunday     string      `json:"hours_sunday,omitempty"     yaml:"hours_sunday,omitempty"`
	SocialMedia     SocialMedia `json:"socialMedia"                yaml:"social_media"`
	UpdatedAt       string      `json:"updated_at,omitempty"       yaml:"updated_at,omitempty"`
}

// ChatbotConfig is the chatbot configuration. All fields are optional on
// update; the backend stores missing fields as null.
type ChatbotConfig struct {
	Services        []string `json:"services,omitempty"          yaml:"services,omitempty"`
	GoogleMapsURL   string   `json:"google_maps_url,omitempty"   yaml:"google_maps_url,omitempty"`
	GoogleReviewURL string   `json:"google_review_url,omitempty" yaml:"google_review_url,omitempty"`
	FacebookURL     string   `json:"facebook_url,omitempty"      yaml:"facebook_url,omitempty"`
	InstagramURL    string   `json:"instagram_url,omitempty"     yaml:"instagram_url,omitempty"`
	TwitterURL      string   `json:"twitter_url,omitempty"       yaml:"twitter_url,omitempty"`
	YouTubeURL      string   `json:"youtube_url,omitempty"       yaml:"youtube_url,omitempty"`
	LinkedInURL     string   `json:"linkedin_url,omitempty"      yaml:"linkedin_url,omitempty"`
	HoursWeekday    string   `json:"hours_weekday,omitempty"     yaml:"hours_weekday,omitempty"`
	HoursSunday     string   `json:"hours_sunday,omitempty"      yaml:"hours_sunday,omitempty"`
	UpdatedAt       string   `json:"updated_at,omitempty"        yaml:"updated_at,omitempty"`
}

// ChatbotConfigResponse is the body of GET /api/chatbot-config.
type ChatbotConfigResponse struct {
	Success bool           `json:"success"         yaml:"success"`
	Config  *ChatbotConfig `json:"config"          yaml:"config"`
	Error   string         `json:"error,omitempty" yaml:"error,omitempty"`
}

// Booking is a lead stored by the bookings endpoint.
type Booking struct {
	ID          int    `json:"id"                     yaml:"id"`
	Name        string `json:"name"                   yaml:"name"`
	Phone       string `json:"phone"                  yaml:"phone"`
	Email       string `json:"email,omitempty"        yaml:"email,omitempty"`
	DOB         string `json:"dob,omitempty"          yaml:"dob,omitempty"`
	Service     string `json:"service"                yaml:"service"`
	BookingDate string `json:"booking_date"           yaml:"booking_date"`
	BookingTime string `json:"booking_time"           yaml:"booking_time"`
	Status      string `json:"status,omitempty"       yaml:"status,omitempty"`
	Notes       string `json:"notes,omitempty"        yaml:"notes,omitempty"`
	Source      string `json:"source,omitempty"       yaml:"source,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"   yaml:"created_at,omitempty"`
}

// ContactMessage is a lead stored by the contact endpoint.
type ContactMessage struct {
	ID        int    `json:"id"                   yaml:"id"`
	Name      string `json:"name"                 yaml:"name"`
	Email     string `json:"email"                yaml:"email"`
	Phone     string `json:"phone,omitempty"      yaml:"phone,omitempty"`
	Subject   string `json:"subject,omitempty"    yaml:"subject,omitempty"`
	Message   string `json:"message"              yaml:"message"`
	Status    string `json:"status,omitempty"     yaml:"status,omitempty"`
	CreatedAt string `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

// LeadRecord is a row of the combined GetLeads list. Bookings and contact
// messages share one view; fields absent from a row stay empty.
type LeadRecord struct {
	ID          int    `json:"id"                     yaml:"id"`
	Name        string `json:"name"                   yaml:"name"`
	Phone       string `json:"phone,omitempty"        yaml:"phone,omitempty"`
	Email       string `json:"email,omitempty"        yaml:"email,omitempty"`
	Service     string `json:"service,omitempty"      yaml:"service,omitempty"`
	BookingDate string `json:"booking_date,omitempty" yaml:"booking_date,omitempty"`
	BookingTime string `json:"booking_time,omitempty" yaml:"booking_time,omitempty"`
	Notes       string `json:"notes,omitempty"        yaml:"notes,omitempty"`
	Subject     string `json:"subject,omitempty"      yaml:"subject,omitempty"`
	Message     string `json:"message,omitempty"      yaml:"message,omitempty"`
	Source      string `json:"source,omitempty"       yaml:"source,omitempty"`
	Status      string `json:"status,omitempty"       yaml:"status,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"   yaml:"created_at,omitempty"`
}

// IsBooking reports whether the record came from the bookings table.
func (r LeadRecord) IsBooking() bool {
	return r.BookingDate != "" || r.Service != ""
}

// LeadsResponse is the body of the aggregated GetLeads envelope.
type LeadsResponse struct {
	Success bool         `json:"success"         yaml:"success"`
	Leads   []LeadRecord `json:"leads"           yaml:"leads"`
	Error   string       `json:"error,omitempty" yaml:"error,omitempty"`
}

// Testimonial is a customer review.
type Testimonial struct {
	ID               int    `json:"id"                           yaml:"id"`
	Name             string `json:"name"                         yaml:"name"`
	Rating           int    `json:"rating"                       yaml:"rating"`
	ReviewText       string `json:"review_text"                  yaml:"review_text"`
	GoogleAccountURL string `json:"google_account_url,omitempty" yaml:"google_account_url,omitempty"`
	GooglePlaceID    string `json:"google_place_id,omitempty"    yaml:"google_place_id,omitempty"`
	IsSelected       int    `json:"is_selected"                  yaml:"is_selected"`
	DisplayOrder     int    `json:"display_order"                yaml:"display_order"`
	CreatedAt        string `json:"created_at,omitempty"         yaml:"created_at,omitempty"`
}

// TestimonialsResponse is the body of /api/admin/testimonials.
type TestimonialsResponse struct {
	Success      bool          `json:"success"         yaml:"success"`
	Testimonials []Testimonial `json:"testimonials"    yaml:"testimonials"`
	Error        string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// MutationResponse is the body returned by create, update, submit, and login
// endpoints.
type MutationResponse struct {
	Success bool   `json:"success"           yaml:"success"`
	ID      int    `json:"id,omitempty"      yaml:"id,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	Error   string `json:"error,omitempty"   yaml:"error,omitempty"`
}

// AdminLoginRequest is the body of /api/admin/login.
type AdminLoginRequest struct {
	Password string `json:"password"`
}
