package client

import (
	"context"
	"net/http"

	"github.com/cosmic-astrology/siteapi/internal/constants"
	internalhttp "github.com/cosmic-astrology/siteapi/internal/http"
	"github.com/cosmic-astrology/siteapi/pkg/siteapi"
)

var (
	opVerifyAdmin        = operation{name: "VerifyAdmin", action: "verifying admin"}
	opCreateHeroSlide    = operation{name: "CreateHeroSlide", action: "creating hero slide"}
	opCreateGallerySlide = operation{name: "CreateGallerySlide", action: "creating gallery slide"}
	opGetTestimonials    = operation{name: "GetTestimonials", action: "fetching testimonials"}
)

// VerifyAdmin implements siteapi.AdminClient.VerifyAdmin. A successful login
// sets the session cookie used by the other admin calls.
func (c *Client) VerifyAdmin(ctx context.Context, password string) *siteapi.Envelope {
	return c.call(ctx, opVerifyAdmin, &internalhttp.Request{
		Method: http.MethodPost,
		Path:   constants.PathAdminLogin,
		Body:   &siteapi.AdminLoginRequest{Password: password},
	})
}

// CreateHeroSlide implements siteapi.AdminClient.CreateHeroSlide.
func (c *Client) CreateHeroSlide(ctx context.Context, slide interface{}) *siteapi.Envelope {
	return c.call(ctx, opCreateHeroSlide, &internalhttp.Request{
		Method: http.MethodPost,
		Path:   constants.PathAdminHeroSlides,
		Body:   slide,
	})
}

// CreateGallerySlide implements siteapi.AdminClient.CreateGallerySlide.
func (c *Client) CreateGallerySlide(ctx context.Context, slide interface{}) *siteapi.Envelope {
	return c.call(ctx, opCreateGallerySlide, &internalhttp.Request{
		Method: http.MethodPost,
		Path:   constants.PathAdminGallerySlides,
		Body:   slide,
	})
}

// GetTestimonials implements siteapi.AdminClient.GetTestimonials.
func (c *Client) GetTestimonials(ctx context.Context) *siteapi.Envelope {
	return c.call(ctx, opGetTestimonials, &internalhttp.Request{
		Method: http.MethodGet,
		Path:   constants.PathAdminTestimonials,
	})
}
