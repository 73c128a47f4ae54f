package client

import (
	"context"
	"net/http"

	"github.com/cosmic-astrology/siteapi/internal/constants"
	internalhttp "github.com/cosmic-astrology/siteapi/internal/http"
	"github.com/cosmic-astrology/siteapi/pkg/siteapi"
)

var (
	opGetHeroSlides    = operation{name: "GetHeroSlides", action: "fetching hero slides"}
	opGetGallerySlides = operation{name: "GetGallerySlides", action: "fetching gallery slides"}
	opGetBusinessInfo  = operation{name: "GetBusinessInfo", action: "fetching business info"}
)

// GetHeroSlides implements siteapi.ContentClient.GetHeroSlides.
func (c *Client) GetHeroSlides(ctx context.Context) *siteapi.Envelope {
	return c.call(ctx, opGetHeroSlides, &internalhttp.Request{
		Method: http.MethodGet,
		Path:   constants.PathHeroSlides,
	})
}

// GetGallerySlides implements siteapi.ContentClient.GetGallerySlides.
func (c *Client) GetGallerySlides(ctx context.Context) *siteapi.Envelope {
	return c.call(ctx, opGetGallerySlides, &internalhttp.Request{
		Method: http.MethodGet,
		Path:   constants.PathGallerySlides,
	})
}

// GetBusinessInfo implements siteapi.ContentClient.GetBusinessInfo.
func (c *Client) GetBusinessInfo(ctx context.Context) *siteapi.Envelope {
	return c.call(ctx, opGetBusinessInfo, &internalhttp.Request{
		Method: http.MethodGet,
		Path:   constants.PathBusinessInfo,
	})
}
