package client

import (
	"context"
	"net/http"

	"github.com/cosmic-astrology/siteapi/internal/constants"
	internalhttp "github.com/cosmic-astrology/siteapi/internal/http"
	"github.com/cosmic-astrology/siteapi/pkg/siteapi"
)

var (
	opGetChatbotConfig    = operation{name: "GetChatbotConfig", action: "fetching chatbot config"}
	opUpdateChatbotConfig = operation{name: "UpdateChatbotConfig", action: "updating chatbot config"}
)

// GetChatbotConfig implements siteapi.ChatbotClient.GetChatbotConfig.
func (c *Client) GetChatbotConfig(ctx context.Context) *siteapi.Envelope {
	return c.call(ctx, opGetChatbotConfig, &internalhttp.Request{
		Method: http.MethodGet,
		Path:   constants.PathChatbotConfig,
	})
}

// UpdateChatbotConfig implements siteapi.ChatbotClient.UpdateChatbotConfig.
func (c *Client) UpdateChatbotConfig(ctx context.Context, config interface{}) *siteapi.Envelope {
	return c.call(ctx, opUpdateChatbotConfig, &internalhttp.Request{
		Method: http.MethodPost,
		Path:   constants.PathChatbotConfig,
		Body:   config,
	})
}
