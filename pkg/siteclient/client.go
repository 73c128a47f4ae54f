package siteclient

import (
	"fmt"
	"strings"

	"github.com/cosmic-astrology/siteapi/internal/client"
	"github.com/cosmic-astrology/siteapi/pkg/siteapi"
)

// New creates a new site API client. The config is copied; BaseURL is
// normalized by trimming a trailing slash and adding "https://" when no
// scheme is present.
func New(config *siteapi.Config) (siteapi.Client, error) {
	if config == nil {
		return nil, siteapi.ErrConfigRequired
	}

	if strings.TrimSpace(config.BaseURL) == "" {
		return nil, siteapi.ErrBaseURLRequired
	}

	normalized := *config
	normalized.BaseURL = NormalizeBaseURL(config.BaseURL)

	c, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithEndpoint creates a new client with just a base URL.
func NewWithEndpoint(endpoint string) (siteapi.Client, error) {
	return New(&siteapi.Config{
		BaseURL: endpoint,
	})
}

// NewWithLogger creates a new client that reports failed operations to logger.
func NewWithLogger(endpoint string, logger siteapi.Logger) (siteapi.Client, error) {
	return New(&siteapi.Config{
		BaseURL: endpoint,
		Logger:  logger,
	})
}

// NormalizeBaseURL trims whitespace and trailing slashes and defaults the
// scheme to https.
func NormalizeBaseURL(endpoint string) string {
	normalized := strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if !strings.HasPrefix(normalized, "http://") && !strings.HasPrefix(normalized, "https://") {
		normalized = "https://" + normalized
	}

	return normalized
}
