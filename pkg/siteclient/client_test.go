package siteclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmic-astrology/siteapi/pkg/siteapi"
	"github.com/cosmic-astrology/siteapi/pkg/siteclient"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("creates client with config", func(t *testing.T) {
		t.Parallel()

		client, err := siteclient.New(&siteapi.Config{BaseURL: "https://cosmicastrology.example"})
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		client, err := siteclient.New(nil)
		require.ErrorIs(t, err, siteapi.ErrConfigRequired)
		assert.Nil(t, client)
	})

	t.Run("empty base URL", func(t *testing.T) {
		t.Parallel()

		client, err := siteclient.New(&siteapi.Config{BaseURL: "  "})
		require.ErrorIs(t, err, siteapi.ErrBaseURLRequired)
		assert.Nil(t, client)
	})

	t.Run("does not mutate caller config", func(t *testing.T) {
		t.Parallel()

		config := &siteapi.Config{BaseURL: "cosmicastrology.example/"}

		_, err := siteclient.New(config)
		require.NoError(t, err)
		assert.Equal(t, "cosmicastrology.example/", config.BaseURL)
	})
}

func TestNormalizeBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"https://cosmicastrology.example", "https://cosmicastrology.example"},
		{"https://cosmicastrology.example/", "https://cosmicastrology.example"},
		{"http://localhost:5000//", "http://localhost:5000"},
		{"cosmicastrology.example", "https://cosmicastrology.example"},
		{" http://localhost:5000 ", "http://localhost:5000"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, siteclient.NormalizeBaseURL(tt.input))
		})
	}
}

func TestNewWithEndpoint_RoundTrip(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/business-info", request.URL.Path)

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"success":       true,
			"business_name": "Cosmic Astrology",
		})
	}))
	defer server.Close()

	client, err := siteclient.NewWithEndpoint(server.URL + "/")
	require.NoError(t, err)

	env := client.GetBusinessInfo(context.Background())
	require.True(t, env.OK())

	var info siteapi.BusinessInfo

	require.NoError(t, env.Decode(&info))
	assert.Equal(t, "Cosmic Astrology", info.BusinessName)
}

type recordingLogger struct {
	errors []string
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) {}
func (l *recordingLogger) Info(msg string, fields map[string]interface{})  {}
func (l *recordingLogger) Warn(msg string, fields map[string]interface{})  {}
func (l *recordingLogger) Error(msg string, fields map[string]interface{}) {
	l.errors = append(l.errors, fields["operation"].(string))
}

func TestNewWithLogger(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte("<html>oops</html>"))
	}))
	defer server.Close()

	logger := &recordingLogger{}

	client, err := siteclient.NewWithLogger(server.URL, logger)
	require.NoError(t, err)

	env := client.GetGallerySlides(context.Background())
	assert.False(t, env.OK())
	assert.Equal(t, []string{"GetGallerySlides"}, logger.errors)
}
