package client

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	internalhttp "github.com/cosmic-astrology/siteapi/internal/http"
	"github.com/cosmic-astrology/siteapi/pkg/siteapi"
)

// NewTestClient creates a new test client with the given base URL.
func NewTestClient(baseURL string) *Client {
	return &Client{
		httpClient: internalhttp.NewClient(baseURL),
		baseURL:    baseURL,
	}
}

// recordedRequest is a request captured by the test server.
type recordedRequest struct {
	Method      string
	Path        string
	ContentType string
	Body        []byte
}

// testServer serves canned responses keyed by path and records every request.
type testServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
}

// testRoute is a canned response.
type testRoute struct {
	StatusCode int
	Body       string
}

func newTestServer(t *testing.T, routes map[string]testRoute) *testServer {
	t.Helper()

	server := &testServer{}
	server.Server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		body, err := io.ReadAll(request.Body)
		require.NoError(t, err)

		server.mu.Lock()
		server.requests = append(server.requests, recordedRequest{
			Method:      request.Method,
			Path:        request.URL.Path,
			ContentType: request.Header.Get("Content-Type"),
			Body:        body,
		})
		server.mu.Unlock()

		route, ok := routes[request.URL.Path]
		if !ok {
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`{"success":false,"error":"Not found"}`))

			return
		}

		if route.StatusCode != 0 {
			writer.WriteHeader(route.StatusCode)
		}

		_, _ = writer.Write([]byte(route.Body))
	}))

	t.Cleanup(server.Close)

	return server
}

func (s *testServer) Requests() []recordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]recordedRequest(nil), s.requests...)
}

// closedServerURL returns the URL of a server that no longer accepts connections.
func closedServerURL() string {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {}))
	serverURL := server.URL
	server.Close()

	return serverURL
}

// decodeBody unmarshals a recorded request body into a generic map.
func decodeBody(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()

	var result map[string]interface{}

	require.NoError(t, json.Unmarshal(body, &result))

	return result
}

// MockLogger for testing.
type MockLogger struct {
	mu   sync.Mutex
	logs []map[string]interface{}
}

func (l *MockLogger) record(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logs = append(l.logs, map[string]interface{}{"level": level, "msg": msg, "fields": fields})
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) { l.record("debug", msg, fields) }
func (l *MockLogger) Info(msg string, fields map[string]interface{})  { l.record("info", msg, fields) }
func (l *MockLogger) Warn(msg string, fields map[string]interface{})  { l.record("warn", msg, fields) }
func (l *MockLogger) Error(msg string, fields map[string]interface{}) { l.record("error", msg, fields) }

var _ siteapi.Logger = (*MockLogger)(nil)
