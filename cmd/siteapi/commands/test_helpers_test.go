package commands

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/cosmic-astrology/siteapi/internal/config"
	"github.com/cosmic-astrology/siteapi/internal/constants"
	"github.com/cosmic-astrology/siteapi/pkg/siteclient"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

type recordedRequest struct {
	Method string
	Path   string
	Body   string
}

type route struct {
	StatusCode int
	Body       string
}

// siteServer answers fixed JSON bodies per "METHOD /path" and records calls.
type siteServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
}

func newSiteServer(t *testing.T, routes map[string]route) *siteServer {
	t.Helper()

	s := &siteServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		s.mu.Lock()
		s.requests = append(s.requests, recordedRequest{Method: r.Method, Path: r.URL.Path, Body: string(body)})
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")

		rt, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success":false,"error":"not found"}`))

			return
		}

		if rt.StatusCode != 0 {
			w.WriteHeader(rt.StatusCode)
		}

		_, _ = w.Write([]byte(rt.Body))
	}))
	t.Cleanup(s.Close)

	return s
}

func (s *siteServer) Requests() []recordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]recordedRequest(nil), s.requests...)
}

// newTestCommandContext builds a command context against server writing to
// in-memory buffers.
func newTestCommandContext(t *testing.T, server *siteServer, format string) (*commandContext, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	client, err := siteclient.NewWithEndpoint(server.URL)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	return &commandContext{
		client: client,
		config: &config.Config{
			API:           server.URL,
			Output:        format,
			LogLevel:      "warn",
			Timeout:       5 * time.Second,
			ImportThreads: constants.DefaultConcurrencyLimit,
		},
		out:    out,
		errOut: errOut,
	}, out, errOut
}
