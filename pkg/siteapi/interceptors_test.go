package siteapi_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmic-astrology/siteapi/pkg/siteapi"
)

type recordingLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *recordingLogger) add(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, level+":"+msg)
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) { l.add("debug", msg) }
func (l *recordingLogger) Info(msg string, fields map[string]interface{})  { l.add("info", msg) }
func (l *recordingLogger) Warn(msg string, fields map[string]interface{})  { l.add("warn", msg) }
func (l *recordingLogger) Error(msg string, fields map[string]interface{}) { l.add("error", msg) }

func TestInterceptorChain_RequestInterceptors(t *testing.T) {
	chain := siteapi.NewInterceptorChain()
	ctx := context.Background()

	var executionOrder []string

	chain.AddRequestInterceptor(func(ctx context.Context, req *siteapi.Request) error {
		executionOrder = append(executionOrder, "first")
		return nil
	})

	chain.AddRequestInterceptor(func(ctx context.Context, req *siteapi.Request) error {
		executionOrder = append(executionOrder, "second")
		return nil
	})

	req := &siteapi.Request{
		Method: "GET",
		Path:   "/api/hero-slides",
	}

	err := chain.ExecuteRequestInterceptors(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, executionOrder)
}

func TestInterceptorChain_StopsOnError(t *testing.T) {
	chain := siteapi.NewInterceptorChain()
	boom := errors.New("boom")
	called := false

	chain.AddRequestInterceptor(func(ctx context.Context, req *siteapi.Request) error {
		return boom
	})
	chain.AddRequestInterceptor(func(ctx context.Context, req *siteapi.Request) error {
		called = true
		return nil
	})

	err := chain.ExecuteRequestInterceptors(context.Background(), &siteapi.Request{})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "request interceptor failed")
	assert.False(t, called)

	chain.AddResponseInterceptor(func(ctx context.Context, req *siteapi.Request, resp *siteapi.Response) error {
		return boom
	})

	err = chain.ExecuteResponseInterceptors(context.Background(), &siteapi.Request{}, &siteapi.Response{})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "response interceptor failed")
}

func TestHeaderInterceptor(t *testing.T) {
	interceptor := siteapi.HeaderInterceptor(map[string]string{
		"X-Custom-Header": "custom-value",
		"X-Request-ID":    "123456",
	})

	req := &siteapi.Request{Method: "GET", Path: "/api/business-info"}

	err := interceptor(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "custom-value", req.Headers.Get("X-Custom-Header"))
	assert.Equal(t, "123456", req.Headers.Get("X-Request-ID"))
}

func TestLoggingInterceptors(t *testing.T) {
	logger := &recordingLogger{}
	req := &siteapi.Request{Method: "POST", Path: "/api/contact"}

	require.NoError(t, siteapi.LoggingInterceptor(logger)(context.Background(), req))
	require.NoError(t, siteapi.LoggingResponseInterceptor(logger)(context.Background(), req, &siteapi.Response{StatusCode: 200}))
	require.NoError(t, siteapi.LoggingResponseInterceptor(logger)(context.Background(), req, &siteapi.Response{Error: errors.New("refused")}))

	assert.Equal(t, []string{"debug:API Request", "debug:API Response", "error:API Response Error"}, logger.entries)
}

func TestMetricsInterceptors(t *testing.T) {
	collector := siteapi.NewMetricsCollector()

	var changes []string

	collector.SetOnChange(func(endpoint string, metrics siteapi.Metrics) {
		changes = append(changes, endpoint)
	})

	requestInterceptor := siteapi.MetricsRequestInterceptor(collector)
	responseInterceptor := siteapi.MetricsResponseInterceptor(collector)
	ctx := context.Background()

	for _, status := range []int{http.StatusOK, http.StatusInternalServerError} {
		req := &siteapi.Request{Method: "GET", Path: "/api/hero-slides"}

		require.NoError(t, requestInterceptor(ctx, req))
		time.Sleep(time.Millisecond)
		require.NoError(t, responseInterceptor(ctx, req, &siteapi.Response{StatusCode: status}))
	}

	metrics, ok := collector.GetMetrics("GET /api/hero-slides")
	require.True(t, ok)
	assert.Equal(t, int64(2), metrics.TotalRequests)
	assert.Equal(t, int64(1), metrics.TotalErrors)
	assert.Positive(t, metrics.AverageLatency)
	assert.False(t, metrics.LastRequestTime.IsZero())
	assert.Equal(t, []string{"GET /api/hero-slides", "GET /api/hero-slides"}, changes)

	_, ok = collector.GetMetrics("GET /api/gallery-slides")
	assert.False(t, ok)
}

func TestLead_Source(t *testing.T) {
	assert.True(t, siteapi.Lead{"source": "Contact Form"}.IsContactForm())
	assert.False(t, siteapi.Lead{"source": "Booking"}.IsContactForm())
	assert.False(t, siteapi.Lead{}.IsContactForm())
	assert.Empty(t, siteapi.Lead{"source": 3}.Source())
}
