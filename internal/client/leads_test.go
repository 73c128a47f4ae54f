package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmic-astrology/siteapi/pkg/siteapi"
)

func TestClient_SubmitLeadRouting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		lead         siteapi.Lead
		expectedPath string
		expectedBody string
	}{
		{
			name:         "contact form",
			lead:         siteapi.Lead{"name": "Asha", "source": "Contact Form", "message": "hello"},
			expectedPath: "/api/contact",
			expectedBody: `{"name":"Asha","source":"Contact Form","message":"hello"}`,
		},
		{
			name:         "booking",
			lead:         siteapi.Lead{"name": "Ravi", "source": "Booking", "service": "Kundli"},
			expectedPath: "/api/bookings",
			expectedBody: `{"name":"Ravi","source":"Booking","service":"Kundli"}`,
		},
		{
			name:         "empty lead",
			lead:         siteapi.Lead{},
			expectedPath: "/api/bookings",
			expectedBody: `{}`,
		},
		{
			name:         "nil lead",
			lead:         nil,
			expectedPath: "/api/bookings",
			expectedBody: `{}`,
		},
		{
			name:         "source is case sensitive",
			lead:         siteapi.Lead{"source": "contact form"},
			expectedPath: "/api/bookings",
			expectedBody: `{"source":"contact form"}`,
		},
		{
			name:         "non-string source",
			lead:         siteapi.Lead{"source": 7},
			expectedPath: "/api/bookings",
			expectedBody: `{"source":7}`,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := newTestServer(t, map[string]testRoute{
				"/api/contact":  {Body: `{"success":true,"message":"Message sent successfully"}`},
				"/api/bookings": {Body: `{"success":true,"id":1}`},
			})
			client := NewTestClient(server.URL)

			env := client.SubmitLead(context.Background(), testCase.lead)
			require.True(t, env.OK())

			requests := server.Requests()
			require.Len(t, requests, 1)
			assert.Equal(t, "POST", requests[0].Method)
			assert.Equal(t, testCase.expectedPath, requests[0].Path)
			assert.JSONEq(t, testCase.expectedBody, string(requests[0].Body))
		})
	}
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_GetLeads(t *testing.T) {
	t.Parallel()

	t.Run("bookings before messages", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, map[string]testRoute{
			"/api/admin/bookings": {Body: `{"success":true,"bookings":[{"id":"a"},{"id":"b"}]}`},
			"/api/admin/messages": {Body: `{"success":true,"messages":[{"id":"c"}]}`},
		})
		client := NewTestClient(server.URL)

		env := client.GetLeads(context.Background())
		require.True(t, env.OK())
		assert.Equal(t, 0, env.StatusCode)
		assert.JSONEq(t, `{"success":true,"leads":[{"id":"a"},{"id":"b"},{"id":"c"}]}`, string(env.Raw))
		assert.Len(t, server.Requests(), 2)
	})

	t.Run("missing and null lists are empty", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, map[string]testRoute{
			"/api/admin/bookings": {Body: `{"success":true,"bookings":null}`},
			"/api/admin/messages": {Body: `{"success":true}`},
		})
		client := NewTestClient(server.URL)

		env := client.GetLeads(context.Background())
		require.True(t, env.OK())
		assert.JSONEq(t, `{"success":true,"leads":[]}`, string(env.Raw))
	})

	t.Run("missing messages key", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, map[string]testRoute{
			"/api/admin/bookings": {Body: `{"success":true,"bookings":[{"id":1}]}`},
			"/api/admin/messages": {Body: `{"success":true,"other":[]}`},
		})
		client := NewTestClient(server.URL)

		env := client.GetLeads(context.Background())
		require.True(t, env.OK())

		var leads siteapi.LeadsResponse

		require.NoError(t, env.Decode(&leads))
		require.Len(t, leads.Leads, 1)
		assert.Equal(t, 1, leads.Leads[0].ID)
	})

	t.Run("bookings failure", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, map[string]testRoute{
			"/api/admin/bookings": {Body: "oops"},
			"/api/admin/messages": {Body: `{"success":true,"messages":[]}`},
		})
		client := NewTestClient(server.URL)

		env := client.GetLeads(context.Background())
		require.True(t, env.Failed())
		assert.Equal(t, "GetLeads", env.Err.Op)
		assert.Equal(t, siteapi.ErrorKindParse, env.Err.Kind)
		assert.Len(t, server.Requests(), 2)
	})

	t.Run("bookings failure takes precedence", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, map[string]testRoute{
			"/api/admin/bookings": {StatusCode: 500, Body: "boom"},
			"/api/admin/messages": {Body: "not json either"},
		})
		client := NewTestClient(server.URL)

		env := client.GetLeads(context.Background())
		require.True(t, env.Failed())
		assert.Equal(t, siteapi.ErrorKindHTTPStatus, env.Err.Kind)
		assert.Equal(t, 500, env.Err.StatusCode)
	})

	t.Run("messages failure", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, map[string]testRoute{
			"/api/admin/bookings": {Body: `{"success":true,"bookings":[]}`},
			"/api/admin/messages": {Body: "<html>"},
		})
		client := NewTestClient(server.URL)

		env := client.GetLeads(context.Background())
		require.True(t, env.Failed())
		assert.Equal(t, siteapi.ErrorKindParse, env.Err.Kind)
	})

	t.Run("non-array list", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, map[string]testRoute{
			"/api/admin/bookings": {Body: `{"success":true,"bookings":{"id":1}}`},
			"/api/admin/messages": {Body: `{"success":true,"messages":[]}`},
		})
		client := NewTestClient(server.URL)

		env := client.GetLeads(context.Background())
		require.True(t, env.Failed())
		assert.ErrorIs(t, env.Err, siteapi.ErrNotAList)
	})

	t.Run("falsy lists are empty", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, map[string]testRoute{
			"/api/admin/bookings": {Body: `{"success":true,"bookings":false}`},
			"/api/admin/messages": {Body: `{"success":true,"messages":[{"id":3}]}`},
		})
		client := NewTestClient(server.URL)

		env := client.GetLeads(context.Background())
		require.True(t, env.OK())
		assert.JSONEq(t, `{"success":true,"leads":[{"id":3}]}`, string(env.Raw))
	})

	t.Run("null body", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, map[string]testRoute{
			"/api/admin/bookings": {Body: `{"success":true,"bookings":[]}`},
			"/api/admin/messages": {Body: `null`},
		})
		client := NewTestClient(server.URL)

		env := client.GetLeads(context.Background())
		require.True(t, env.Failed())
		assert.ErrorIs(t, env.Err, siteapi.ErrNullBody)
	})

	t.Run("unauthorized lists are empty", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, map[string]testRoute{
			"/api/admin/bookings": {StatusCode: 401, Body: `{"success":false,"error":"Unauthorized"}`},
			"/api/admin/messages": {StatusCode: 401, Body: `{"success":false,"error":"Unauthorized"}`},
		})
		client := NewTestClient(server.URL)

		env := client.GetLeads(context.Background())
		require.True(t, env.OK())
		assert.JSONEq(t, `{"success":true,"leads":[]}`, string(env.Raw))
	})

	t.Run("network failure", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient(closedServerURL())

		env := client.GetLeads(context.Background())
		require.True(t, env.Failed())
		assert.Equal(t, siteapi.ErrorKindNetwork, env.Err.Kind)
	})
}

func TestListField(t *testing.T) {
	t.Parallel()

	env, err := siteapi.NewEnvelope(200, []byte(`{"bookings":[1,2],"messages":"x"}`))
	require.NoError(t, err)

	items, err := listField(env, "bookings")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = listField(env, "absent")
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = listField(env, "messages")
	require.ErrorIs(t, err, siteapi.ErrNotAList)

	falsy, err := siteapi.NewEnvelope(200, []byte(`{"a":null,"b":false,"c":0,"d":"","e":0.0,"f":1,"g":true}`))
	require.NoError(t, err)

	for _, key := range []string{"a", "b", "c", "d", "e"} {
		items, err = listField(falsy, key)
		require.NoError(t, err, key)
		assert.Empty(t, items, key)
	}

	for _, key := range []string{"f", "g"} {
		_, err = listField(falsy, key)
		require.ErrorIs(t, err, siteapi.ErrNotAList, key)
	}
}
