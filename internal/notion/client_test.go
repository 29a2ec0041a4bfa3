package notion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(
		WithToken("secret_test"),
		WithBaseURL(srv.URL),
		WithRateLimit(1000),
	)
}

func TestQueryDatabase_SendsHeadersAndBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/databases/db1/query", r.URL.Path)
		assert.Equal(t, "Bearer secret_test", r.Header.Get("Authorization"))
		assert.Equal(t, APIVersion, r.Header.Get("Notion-Version"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req QueryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "cur1", req.StartCursor)
		assert.Equal(t, MaxPageSize, req.PageSize)

		w.Write([]byte(`{
			"object": "list",
			"results": [{"object": "page", "id": "p1", "properties": {}}],
			"next_cursor": "cur2",
			"has_more": true
		}`))
	})

	resp, err := client.QueryDatabase(context.Background(), "db1", QueryRequest{StartCursor: "cur1", PageSize: 500})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "p1", resp.Results[0].ID)
	require.NotNil(t, resp.NextCursor)
	assert.Equal(t, "cur2", *resp.NextCursor)
	assert.True(t, resp.HasMore)
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
		code     string
	}{
		{
			name:     "unauthorized",
			status:   http.StatusUnauthorized,
			body:     `{"object":"error","status":401,"code":"unauthorized","message":"API token is invalid."}`,
			sentinel: ErrAuthError,
			code:     "unauthorized",
		},
		{
			name:     "not shared",
			status:   http.StatusNotFound,
			body:     `{"object":"error","status":404,"code":"object_not_found","message":"Could not find database."}`,
			sentinel: ErrNotFound,
			code:     "object_not_found",
		},
		{
			name:     "rate limited",
			status:   http.StatusTooManyRequests,
			body:     `{"object":"error","status":429,"code":"rate_limited","message":"slow down"}`,
			sentinel: ErrRateLimited,
			code:     "rate_limited",
		},
		{
			name:     "validation",
			status:   http.StatusBadRequest,
			body:     `{"object":"error","status":400,"code":"validation_error","message":"Year is not a property that exists."}`,
			sentinel: ErrAPIError,
			code:     "validation_error",
		},
		{
			name:     "non-json body",
			status:   http.StatusBadGateway,
			body:     `<html>bad gateway</html>`,
			sentinel: ErrAPIError,
			code:     "api_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.QueryDatabase(context.Background(), "db1", QueryRequest{})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.code, apiErr.Code)
		})
	}
}

func TestClient_InvalidJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	})

	_, err := client.QueryDatabase(context.Background(), "db1", QueryRequest{})
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithRateLimit(1000))
	_, err := client.QueryDatabase(context.Background(), "db1", QueryRequest{})
	assert.ErrorIs(t, err, ErrNetworkError)
}

func TestClient_CanceledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.QueryDatabase(ctx, "db1", QueryRequest{})
	assert.Error(t, err)
}

func TestCreatePage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pages", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		parent := body["parent"].(map[string]any)
		assert.Equal(t, "db1", parent["database_id"])
		props := body["properties"].(map[string]any)
		assert.Contains(t, props, "Title")

		w.Write([]byte(`{"object":"page","id":"new-page","properties":{}}`))
	})

	page, err := client.CreatePage(context.Background(), "db1", Properties{"Title": TitleValue("T")})
	require.NoError(t, err)
	assert.Equal(t, "new-page", page.ID)
}

func TestCreatePage_MissingID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"object":"page"}`))
	})

	_, err := client.CreatePage(context.Background(), "db1", Properties{})
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
