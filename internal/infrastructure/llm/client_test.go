package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scribe-ai-api/internal/config"
	"scribe-ai-api/pkg/errors"
)

func newTestClient(baseURL string) *Client {
	return NewClient(&config.UpstreamConfig{
		BaseURL:     baseURL,
		APIKey:      "test-key",
		Model:       "google/gemini-2.5-flash",
		Temperature: 0.8,
		Timeout:     5 * time.Second,
	})
}

func TestStreamChat_Success(t *testing.T) {
	var gotAuth string
	var gotBody chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, "data: {\"choices\":[{\"delta\":{\"content\":\"hi\"}}]}\n\ndata: [DONE]\n\n")
	}))
	defer srv.Close()

	body, err := newTestClient(srv.URL).StreamChat(context.Background(), "system prompt", "user prompt")
	require.NoError(t, err)
	defer body.Close()

	raw, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "data: [DONE]")

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "google/gemini-2.5-flash", gotBody.Model)
	assert.True(t, gotBody.Stream)
	assert.InDelta(t, 0.8, gotBody.Temperature, 1e-9)
	require.Len(t, gotBody.Messages, 2)
	assert.Equal(t, "system", gotBody.Messages[0].Role)
	assert.Equal(t, "system prompt", gotBody.Messages[0].Content)
	assert.Equal(t, "user", gotBody.Messages[1].Role)
	assert.Equal(t, "user prompt", gotBody.Messages[1].Content)
}

func TestStreamChat_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).StreamChat(context.Background(), "s", "u")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeUpstreamRateLimited))
}

func TestStreamChat_QuotaExceeded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).StreamChat(context.Background(), "s", "u")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeUpstreamQuotaExceeded))
}

func TestStreamChat_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "boom")
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).StreamChat(context.Background(), "s", "u")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeUpstreamFailure))

	appErr := errors.AsAppError(err)
	assert.Contains(t, appErr.Detail, "500")
	assert.Contains(t, appErr.Detail, "boom")
}

func TestStreamChat_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := newTestClient(srv.URL).StreamChat(context.Background(), "s", "u")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeUpstreamFailure))
}
