package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		APIKey:     "test-key",
		BaseURL:    srv.URL,
		Model:      "test-model",
		Timeout:    5 * time.Second,
		MaxRetries: 3,
	})
}

func TestClient_Summarize_Success(t *testing.T) {
	var gotReq Request
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(Response{
			Choices: []Choice{{Message: Message{Role: "assistant", Content: "  A summary.  "}}},
		})
	})

	summary, err := client.Summarize(context.Background(), "some text", []string{"Qatar"})

	require.NoError(t, err)
	assert.Equal(t, "A summary.", summary)
	assert.Equal(t, 0.0, gotReq.Temperature)
	assert.Equal(t, "test-model", gotReq.Model)
	require.Len(t, gotReq.Messages, 1)
	assert.Contains(t, gotReq.Messages[0].Content, "GECF countries")
}

func TestClient_Summarize_GenericPromptWithoutCountries(t *testing.T) {
	var gotReq Request
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(Response{
			Choices: []Choice{{Message: Message{Content: "ok"}}},
		})
	})

	_, err := client.Summarize(context.Background(), "some text", nil)

	require.NoError(t, err)
	assert.NotContains(t, gotReq.Messages[0].Content, "GECF countries")
}

func TestClient_Summarize_RetriesOn429(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(Response{
			Choices: []Choice{{Message: Message{Content: "recovered"}}},
		})
	})

	summary, err := client.Summarize(context.Background(), "text", nil)

	require.NoError(t, err)
	assert.Equal(t, "recovered", summary)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_Summarize_AuthErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	})

	_, err := client.Summarize(context.Background(), "text", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_Summarize_MissingKey(t *testing.T) {
	client := NewClient(Config{})

	_, err := client.Summarize(context.Background(), "text", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "GROQ_API_KEY")
}

func TestBuildPrompt(t *testing.T) {
	focused := BuildPrompt("  body text  ", true)
	generic := BuildPrompt("body text", false)

	assert.True(t, strings.HasSuffix(focused, "CONTEXT: body text"))
	assert.Contains(t, focused, "geopolitical energy analyst")
	assert.Contains(t, generic, "one concise paragraph")
	assert.NotContains(t, generic, "GECF")
}
