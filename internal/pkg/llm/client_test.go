package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iuermili/LeCourse/internal/pkg/apperrors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(Config{
		BaseURL:     server.URL,
		Model:       "phi3:mini",
		Temperature: 0.1,
		Timeout:     5 * time.Second,
	}, zerolog.Nop())

	return client, server
}

func TestGenerateSendsExpectedPayload(t *testing.T) {
	var got generateRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"response": "CS101, CS102",
			"context":  []int{1, 2, 3},
		})
	})

	text, token, err := client.Generate(context.Background(), "prompt text", nil)
	require.NoError(t, err)

	assert.Equal(t, "phi3:mini", got.Model)
	assert.Equal(t, "prompt text", got.Prompt)
	assert.False(t, got.Stream)
	assert.InDelta(t, 0.1, got.Options.Temperature, 1e-9)
	assert.Empty(t, got.Context)

	assert.Equal(t, "CS101, CS102", text)
	assert.JSONEq(t, "[1,2,3]", string(token))
}

func TestGenerateForwardsContinuationToken(t *testing.T) {
	var got generateRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]string{"response": "None"})
	})

	token := json.RawMessage(`[7,8]`)
	text, newToken, err := client.Generate(context.Background(), "p", token)
	require.NoError(t, err)

	assert.JSONEq(t, "[7,8]", string(got.Context))
	assert.Equal(t, "None", text)
	// Reply carried no context, caller's token is preserved
	assert.JSONEq(t, "[7,8]", string(newToken))
}

func TestGenerateStripsBacktickFences(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"response": "  ```CS101```  "})
	})

	text, _, err := client.Generate(context.Background(), "p", nil)
	require.NoError(t, err)
	assert.Equal(t, "CS101", text)
}

func TestGenerateFallsBackToFirstStringValue(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"done":    true,
			"error":   "model busy",
			"retries": 3,
		})
	})

	text, _, err := client.Generate(context.Background(), "p", nil)
	require.NoError(t, err)
	assert.Equal(t, "model busy", text)
}

func TestGenerateFallsBackToSerializedPayload(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"done": true})
	})

	text, _, err := client.Generate(context.Background(), "p", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"done":true}`, text)
}

func TestGenerateMapsErrorStatusToModelUnavailable(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusInternalServerError)
	})

	_, _, err := client.Generate(context.Background(), "p", nil)
	assert.ErrorIs(t, err, apperrors.ErrModelUnavailable)
}

func TestGenerateMapsTransportFailureToModelUnavailable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // refuse connections

	client := NewClient(Config{BaseURL: server.URL, Model: "m"}, zerolog.Nop())

	_, _, err := client.Generate(context.Background(), "p", nil)
	assert.ErrorIs(t, err, apperrors.ErrModelUnavailable)
}

func TestGenerateMapsUndecodableBodyToModelParse(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json at all"))
	})

	_, _, err := client.Generate(context.Background(), "p", nil)
	assert.ErrorIs(t, err, apperrors.ErrModelParse)
}

func TestChatExtractsMessageContent(t *testing.T) {
	var got chatRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"message": map[string]string{"role": "assistant", "content": "take CS201 next"},
			"context": []int{4, 5},
		})
	})

	messages := []Message{
		{Role: "system", Content: "catalog"},
		{Role: "user", Content: "what next?"},
	}
	text, token, err := client.Chat(context.Background(), messages, nil)
	require.NoError(t, err)

	assert.Equal(t, messages, got.Messages)
	assert.False(t, got.Stream)
	assert.Equal(t, "take CS201 next", text)
	assert.JSONEq(t, "[4,5]", string(token))
}

func TestChatFallsBackWhenMessageMissing(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"response": "plain completion"})
	})

	text, _, err := client.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "plain completion", text)
}
