package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIClient_CompleteWithSystem(t *testing.T) {
	var got openAIRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Hello from Bees  "}}]}`))
	}))
	defer srv.Close()

	c := NewOpenAIClient(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL + "/", Model: "gpt-test", Timeout: time.Second})

	out, err := c.CompleteWithSystem(context.Background(), "system prompt", "hi")
	require.NoError(t, err)

	assert.Equal(t, "Hello from Bees", out)
	assert.Equal(t, "gpt-test", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "system prompt", got.Messages[0].Content)
	assert.Equal(t, "hi", got.Messages[1].Content)
}

func TestOpenAIClient_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("Authorization") {
		case "Bearer empty":
			_, _ = w.Write([]byte(`{"choices":[]}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"message":"bad key"}}`))
		}
	}))
	defer srv.Close()

	_, err := NewOpenAIClient(OpenAIConfig{APIKey: "wrong", BaseURL: srv.URL}).CompleteWithSystem(context.Background(), "s", "u")
	assert.ErrorContains(t, err, "401")

	_, err = NewOpenAIClient(OpenAIConfig{APIKey: "empty", BaseURL: srv.URL}).CompleteWithSystem(context.Background(), "s", "u")
	assert.ErrorIs(t, err, ErrNoCompletion)

	_, err = NewOpenAIClient(OpenAIConfig{BaseURL: srv.URL}).CompleteWithSystem(context.Background(), "s", "u")
	assert.ErrorContains(t, err, "API key not configured")
}
