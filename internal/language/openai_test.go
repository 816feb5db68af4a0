package language

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIBackend_NoKey(t *testing.T) {
	b := NewOpenAIBackend(OpenAIOptions{})
	_, err := b.Detect(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = b.Translate(context.Background(), TranslateRequest{Text: "hello"})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestOpenAIBackend_ModelSelection(t *testing.T) {
	var models []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		models = append(models, body.Model)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "x",
			"object": "chat.completion",
			"model":  body.Model,
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]string{"role": "assistant", "content": "  reply to " + body.Messages[1].Content + "\n"},
			}},
		})
	}))
	defer srv.Close()

	b := NewOpenAIBackend(OpenAIOptions{APIKey: "test", BaseURL: srv.URL})
	ctx := context.Background()

	got, err := b.Translate(ctx, TranslateRequest{Text: "bukhar", Instruction: toEnglishInstruction})
	require.NoError(t, err)
	assert.Equal(t, "reply to bukhar", got)

	_, err = b.Translate(ctx, TranslateRequest{Text: "bukhar", Instruction: strictToEnglishInstruction, Corrective: true})
	require.NoError(t, err)

	label, err := b.Detect(ctx, "hola")
	require.NoError(t, err)
	assert.Equal(t, "reply to hola", label)

	assert.Equal(t, []string{DefaultPrimaryModel, DefaultCorrectiveModel, DefaultCorrectiveModel}, models)
}

func TestOpenAIBackend_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	b := NewOpenAIBackend(OpenAIOptions{APIKey: "test", BaseURL: srv.URL})
	_, err := b.Translate(context.Background(), TranslateRequest{Text: "x", Instruction: "y"})
	assert.Error(t, err)
}
