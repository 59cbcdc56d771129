package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ollamaServer(t *testing.T, handler func(req map[string]interface{}) (int, string)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		status, body := handler(req)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func generateBody(response string) string {
	b, _ := json.Marshal(LLMResponseChunk{Model: "mistral", Response: response, Done: true})
	return string(b)
}

func TestClassifyTopics(t *testing.T) {
	var seen map[string]interface{}
	srv := ollamaServer(t, func(req map[string]interface{}) (int, string) {
		seen = req
		return http.StatusOK, generateBody(`Sure! {"0": "Mechanics", "1": "Trigonometry"}`)
	})

	c := NewOllamaClient(srv.URL, "llama3", time.Second)
	labels, err := c.ClassifyTopics(context.Background(), "Physics",
		[]string{"Mechanics", "Trigonometry"},
		[]string{"calculate the force", "what is sin(30°)?"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"0": "Mechanics", "1": "Trigonometry"}, labels)

	assert.Equal(t, "llama3", seen["model"])
	assert.Equal(t, "json", seen["format"])
	assert.Equal(t, false, seen["stream"])
	prompt := seen["prompt"].(string)
	assert.Contains(t, prompt, "- Trigonometry")
	assert.Contains(t, prompt, "1: what is sin(30°)?")
}

func TestClassifyTopicsMalformed(t *testing.T) {
	for name, response := range map[string]string{
		"no object":         "I cannot help with that",
		"non-string labels": `{"0": 3}`,
		"broken json":       `{"0": "Mechanics"`,
	} {
		srv := ollamaServer(t, func(map[string]interface{}) (int, string) {
			return http.StatusOK, generateBody(response)
		})
		_, err := NewOllamaClient(srv.URL, "", time.Second).
			ClassifyTopics(context.Background(), "Physics", []string{"Mechanics"}, []string{"force"})
		assert.Error(t, err, name)
	}
}

func TestCallOllamaErrors(t *testing.T) {
	srv := ollamaServer(t, func(map[string]interface{}) (int, string) {
		return http.StatusInternalServerError, "model not loaded"
	})
	_, err := NewOllamaClient(srv.URL, "", time.Second).SuggestStudyAdvice(context.Background(), "Physics", "Optics", 30)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")

	garbage := ollamaServer(t, func(map[string]interface{}) (int, string) {
		return http.StatusOK, "not json"
	})
	_, err = NewOllamaClient(garbage.URL, "", time.Second).SuggestStudyAdvice(context.Background(), "Physics", "Optics", 30)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestCallOllamaHonoursContext(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := NewOllamaClient(srv.URL, "", time.Minute).ClassifyTopics(ctx, "Physics", []string{"Mechanics"}, []string{"force"})
	assert.Error(t, err)
}

func TestSuggestStudyAdviceStreamed(t *testing.T) {
	srv := ollamaServer(t, func(req map[string]interface{}) (int, string) {
		_, hasFormat := req["format"]
		assert.False(t, hasFormat)
		return http.StatusOK, strings.Join([]string{
			generateBody("Review lens "),
			generateBody("formulas daily."),
		}, "\n")
	})

	advice, err := NewOllamaClient(srv.URL, "", time.Second).SuggestStudyAdvice(context.Background(), "Physics", "Optics", 30)
	require.NoError(t, err)
	assert.Equal(t, "Review lens formulas daily.", advice)
}

func TestAggregateStreamedResponseSkipsBadLines(t *testing.T) {
	body := generateBody("a") + "\nnot json\n" + generateBody("b") + "\n"
	assert.Equal(t, "ab", AggregateStreamedResponse(body))
}
