package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"testinsight-backend/utilities"
)

var ErrInvalidResponse = errors.New("invalid response from Ollama")

type OllamaClient struct {
	ollamaURL string
	model     string
	client    *http.Client
}

func NewOllamaClient(url, model string, timeout time.Duration) *OllamaClient {
	if model == "" {
		model = "mistral"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OllamaClient{
		ollamaURL: url,
		model:     model,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (o *OllamaClient) callOllama(ctx context.Context, prompt string, jsonFormat bool) (string, error) {
	payload := map[string]interface{}{
		"model":  o.model,
		"prompt": prompt,
		"stream": false,
	}
	if jsonFormat {
		payload["format"] = "json"
	}
	requestBody, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.ollamaURL, bytes.NewBuffer(requestBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama returned %d: %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}

	fullBody := strings.TrimSpace(string(bodyBytes))

	// Streamed responses arrive as one JSON object per line.
	if strings.Contains(fullBody, "\n") {
		return AggregateStreamedResponse(fullBody), nil
	}

	var chunk LLMResponseChunk
	if err := json.Unmarshal([]byte(fullBody), &chunk); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return chunk.Response, nil
}

type LLMResponseChunk struct {
	Model     string `json:"model"`
	CreatedAt string `json:"created_at"`
	Response  string `json:"response"`
	Done      bool   `json:"done"`
}

// AggregateStreamedResponse takes the full raw response body (a string with multiple JSON objects separated by newlines)
// and concatenates the "response" fields into one final string.
func AggregateStreamedResponse(body string) string {
	lines := strings.Split(body, "\n")
	var builder strings.Builder
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			var chunk LLMResponseChunk
			if err := json.Unmarshal([]byte(trimmed), &chunk); err != nil {
				utilities.Warn("Error unmarshaling chunk: %v", err)
				continue
			}
			builder.WriteString(chunk.Response)
		}
	}
	return builder.String()
}

// ClassifyTopics asks the model to pick one catalog label per question text.
// The result is keyed by the decimal index of each text.
func (o *OllamaClient) ClassifyTopics(ctx context.Context, subject string, catalog []string, texts []string) (map[string]string, error) {
	response, err := o.callOllama(ctx, buildClassificationPrompt(subject, catalog, texts), true)
	if err != nil {
		return nil, err
	}
	return parseTopicMap(response)
}

func buildClassificationPrompt(subject string, catalog []string, texts []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You classify %s exam questions into topics.\n", subject)
	b.WriteString("Allowed topics (use the exact spelling):\n")
	for _, c := range catalog {
		fmt.Fprintf(&b, "- %s\n", c)
	}
	b.WriteString("Questions:\n")
	for i, t := range texts {
		fmt.Fprintf(&b, "%d: %s\n", i, t)
	}
	b.WriteString("Respond with only a JSON object mapping each question number (as a string) to one allowed topic, " +
		`for example {"0": "` + firstOr(catalog, "Topic") + `"}.`)
	return b.String()
}

func firstOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return values[0]
}

// parseTopicMap extracts the first JSON object from the model output. Values
// must all be strings.
func parseTopicMap(response string) (map[string]string, error) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: no JSON object in %q", ErrInvalidResponse, truncate(response, 80))
	}

	var result map[string]string
	if err := json.Unmarshal([]byte(response[start:end+1]), &result); err != nil {
		return nil, fmt.Errorf("failed to parse topic mapping: %w", err)
	}
	return result, nil
}

// SuggestStudyAdvice asks for a short paragraph of study advice for a weak
// topic.
func (o *OllamaClient) SuggestStudyAdvice(ctx context.Context, subject, topic string, accuracy float64) (string, error) {
	prompt := fmt.Sprintf(
		"A student scored %.0f%% on %s questions in %s. "+
			"Write two or three sentences of specific, encouraging study advice. Output only the advice.",
		accuracy, topic, subject,
	)
	response, err := o.callOllama(ctx, prompt, false)
	if err != nil {
		return "", err
	}
	response = strings.TrimSpace(response)
	if response == "" {
		return "", ErrInvalidResponse
	}
	return response, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
