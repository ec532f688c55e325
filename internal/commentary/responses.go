package commentary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ResponsesClient asks an OpenAI-compatible Responses endpoint for
// commentary.
type ResponsesClient struct {
	cfg    Config
	client *http.Client
}

// NewResponsesClient builds a client. A nil httpClient uses
// http.DefaultClient.
func NewResponsesClient(cfg Config, httpClient *http.Client) *ResponsesClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if strings.TrimSpace(cfg.ResponsesURL) == "" {
		cfg.ResponsesURL = "https://api.openai.com/v1/responses"
	}
	return &ResponsesClient{cfg: cfg, client: httpClient}
}

// Advise sends the snapshot prompt and returns the model's text.
func (c *ResponsesClient) Advise(ctx context.Context, snap Snapshot) (string, error) {
	apiKey := strings.TrimSpace(c.cfg.APIKey)
	model := strings.TrimSpace(c.cfg.Model)
	if apiKey == "" {
		return "", fmt.Errorf("api key is required")
	}
	if model == "" {
		return "", fmt.Errorf("model is required")
	}

	body, err := json.Marshal(map[string]any{
		"model": model,
		"input": Prompt(snap),
	})
	if err != nil {
		return "", fmt.Errorf("marshal commentary request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.ResponsesURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build commentary request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	res, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("commentary request failed: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg, err := io.ReadAll(io.LimitReader(res.Body, 4096))
		if err != nil {
			return "", fmt.Errorf("read commentary error body: %w", err)
		}
		return "", fmt.Errorf("commentary request status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
	}

	var payload struct {
		OutputText string `json:"output_text"`
		Output     []struct {
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"output"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode commentary response: %w", err)
	}

	text := strings.TrimSpace(payload.OutputText)
	for _, item := range payload.Output {
		if text != "" {
			break
		}
		for _, content := range item.Content {
			if t := strings.TrimSpace(content.Text); t != "" {
				text = t
				break
			}
		}
	}
	if text == "" {
		return "", fmt.Errorf("commentary response missing output text")
	}
	return text, nil
}
