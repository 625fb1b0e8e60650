package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/codedrill/codedrill/internal/model"
)

const (
	// DefaultEndpoint is an OpenAI-compatible chat completions endpoint.
	DefaultEndpoint = "https://router.huggingface.co/v1/chat/completions"
	// DefaultModel is the generation model requested by default.
	DefaultModel = "deepseek-ai/DeepSeek-R1-0528"

	defaultTimeout = 60 * time.Second
)

// Remote generates code snippets via a chat-completions API.
type Remote struct {
	endpoint string
	model    string
	apiKey   string
	client   *http.Client
}

// NewRemote builds a remote code source from explicit configuration.
func NewRemote(cfg model.ProviderConfig) *Remote {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	modelID := cfg.Model
	if modelID == "" {
		modelID = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Remote{
		endpoint: endpoint,
		model:    modelID,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: timeout},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// FetchCode requests a generated snippet and extracts the code from the
// model response.
func (r *Remote) FetchCode(ctx context.Context, lang model.Language) (string, error) {
	prompt := fmt.Sprintf(
		"Write a %s program that demonstrates a useful algorithm or data structure. "+
			"The code should be well-commented, educational, and between 175-200 lines long. "+
			"Do not include any explanations outside the code.",
		lang.DisplayName(),
	)

	payload, err := json.Marshal(chatRequest{
		Model:    r.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected generation status: %s", resp.Status)
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode generation response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("generation response has no choices")
	}
	content := decoded.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("generation response is empty")
	}
	return ExtractCodeBlock(content, lang), nil
}
