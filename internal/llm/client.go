package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGroq   Provider = "groq"
	ProviderNone   Provider = "none"
)

const (
	openAIChatURL      = "https://api.openai.com/v1/chat/completions"
	groqChatURL        = "https://api.groq.com/openai/v1/chat/completions"
	openAIEmbeddingURL = "https://api.openai.com/v1/embeddings"

	// 1536 dimensions
	embeddingModel = "text-embedding-3-small"
)

// Client talks to an OpenAI-compatible chat completion API plus the OpenAI
// embeddings API. Every call is a single attempt with a bounded timeout.
// Groq has no embeddings endpoint, so embeddings always go to OpenAI with
// their own key.
type Client struct {
	provider   Provider
	apiKey     string
	embKey     string
	model      string
	chatClient *http.Client
	embClient  *http.Client
	log        *zap.Logger
}

func NewClient(provider, apiKey, embeddingAPIKey, model string, log *zap.Logger) *Client {
	return &Client{
		provider:   Provider(provider),
		apiKey:     apiKey,
		embKey:     embeddingAPIKey,
		model:      model,
		chatClient: &http.Client{Timeout: 60 * time.Second},
		embClient:  &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}
}

// Complete sends a system+user prompt and returns the assistant reply text.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	var url string
	switch c.provider {
	case ProviderOpenAI:
		url = openAIChatURL
	case ProviderGroq:
		url = groqChatURL
	case ProviderNone:
		return "", fmt.Errorf("llm provider not configured")
	default:
		return "", fmt.Errorf("unknown provider: %s", c.provider)
	}

	reqBody := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
		"temperature": 0.1,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.chatClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s chat request: %w", c.provider, err)
	}
	defer resp.Body.Close()

	c.log.Debug("chat completion finished",
		zap.String("provider", string(c.provider)),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%s chat API error: %d - %s", c.provider, resp.StatusCode, string(body))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("%s error: %s", c.provider, result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response from %s", c.provider)
	}

	return result.Choices[0].Message.Content, nil
}

// Embed generates a 1536-dimension vector for the text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	requestBody := map[string]interface{}{
		"input": text,
		"model": embeddingModel,
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIEmbeddingURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.embKey)

	resp, err := c.embClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("embedding API error: %d - %s", resp.StatusCode, string(body))
	}

	var result struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	if len(result.Data) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}

	return result.Data[0].Embedding, nil
}
