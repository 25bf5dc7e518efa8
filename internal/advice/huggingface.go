package advice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultHuggingFaceURL = "https://api-inference.huggingface.co/models/microsoft/DialoGPT-medium"

// HuggingFaceClient calls the Hugging Face text-generation inference API.
type HuggingFaceClient struct {
	apiKey string
	url    string
	client *http.Client
}

type huggingFaceRequest struct {
	Inputs string `json:"inputs"`
}

type huggingFaceResult struct {
	GeneratedText string `json:"generated_text"`
}

func NewHuggingFaceClient(apiKey string) *HuggingFaceClient {
	return &HuggingFaceClient{
		apiKey: apiKey,
		url:    defaultHuggingFaceURL,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// WithURL overrides the inference endpoint, mainly for tests.
func (c *HuggingFaceClient) WithURL(url string) *HuggingFaceClient {
	c.url = url
	return c
}

func (c *HuggingFaceClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(huggingFaceRequest{Inputs: prompt})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("inference endpoint returned status %d", resp.StatusCode)
	}

	// Expected shape: an array whose first element carries generated_text.
	var results []huggingFaceResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return "", fmt.Errorf("failed to decode inference response: %w", err)
	}
	if len(results) == 0 || strings.TrimSpace(results[0].GeneratedText) == "" {
		return "", fmt.Errorf("inference response contained no generated text")
	}

	return results[0].GeneratedText, nil
}
