package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HuggingFaceSummarizer calls the HuggingFace inference API for text
// summarization.
type HuggingFaceSummarizer struct {
	modelURL string
	apiKey   string
	client   *http.Client
}

func NewHuggingFaceSummarizer(modelURL, apiKey string) *HuggingFaceSummarizer {
	return &HuggingFaceSummarizer{
		modelURL: modelURL,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

type summarizeRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters summarizeParameters `json:"parameters"`
}

type summarizeParameters struct {
	MaxLength int  `json:"max_length"`
	MinLength int  `json:"min_length"`
	DoSample  bool `json:"do_sample"`
}

type summarizeResult struct {
	SummaryText string `json:"summary_text"`
	Error       string `json:"error"`
}

// Summarize sends the text to the model and returns the generated summary.
func (h *HuggingFaceSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	if h.apiKey == "" {
		return "", errors.New("summarization API key is not configured")
	}

	payload, err := json.Marshal(summarizeRequest{
		Inputs: text,
		Parameters: summarizeParameters{
			MaxLength: 250,
			MinLength: 100,
			DoSample:  false,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.modelURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+h.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("summarization request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("summarization API returned %d: %s", resp.StatusCode, body)
	}

	var results []summarizeResult
	if err := json.Unmarshal(body, &results); err != nil {
		// Errors come back as a bare object, not an array.
		var apiErr summarizeResult
		if jsonErr := json.Unmarshal(body, &apiErr); jsonErr == nil && apiErr.Error != "" {
			return "", fmt.Errorf("summarization API error: %s", apiErr.Error)
		}
		return "", fmt.Errorf("unexpected API response: %v", err)
	}
	if len(results) == 0 || results[0].SummaryText == "" {
		return "", errors.New("summarization API returned no summary")
	}

	return results[0].SummaryText, nil
}
