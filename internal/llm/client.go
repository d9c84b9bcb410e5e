// Package llm provides an advisory client for a hosted text-generation
// inference endpoint. The client sits off the routing path: the engine
// only consults it to attach an optional note to a completed response,
// and any failure is logged and ignored by the caller.
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
)

// Config describes how to reach the inference endpoint.
type Config struct {
	Endpoint  string
	AuthToken string
	Timeout   time.Duration
}

// AdvisorClient calls a hosted text-generation model over HTTP.
type AdvisorClient struct {
	endpoint string
	token    string
	http     *http.Client
}

// NewAdvisorClient validates the configuration and returns a ready-to-use
// client.
func NewAdvisorClient(cfg Config) (*AdvisorClient, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, errors.New("llm: endpoint required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &AdvisorClient{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		token:    cfg.AuthToken,
		http: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type generateRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters generateParameters `json:"parameters"`
}

type generateParameters struct {
	MaxNewTokens int     `json:"max_new_tokens"`
	Temperature  float64 `json:"temperature"`
}

type generateResponse struct {
	GeneratedText string `json:"generated_text"`
}

// Advise asks the model for a short note about a completed request. The
// instruction and the engine's summary are combined into the prompt; the
// model never decides which capabilities run.
func (c *AdvisorClient) Advise(ctx context.Context, instruction, summary string) (string, error) {
	prompt := fmt.Sprintf(
		"A clinic clerical request was processed.\nRequest: %s\nOutcome: %s\nWrite one short, non-medical note for the front desk.",
		instruction, summary,
	)

	payload, err := json.Marshal(generateRequest{
		Inputs: prompt,
		Parameters: generateParameters{
			MaxNewTokens: 80,
			Temperature:  0.3,
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("llm: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm: call endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("llm: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm: endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	// The endpoint returns a list of candidate generations; the first
	// one is the reply.
	var candidates []generateResponse
	if err := json.Unmarshal(body, &candidates); err != nil {
		return "", fmt.Errorf("llm: decode response: %w", err)
	}
	if len(candidates) == 0 {
		return "", errors.New("llm: empty response")
	}

	note := strings.TrimSpace(strings.TrimPrefix(candidates[0].GeneratedText, prompt))
	if note == "" {
		return "", errors.New("llm: blank generation")
	}
	return note, nil
}
