// Package upstream holds the completion endpoint client. One POST per
// translation, no retries; cancellation rides on the request context.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrUpstream marks a reachable endpoint answering badly: non-2xx,
	// malformed JSON, or an empty candidate list.
	ErrUpstream = errors.New("upstream error")
	// ErrTransport marks a failure to reach the endpoint at all.
	ErrTransport = errors.New("transport error")
)

// StatusError is the non-2xx case of ErrUpstream, keeping the upstream
// status code available to callers (access logging).
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v: upstream returned HTTP %d: %s", ErrUpstream, e.Status, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrUpstream }

const (
	ProviderOpenAI = "openai"
	ProviderAzure  = "azure"

	defaultAPIVersion = "2023-05-15"
)

type Options struct {
	Provider    string // "openai" or "azure"
	Endpoint    string // base URL, e.g. https://myres.openai.azure.com
	APIKey      string
	Deployment  string // deployment (azure) or model (openai)
	APIVersion  string // azure api-version query value
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

type Client struct {
	opts Options
	http *resty.Client
}

func New(opts Options) *Client {
	if strings.TrimSpace(opts.APIVersion) == "" {
		opts.APIVersion = defaultAPIVersion
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		opts: opts,
		http: resty.New().SetTimeout(timeout),
	}
}

type completionRequest struct {
	Model       string  `json:"model,omitempty"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
}

// Complete sends the prompt and returns the first candidate's text, trimmed.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	body := completionRequest{
		Prompt:      prompt,
		MaxTokens:   c.opts.MaxTokens,
		Temperature: c.opts.Temperature,
	}
	if c.opts.Provider != ProviderAzure {
		body.Model = c.opts.Deployment
	}

	req := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("api-key", c.opts.APIKey).
		SetBody(body)
	if c.opts.Provider != ProviderAzure {
		req.SetHeader("Authorization", "Bearer "+c.opts.APIKey)
	}
	if c.opts.Provider == ProviderAzure {
		req.SetQueryParam("api-version", c.opts.APIVersion)
	}

	resp, err := req.Post(c.completionURL())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if resp.IsError() {
		return "", &StatusError{
			Status: resp.StatusCode(),
			Body:   abbreviate(strings.TrimSpace(resp.String()), 2048),
		}
	}

	var out completionResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("%w: invalid completion response: %v", ErrUpstream, err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%w: completion response has no choices", ErrUpstream)
	}
	return strings.TrimSpace(out.Choices[0].Text), nil
}

func (c *Client) completionURL() string {
	base := strings.TrimRight(strings.TrimSpace(c.opts.Endpoint), "/")
	if c.opts.Provider == ProviderAzure {
		return base + "/openai/deployments/" + c.opts.Deployment + "/completions"
	}
	if strings.HasSuffix(base, "/v1") {
		return base + "/completions"
	}
	return base + "/v1/completions"
}

func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
