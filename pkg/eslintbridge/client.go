package eslintbridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client sends analysis requests to a running eslint-bridge.
type Client interface {
	// AnalyzeJS analyzes a JavaScript file. A nil response means the bridge
	// had nothing to report.
	AnalyzeJS(ctx context.Context, filePath string) (*AnalysisResponse, error)

	// AnalyzeTS analyzes a TypeScript file.
	AnalyzeTS(ctx context.Context, filePath string) (*AnalysisResponse, error)

	// Close releases client resources.
	Close() error
}

const (
	analyzeJSPath = "/analyze-js"
	analyzeTSPath = "/analyze-ts"

	defaultTimeout = 60 * time.Second
)

// HTTPClient talks to the bridge over its local HTTP endpoint.
type HTTPClient struct {
	baseURL   string
	client    *http.Client
	rules     []RuleConfig
	tsConfigs []string
}

// HTTPOption configures an HTTPClient.
type HTTPOption func(*HTTPClient)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(c *HTTPClient) {
		c.client = client
	}
}

// WithRules sets the eslint rules enabled for every request.
func WithRules(rules []RuleConfig) HTTPOption {
	return func(c *HTTPClient) {
		c.rules = rules
	}
}

// WithTSConfigs sets the tsconfig.json files passed with TypeScript requests.
func WithTSConfigs(paths []string) HTTPOption {
	return func(c *HTTPClient) {
		c.tsConfigs = paths
	}
}

// NewHTTPClient creates a client for the bridge listening at baseURL,
// e.g. "http://127.0.0.1:4000".
func NewHTTPClient(baseURL string, opts ...HTTPOption) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
		rules:   []RuleConfig{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AnalyzeJS implements Client.
func (c *HTTPClient) AnalyzeJS(ctx context.Context, filePath string) (*AnalysisResponse, error) {
	return c.analyze(ctx, analyzeJSPath, AnalysisRequest{
		FilePath: filePath,
		Rules:    c.rules,
	})
}

// AnalyzeTS implements Client.
func (c *HTTPClient) AnalyzeTS(ctx context.Context, filePath string) (*AnalysisResponse, error) {
	return c.analyze(ctx, analyzeTSPath, AnalysisRequest{
		FilePath:  filePath,
		Rules:     c.rules,
		TSConfigs: c.tsConfigs,
	})
}

// Close implements Client.
func (c *HTTPClient) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) analyze(ctx context.Context, endpoint string, req AnalysisRequest) (*AnalysisResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned HTTP %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var out AnalysisResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &out, nil
}
