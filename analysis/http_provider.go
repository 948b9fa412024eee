package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

type HTTPProvider struct {
	client *http.Client
	logger *slog.Logger
}

func NewHTTPProvider(client *http.Client, logger *slog.Logger) *HTTPProvider {
	return &HTTPProvider{
		client: client,
		logger: logger,
	}
}

func (p *HTTPProvider) IsReady() bool {
	if p.logger == nil {
		fmt.Println("Logger of HTTPProvider is not initialized")
		return false
	}

	if p.client == nil {
		p.logger.Error("HTTP client is not set for HTTPProvider")
		return false
	}

	return true
}

// PostJSON sends the payload and returns the response body and status code.
// The caller maps non-200 statuses; only transport failures return an error.
func (p *HTTPProvider) PostJSON(ctx context.Context, url string, payload any) (io.Reader, int, error) {
	if !p.IsReady() {
		return nil, 0, ErrProviderNotReady
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, 0, err
	}

	defer func(resp *http.Response) {
		if err := resp.Body.Close(); err != nil {
			p.logger.Error("Failed to close response body", "url", url, "error", err)
		}
	}(resp)

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response content: %w", err)
	}

	p.logger.Debug("Content retrieved", "status", resp.StatusCode, "length", len(content))
	return bytes.NewReader(content), resp.StatusCode, nil
}
