package sample

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// APIRepository implements Repository over the public HTTP API. CLI tools
// use it to drive a deployed instance.
type APIRepository struct {
	client *http.Client

	baseURL string
	apiKey  string
}

func NewAPIRepository(client *http.Client, baseURL, apiKey string) *APIRepository {
	return &APIRepository{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

func (r *APIRepository) IsReady() bool {
	return r.client != nil && r.baseURL != ""
}

func (r *APIRepository) Close() error {
	return nil
}

func (r *APIRepository) ListAll(ctx context.Context) ([]Record, error) {
	defer ctx.Done()

	req, err := r.newRequest(ctx, http.MethodGet, "/samples", nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func(resp *http.Response) {
		if err := resp.Body.Close(); err != nil {
			fmt.Printf("failed to close response body: %v\n", err)
		}
	}(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned non-200 status: %d", resp.StatusCode)
	}

	var collection struct {
		Items []Record `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&collection); err != nil {
		return nil, err
	}

	return collection.Items, nil
}

func (r *APIRepository) Save(ctx context.Context, input SaveInput) (*Record, error) {
	defer ctx.Done()

	body, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}

	req, err := r.newRequest(ctx, http.MethodPost, "/samples", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func(resp *http.Response) {
		if err := resp.Body.Close(); err != nil {
			fmt.Printf("failed to close response body: %v\n", err)
		}
	}(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned non-200 status: %d", resp.StatusCode)
	}

	var saved struct {
		Data *Record `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&saved); err != nil {
		return nil, err
	}

	if saved.Data == nil {
		return nil, fmt.Errorf("API response did not include the saved record")
	}

	return saved.Data, nil
}

func (r *APIRepository) DeleteByID(ctx context.Context, sampleID string, createdAt time.Time) error {
	defer ctx.Done()

	path := "/samples/" + url.PathEscape(sampleID)
	req, err := r.newRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}

	q := req.URL.Query()
	q.Add("createdAt", createdAt.Format(time.RFC3339Nano))
	req.URL.RawQuery = q.Encode()

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer func(resp *http.Response) {
		if err := resp.Body.Close(); err != nil {
			fmt.Printf("failed to close response body: %v\n", err)
		}
	}(resp)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned non-200 status: %d", resp.StatusCode)
	}

	return nil
}

func (r *APIRepository) newRequest(ctx context.Context, method, path string, body *bytes.Reader) (*http.Request, error) {
	resourceURL := r.baseURL + path

	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, resourceURL, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, resourceURL, nil)
	}
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Accept", "application/json")
	return req, nil
}
