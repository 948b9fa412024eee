// trigger-report command asks a deployed instance to rebuild the history
// report for a period.

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/clinmind/samplelog/sample"
)

const (
	DefaultPeriod      = "P7D"
	DefaultTaskAPIPath = "/tasks/buildReport"

	defaultRequestTimeout = 10 * time.Second
)

type Config struct {
	APIEndpoint string
	APIKey      string
	TaskAPIPath string

	Period         string
	RequestTimeout time.Duration
}

func main() {
	fmt.Println("Triggering report build...")
	config, err := loadConfigFromEnv()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	httpClient := &http.Client{
		Timeout: config.RequestTimeout,
	}

	ctx := context.Background()
	if err := printHistorySize(ctx, httpClient, config); err != nil {
		fmt.Printf("Error reading measurement history: %v\n", err)
		os.Exit(1)
	}

	if err := triggerReportTask(ctx, httpClient, config); err != nil {
		fmt.Printf("Error triggering report build: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Report build triggered successfully.")
}

func loadConfigFromEnv() (*Config, error) {
	apiEndpoint := os.Getenv("SL_API_ENDPOINT")
	if apiEndpoint == "" {
		return nil, fmt.Errorf("SL_API_ENDPOINT is not set")
	}

	apiKey := os.Getenv("SL_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("SL_API_KEY is not set")
	}

	taskAPIPath := os.Getenv("SL_REPORT_TASK_PATH")
	if taskAPIPath == "" {
		taskAPIPath = DefaultTaskAPIPath
	}

	period := os.Getenv("SL_PERIOD")
	if period == "" {
		period = DefaultPeriod
	}

	return &Config{
		APIEndpoint:    apiEndpoint,
		APIKey:         apiKey,
		TaskAPIPath:    taskAPIPath,
		Period:         period,
		RequestTimeout: defaultRequestTimeout,
	}, nil
}

func printHistorySize(ctx context.Context, client *http.Client, config *Config) error {
	sampleRepository := sample.NewAPIRepository(client, config.APIEndpoint, config.APIKey)
	if !sampleRepository.IsReady() {
		return fmt.Errorf("sample repository is not ready")
	}

	records, err := sampleRepository.ListAll(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Found %d measurement records.\n", len(records))
	return nil
}

func triggerReportTask(ctx context.Context, client *http.Client, config *Config) error {
	taskURL, err := url.JoinPath(config.APIEndpoint, config.TaskAPIPath)
	if err != nil {
		return fmt.Errorf("failed to construct task URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, taskURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+config.APIKey)

	q := req.URL.Query()
	q.Add("period", config.Period)
	req.URL.RawQuery = q.Encode()

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func(resp *http.Response) {
		if err := resp.Body.Close(); err != nil {
			fmt.Printf("failed to close response body: %v\n", err)
		}
	}(resp)

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d - %s", resp.StatusCode, string(content))
	}

	return nil
}
