package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
)

const (
	GeminiProviderName = "gemini"

	DefaultGeminiModel   = "gemini-2.5-flash"
	DefaultGeminiAPIBase = "https://generativelanguage.googleapis.com/v1"

	imageMimeType = "image/jpeg"
)

// DefaultPrompt instructs the model to answer with nothing but the three
// measurement keys, so the response survives the strict parse below.
const DefaultPrompt = `You are an assistant that measures the basic dimensions of a clinical sample from a photo. ` +
	`Respond ONLY with valid JSON holding the keys heightMm, widthMm and lengthMm, numbers in millimeters (mm). ` +
	`If you are not certain, return null for that field. ` +
	`Example response: {"heightMm": 10.2, "widthMm": 25.1, "lengthMm": 31.0}`

// GeminiProvider estimates dimensions by sending the photo to the Gemini
// generateContent REST endpoint. The response is parsed then validated,
// never trusted on field presence.
type GeminiProvider struct {
	HTTPProvider

	APIBase string
	Model   string

	apiKey string
	logger *slog.Logger
}

func NewGeminiProvider(apiKey string, client *http.Client, logger *slog.Logger) *GeminiProvider {
	return &GeminiProvider{
		APIBase: DefaultGeminiAPIBase,
		Model:   DefaultGeminiModel,
		apiKey:  apiKey,
		logger:  logger,
		HTTPProvider: HTTPProvider{
			client: client,
			logger: logger,
		},
	}
}

func (p *GeminiProvider) IsReady() bool {
	if !p.HTTPProvider.IsReady() {
		return false
	}

	if p.apiKey == "" {
		p.logger.Error("Gemini API key is not configured")
		return false
	}

	return true
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (p *GeminiProvider) AnalyzeImage(ctx context.Context, imageBase64, prompt string) (*Estimate, error) {
	defer ctx.Done()

	if p.apiKey == "" {
		return nil, ErrServerMisconfigured
	}

	if !p.IsReady() {
		return nil, ErrProviderNotReady
	}

	image := strings.TrimSpace(imageBase64)
	if image == "" {
		return nil, ErrInvalidImage
	}

	userPrompt := strings.TrimSpace(prompt)
	if userPrompt == "" {
		userPrompt = DefaultPrompt
	}

	request := geminiRequest{
		GenerationConfig: geminiGenerationConfig{ResponseMimeType: "application/json"},
		Contents: []geminiContent{
			{
				Role: "user",
				Parts: []geminiPart{
					{Text: userPrompt},
					{InlineData: &geminiInlineData{MimeType: imageMimeType, Data: image}},
				},
			},
		},
	}

	resourceURL := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.APIBase, p.Model, url.QueryEscape(p.apiKey))
	content, statusCode, err := p.PostJSON(ctx, resourceURL, request)
	if err != nil {
		p.logger.Error("Gemini request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	if statusCode != http.StatusOK {
		p.logger.Error("Gemini returned non-200 status", "status", statusCode)
		return nil, ErrServiceUnavailable
	}

	var response geminiResponse
	if err := json.NewDecoder(content).Decode(&response); err != nil {
		p.logger.Error("Failed to decode Gemini response", "error", err)
		return nil, ErrServiceUnavailable
	}

	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		p.logger.Error("Gemini response has no candidates")
		return nil, ErrServiceUnavailable
	}

	estimate, err := ParseEstimate(response.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		return nil, err
	}

	if estimate.Explanation == "" {
		estimate.Explanation = "Dimensions estimated from the uploaded image."
	}

	p.logger.Info("Successfully estimated dimensions from image",
		"heightMm", estimate.HeightMm, "widthMm", estimate.WidthMm, "lengthMm", estimate.LengthMm)
	return estimate, nil
}

// ParseEstimate extracts the JSON object from the model's text answer and
// validates all three dimensions are present and finite. Models wrap JSON in
// prose often enough that everything outside the outermost braces is
// discarded first.
func ParseEstimate(text string) (*Estimate, error) {
	trimmed := strings.TrimSpace(text)

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	candidate := trimmed
	if start >= 0 && end >= start {
		candidate = trimmed[start : end+1]
	}

	var parsed struct {
		HeightMm    *float64 `json:"heightMm"`
		WidthMm     *float64 `json:"widthMm"`
		LengthMm    *float64 `json:"lengthMm"`
		Explanation string   `json:"explanation"`
	}
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return nil, ErrServiceUnavailable
	}

	for _, value := range []*float64{parsed.HeightMm, parsed.WidthMm, parsed.LengthMm} {
		if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) {
			return nil, ErrServiceUnavailable
		}
	}

	return &Estimate{
		HeightMm:    *parsed.HeightMm,
		WidthMm:     *parsed.WidthMm,
		LengthMm:    *parsed.LengthMm,
		Explanation: parsed.Explanation,
	}, nil
}
