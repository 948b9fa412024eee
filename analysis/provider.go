package analysis

import (
	"context"
	"fmt"
)

var (
	ErrInvalidImage        = fmt.Errorf("missing or unparseable image payload")
	ErrPayloadTooLarge     = fmt.Errorf("image payload too large")
	ErrServiceUnavailable  = fmt.Errorf("measurement model unavailable or returned unparseable content")
	ErrServerMisconfigured = fmt.Errorf("measurement model credential missing")
	ErrProviderNotReady    = fmt.Errorf("provider is not ready")
)

// Estimate is a model's guess of the three sample dimensions, in
// millimeters.
type Estimate struct {
	HeightMm    float64 `json:"heightMm"`
	WidthMm     float64 `json:"widthMm"`
	LengthMm    float64 `json:"lengthMm"`
	Explanation string  `json:"explanation,omitempty"`
}

// Provider turns a base64-encoded photo into estimated dimensions. Failures
// are one of the sentinel errors above, possibly wrapped; no automatic
// retries are performed.
type Provider interface {
	AnalyzeImage(ctx context.Context, imageBase64, prompt string) (*Estimate, error)
	IsReady() bool
}
