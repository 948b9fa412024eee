package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
)

const (
	LocalProviderName = "local"

	// hashWindow bounds how much of the payload feeds the hash; enough to
	// vary per image without walking megabytes of base64.
	hashWindow = 200
)

// LocalProvider is the deterministic stand-in used when no model credential
// is configured. It derives stable pseudo-measurements from the payload so
// development and tests stay offline and never hard-fail.
type LocalProvider struct {
	logger *slog.Logger
}

func NewLocalProvider(logger *slog.Logger) *LocalProvider {
	return &LocalProvider{
		logger: logger,
	}
}

func (p *LocalProvider) IsReady() bool {
	if p.logger == nil {
		fmt.Println("Logger of LocalProvider is not initialized")
		return false
	}

	return true
}

func (p *LocalProvider) AnalyzeImage(ctx context.Context, imageBase64, prompt string) (*Estimate, error) {
	defer ctx.Done()

	image := strings.TrimSpace(imageBase64)
	if image == "" {
		return nil, ErrInvalidImage
	}

	window := len(image)
	if window > hashWindow {
		window = hashWindow
	}

	var hash uint32
	for i := 0; i < window; i++ {
		hash = hash*31 + uint32(image[i])
	}

	base := float64(hash%1000) / 10
	estimate := &Estimate{
		HeightMm:    roundTenth(10 + math.Mod(base, 30)),
		WidthMm:     roundTenth(20 + math.Mod(base/2, 50)),
		LengthMm:    roundTenth(30 + math.Mod(base/3, 70)),
		Explanation: "Simulated estimate derived from the uploaded image; no model credential configured.",
	}

	p.logger.Debug("Generated local estimate",
		"heightMm", estimate.HeightMm, "widthMm", estimate.WidthMm, "lengthMm", estimate.LengthMm)
	return estimate, nil
}

func roundTenth(value float64) float64 {
	return math.Round(value*10) / 10
}
