package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	spinhttp "github.com/spinframework/spin-go-sdk/v2/http"
	spinvars "github.com/spinframework/spin-go-sdk/v2/variables"

	"github.com/clinmind/samplelog/analysis"
	"github.com/clinmind/samplelog/log"
	"github.com/clinmind/samplelog/middleware"
	"github.com/clinmind/samplelog/response"
)

const (
	allowedOrigin = "*"

	// localModeKey is the placeholder credential that forces the
	// deterministic local provider, same as an absent key.
	localModeKey = "demo_local_key"

	// maxImageBase64Bytes bounds the base64 payload; larger uploads get a 413.
	maxImageBase64Bytes = 8 << 20
)

type AnalyzeAppConfig struct {
	GeminiAPIKey string `json:"gemini_api_key"`
	LogLevel     string `json:"log_level"`
}

func NewAnalyzeAppConfigFromSpinVariables() *AnalyzeAppConfig {
	// The Gemini key is optional: without it the app runs in local mode.
	apiKey, err := spinvars.Get("gemini_api_key")
	if err != nil {
		apiKey = ""
	}

	logLevel, err := spinvars.Get("log_level")
	if err != nil {
		logLevel = "info"
	}

	return &AnalyzeAppConfig{
		GeminiAPIKey: apiKey,
		LogLevel:     logLevel,
	}
}

type analyzeAppComponent struct {
	config   *AnalyzeAppConfig
	provider analysis.Provider
	logger   *slog.Logger
}

func (c *analyzeAppComponent) IsReady() bool {
	if c.logger == nil {
		fmt.Println("Logger of analyzeAppComponent is not initialized")
		return false
	}

	if c.provider == nil || !c.provider.IsReady() {
		c.logger.Error("Analysis provider is not ready")
		return false
	}

	return true
}

func init() {
	spinhttp.Handle(func(w http.ResponseWriter, r *http.Request) {
		config := NewAnalyzeAppConfigFromSpinVariables()

		appComponents := initAnalyzeAppComponent(*config)
		if !appComponents.IsReady() {
			response.RenderFatal(w, fmt.Errorf("analyze app component is not ready"))
			return
		}

		router := spinhttp.NewRouter()
		router.POST("/analyze", middleware.RequestID(newAnalyzeHandler(appComponents)))
		router.OPTIONS("/analyze", newPreflightHandler())
		router.NotFound = response.NewNotFoundHandler(appComponents.logger)
		router.ServeHTTP(w, r)
	})
}

func main() {}

func initAnalyzeAppComponent(config AnalyzeAppConfig) *analyzeAppComponent {
	loggerOptions := &slog.HandlerOptions{
		Level: log.SlogLevelInfoFromString(config.LogLevel),
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, loggerOptions)).With("component", "analyze")

	var provider analysis.Provider
	if config.GeminiAPIKey == "" || config.GeminiAPIKey == localModeKey {
		logger.Info("No model credential configured, using the local provider")
		provider = analysis.NewLocalProvider(logger)
	} else {
		provider = analysis.NewGeminiProvider(config.GeminiAPIKey, spinhttp.NewClient(), logger)
	}

	return &analyzeAppComponent{
		config:   &config,
		provider: provider,
		logger:   logger,
	}
}

type analyzeRequest struct {
	ImageBase64 string `json:"imageBase64"`
	// Base64Image is the legacy alias older clients still send.
	Base64Image string `json:"base64Image"`
	Prompt      string `json:"prompt"`
}

type analyzeResponse struct {
	HeightMm    float64 `json:"heightMm"`
	WidthMm     float64 `json:"widthMm"`
	LengthMm    float64 `json:"lengthMm"`
	Explanation string  `json:"explanation,omitempty"`

	// Localized mirrors kept for clients of the previous frontend.
	AlturaMm      float64 `json:"altura_mm"`
	LarguraMm     float64 `json:"largura_mm"`
	ComprimentoMm float64 `json:"comprimento_mm"`
}

func newAnalyzeHandler(appComponents *analyzeAppComponent) spinhttp.RouterHandle {
	return func(w http.ResponseWriter, r *http.Request, params spinhttp.Params) {
		logger := appComponents.logger
		setCORSHeaders(w)

		var request analyzeRequest
		decoder := json.NewDecoder(r.Body)
		if err := decoder.Decode(&request); err != nil {
			response.RenderError(w, fmt.Errorf("invalid JSON in request body"), http.StatusBadRequest)
			return
		}
		r.Body.Close()

		imageBase64 := strings.TrimSpace(request.ImageBase64)
		if imageBase64 == "" {
			imageBase64 = strings.TrimSpace(request.Base64Image)
		}

		if imageBase64 == "" {
			response.RenderError(w, fmt.Errorf("image is missing, send the photo as base64"), http.StatusUnprocessableEntity)
			return
		}

		if len(imageBase64) > maxImageBase64Bytes {
			response.RenderError(w, analysis.ErrPayloadTooLarge, http.StatusRequestEntityTooLarge)
			return
		}

		estimate, err := appComponents.provider.AnalyzeImage(r.Context(), imageBase64, strings.TrimSpace(request.Prompt))
		if err != nil {
			logger.Error("Image analysis failed", "error", err)
			renderAnalysisError(w, err)
			return
		}

		logger.Info("Image analyzed successfully",
			"heightMm", estimate.HeightMm, "widthMm", estimate.WidthMm, "lengthMm", estimate.LengthMm)
		response.RenderJSON(w, analyzeResponse{
			HeightMm:      estimate.HeightMm,
			WidthMm:       estimate.WidthMm,
			LengthMm:      estimate.LengthMm,
			Explanation:   estimate.Explanation,
			AlturaMm:      estimate.HeightMm,
			LarguraMm:     estimate.WidthMm,
			ComprimentoMm: estimate.LengthMm,
		})
	}
}

func renderAnalysisError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, analysis.ErrInvalidImage):
		response.RenderError(w, err, http.StatusUnprocessableEntity)
	case errors.Is(err, analysis.ErrPayloadTooLarge):
		response.RenderError(w, err, http.StatusRequestEntityTooLarge)
	case errors.Is(err, analysis.ErrServiceUnavailable):
		response.RenderErrorDetails(w, fmt.Errorf("model unavailable, try again later"), err.Error(), http.StatusBadGateway)
	case errors.Is(err, analysis.ErrServerMisconfigured), errors.Is(err, analysis.ErrProviderNotReady):
		response.RenderError(w, fmt.Errorf("analysis service is not configured"), http.StatusInternalServerError)
	default:
		response.RenderErrorDetails(w, fmt.Errorf("internal error while analyzing the image"), err.Error(), http.StatusInternalServerError)
	}
}

func newPreflightHandler() spinhttp.RouterHandle {
	return func(w http.ResponseWriter, r *http.Request, params spinhttp.Params) {
		setCORSHeaders(w)
		w.WriteHeader(http.StatusNoContent)
	}
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}
