package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	spinhttp "github.com/spinframework/spin-go-sdk/v2/http"
	spinvars "github.com/spinframework/spin-go-sdk/v2/variables"

	"github.com/clinmind/samplelog/log"
	"github.com/clinmind/samplelog/middleware"
	"github.com/clinmind/samplelog/report"
	"github.com/clinmind/samplelog/response"
	"github.com/clinmind/samplelog/sample"
	"github.com/clinmind/samplelog/secret"
	"github.com/clinmind/samplelog/task"
)

type ReportAppConfig struct {
	ReportStoreName string `json:"report_store_name"`
	SampleStoreName string `json:"sample_store_name"`
	APIKey          string `json:"api_key"`
	LogLevel        string `json:"log_level"`
}

func NewReportAppConfigFromSpinVariables() (*ReportAppConfig, error) {
	reportStoreName, err := spinvars.Get("report_store_name")
	if err != nil {
		return nil, fmt.Errorf("failed to get report_store_name: %w", err)
	}

	sampleStoreName, err := spinvars.Get("sample_store_name")
	if err != nil {
		return nil, fmt.Errorf("failed to get sample_store_name: %w", err)
	}

	apiKey, err := spinvars.Get("api_key")
	if err != nil {
		return nil, fmt.Errorf("failed to get api_key: %w", err)
	}

	logLevel, err := spinvars.Get("log_level")
	if err != nil {
		logLevel = "info"
	}

	return &ReportAppConfig{
		ReportStoreName: reportStoreName,
		SampleStoreName: sampleStoreName,
		APIKey:          apiKey,
		LogLevel:        logLevel,
	}, nil
}

type reportAppComponent struct {
	config           *ReportAppConfig
	reportRepository report.Repository
	sampleRepository sample.Repository
	secretStore      secret.Store
	logger           *slog.Logger
}

func (c *reportAppComponent) IsReady() bool {
	if c.logger == nil {
		fmt.Println("Logger of reportAppComponent is not initialized")
		return false
	}

	if c.reportRepository == nil || !c.reportRepository.IsReady() {
		c.logger.Error("Report repository is not ready")
		return false
	}

	if c.sampleRepository == nil || !c.sampleRepository.IsReady() {
		c.logger.Error("Sample repository is not ready")
		return false
	}

	if c.secretStore == nil {
		c.logger.Error("Secret store is not initialized")
		return false
	}

	return true
}

func (c *reportAppComponent) Close() {
	if c.reportRepository != nil {
		if err := c.reportRepository.Close(); err != nil {
			c.logger.Error("Failed to close report repository", "error", err)
		}
	}

	if c.sampleRepository != nil {
		if err := c.sampleRepository.Close(); err != nil {
			c.logger.Error("Failed to close sample repository", "error", err)
		}
	}

	if c.secretStore != nil {
		if err := c.secretStore.Close(); err != nil {
			c.logger.Error("Failed to close secret store", "error", err)
		}
	}

	c.logger.Info("Report app component closed")
}

func init() {
	spinhttp.Handle(func(w http.ResponseWriter, r *http.Request) {
		config, err := NewReportAppConfigFromSpinVariables()
		if err != nil {
			response.RenderFatal(w, fmt.Errorf("failed to load report app config: %w", err))
			return
		}

		appComponents, err := initReportAppComponent(*config)
		if err != nil {
			response.RenderFatal(w, fmt.Errorf("failed to initialize report app component: %w", err))
			return
		}
		defer appComponents.Close()

		if !appComponents.IsReady() {
			response.RenderFatal(w, fmt.Errorf("report app component is not ready"))
			return
		}

		logger := appComponents.logger
		logger.Debug("Report app component is ready")

		router := spinhttp.NewRouter()
		router.GET("/reports", authed(newReportListHandler(appComponents), appComponents))
		router.GET("/reports/:id", authed(newGetReportHandler(appComponents), appComponents))
		router.POST("/tasks/buildReport", authed(newBuildReportHandler(appComponents), appComponents))
		router.NotFound = response.NewNotFoundHandler(logger)
		router.ServeHTTP(w, r)
	})
}

func main() {}

func authed(h spinhttp.RouterHandle, appComponents *reportAppComponent) spinhttp.RouterHandle {
	return middleware.RequestID(middleware.BearerAuth(h, appComponents.secretStore))
}

func initReportAppComponent(config ReportAppConfig) (*reportAppComponent, error) {
	loggerOptions := &slog.HandlerOptions{
		Level: log.SlogLevelInfoFromString(config.LogLevel),
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, loggerOptions)).With("component", "report")

	secretStore := secret.NewInMemoryStore()
	if err := secretStore.Set(config.APIKey, config.APIKey); err != nil {
		return nil, fmt.Errorf("failed to store API key: %w", err)
	}

	reportRepository, err := report.NewSpinKVRepository(config.ReportStoreName, logger)
	if err != nil {
		logger.Error("Failed to initialize report repository", "error", err)
		return nil, fmt.Errorf("failed to initialize report repository: %w", err)
	}

	sampleRepository, err := sample.NewSpinKVRepository(config.SampleStoreName, logger)
	if err != nil {
		logger.Error("Failed to initialize sample repository", "error", err)
		return nil, fmt.Errorf("failed to initialize sample repository: %w", err)
	}

	return &reportAppComponent{
		config:           &config,
		reportRepository: reportRepository,
		sampleRepository: sampleRepository,
		secretStore:      secretStore,
		logger:           logger,
	}, nil
}

func newReportListHandler(appComponents *reportAppComponent) spinhttp.RouterHandle {
	return func(w http.ResponseWriter, r *http.Request, params spinhttp.Params) {
		logger := appComponents.logger

		pagination := response.NewPaginationFromRequest(r)
		collection, err := appComponents.reportRepository.List(r.Context(), pagination.Offset, pagination.Limit)
		if err != nil {
			logger.Error("Failed to list reports", "error", err)
			response.RenderError(w, fmt.Errorf("failed to list reports: %w", err), http.StatusInternalServerError)
			return
		}

		response.RenderJSON(w, collection)
	}
}

func newGetReportHandler(appComponents *reportAppComponent) spinhttp.RouterHandle {
	return func(w http.ResponseWriter, r *http.Request, params spinhttp.Params) {
		reportID := params.ByName("id")
		if reportID == "" {
			response.RenderError(w, fmt.Errorf("report ID is required"), http.StatusBadRequest)
			return
		}

		logger := appComponents.logger
		historyReport, err := appComponents.reportRepository.GetByID(r.Context(), reportID)
		if err != nil {
			logger.Warn("Report not found", "id", reportID, "error", err)
			response.RenderError(w, response.ErrNotFound, http.StatusNotFound)
			return
		}

		response.RenderJSON(w, historyReport)
	}
}

func newBuildReportHandler(appComponents *reportAppComponent) spinhttp.RouterHandle {
	return func(w http.ResponseWriter, r *http.Request, params spinhttp.Params) {
		logger := appComponents.logger

		opts := task.NewDefaultReportBuilderOptions()
		if periodParam := r.URL.Query().Get("period"); periodParam != "" {
			opts.Period = periodParam
		}

		builder := task.NewReportBuilder(appComponents.sampleRepository, appComponents.reportRepository, logger)
		historyReport, err := builder.Run(r.Context(), opts)
		if err != nil {
			logger.Error("Failed to build report", "error", err)
			response.RenderError(w, fmt.Errorf("failed to build report: %w", err), http.StatusInternalServerError)
			return
		}

		response.RenderJSON(w, response.NewPostResponse(true, "report built for period "+opts.Period, historyReport))
	}
}
