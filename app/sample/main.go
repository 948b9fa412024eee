package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	spinhttp "github.com/spinframework/spin-go-sdk/v2/http"
	spinvars "github.com/spinframework/spin-go-sdk/v2/variables"

	"github.com/clinmind/samplelog/log"
	"github.com/clinmind/samplelog/middleware"
	"github.com/clinmind/samplelog/response"
	"github.com/clinmind/samplelog/sample"
	"github.com/clinmind/samplelog/secret"
)

const dateParamLayout = "2006-01-02"

type SampleAppConfig struct {
	StoreName string `json:"store_name"`
	DBName    string `json:"db_name"`
	APIKey    string `json:"api_key"`
	LogLevel  string `json:"log_level"`
}

func NewSampleAppConfigFromSpinVariables() (*SampleAppConfig, error) {
	storeName, err := spinvars.Get("store_name")
	if err != nil {
		return nil, fmt.Errorf("failed to get store_name: %w", err)
	}

	// db_name is optional: when set the component persists into SQLite
	// instead of the KV slot.
	dbName, err := spinvars.Get("db_name")
	if err != nil {
		dbName = ""
	}

	apiKey, err := spinvars.Get("api_key")
	if err != nil {
		return nil, fmt.Errorf("failed to get api_key: %w", err)
	}

	logLevel, err := spinvars.Get("log_level")
	if err != nil {
		logLevel = "info"
	}

	return &SampleAppConfig{
		StoreName: storeName,
		DBName:    dbName,
		APIKey:    apiKey,
		LogLevel:  logLevel,
	}, nil
}

type sampleAppComponent struct {
	config           *SampleAppConfig
	sampleRepository sample.Repository
	secretStore      secret.Store
	logger           *slog.Logger
}

func (c *sampleAppComponent) IsReady() bool {
	if c.logger == nil {
		fmt.Println("Logger of sampleAppComponent is not initialized")
		return false
	}

	if c.config == nil {
		c.logger.Error("SampleAppConfig is not initialized")
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

func (c *sampleAppComponent) Close() {
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

	c.logger.Info("Sample app component closed")
}

func init() {
	spinhttp.Handle(func(w http.ResponseWriter, r *http.Request) {
		config, err := NewSampleAppConfigFromSpinVariables()
		if err != nil {
			response.RenderFatal(w, fmt.Errorf("failed to load sample app config: %w", err))
			return
		}

		appComponents, err := initSampleAppComponent(*config)
		if err != nil {
			response.RenderFatal(w, fmt.Errorf("failed to initialize sample app component: %w", err))
			return
		}
		defer appComponents.Close()

		if !appComponents.IsReady() {
			response.RenderFatal(w, fmt.Errorf("sample app component is not ready"))
			return
		}

		logger := appComponents.logger
		logger.Debug("Sample app component is ready")

		router := spinhttp.NewRouter()
		router.POST("/samples", authed(newSaveHandler(appComponents), appComponents))
		router.GET("/samples", authed(newListHandler(appComponents), appComponents))
		router.GET("/samples/export", authed(newExportHandler(appComponents), appComponents))
		router.POST("/samples/seed", authed(newSeedHandler(appComponents), appComponents))
		router.DELETE("/samples/:sampleId", authed(newDeleteHandler(appComponents), appComponents))
		router.NotFound = response.NewNotFoundHandler(logger)
		router.ServeHTTP(w, r)
	})
}

func main() {}

func authed(h spinhttp.RouterHandle, appComponents *sampleAppComponent) spinhttp.RouterHandle {
	return middleware.RequestID(middleware.BearerAuth(h, appComponents.secretStore))
}

func initSampleAppComponent(config SampleAppConfig) (*sampleAppComponent, error) {
	loggerOptions := &slog.HandlerOptions{
		Level: log.SlogLevelInfoFromString(config.LogLevel),
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, loggerOptions)).With("component", "sample")

	secretStore := secret.NewInMemoryStore()
	if err := secretStore.Set(config.APIKey, config.APIKey); err != nil {
		return nil, fmt.Errorf("failed to store API key: %w", err)
	}

	sampleRepository, err := initSampleRepository(config, logger)
	if err != nil {
		logger.Error("Failed to initialize sample repository", "error", err)
		return nil, fmt.Errorf("failed to initialize sample repository: %w", err)
	}

	return &sampleAppComponent{
		config:           &config,
		sampleRepository: sampleRepository,
		secretStore:      secretStore,
		logger:           logger,
	}, nil
}

func initSampleRepository(config SampleAppConfig, logger *slog.Logger) (sample.Repository, error) {
	if config.DBName != "" {
		db, err := sample.NewSpinSqliteDB(config.DBName)
		if err != nil {
			return nil, err
		}

		repository, err := sample.NewSQLRepository(db, logger)
		if err != nil {
			return nil, err
		}

		if err := repository.Migrate(context.Background()); err != nil {
			return nil, err
		}

		return repository, nil
	}

	return sample.NewSpinKVRepository(config.StoreName, logger)
}

type saveRequest struct {
	SampleID       string   `json:"sampleId"`
	HeightMm       *float64 `json:"heightMm"`
	WidthMm        *float64 `json:"widthMm"`
	LengthMm       *float64 `json:"lengthMm"`
	StatusOverride string   `json:"statusOverride"`
}

func newSaveHandler(appComponents *sampleAppComponent) spinhttp.RouterHandle {
	return func(w http.ResponseWriter, r *http.Request, params spinhttp.Params) {
		logger := appComponents.logger
		logger.Debug("Saving new measurement record")

		input, err := newSaveInputFromRequest(r)
		if err != nil {
			response.RenderError(w, err, http.StatusBadRequest)
			return
		}

		record, err := appComponents.sampleRepository.Save(r.Context(), *input)
		if err != nil {
			logger.Error("Failed to save measurement record", "error", err)
			response.RenderError(w, fmt.Errorf("failed to save measurement: %w", err), saveErrorStatus(err))
			return
		}

		logger.Info("Measurement record saved", "sampleId", record.SampleID, "status", record.Status)
		response.RenderJSON(w, response.NewPostResponse(true, "measurement saved successfully", record))
	}
}

func saveErrorStatus(err error) int {
	switch {
	case errors.Is(err, sample.ErrNonFiniteDimension), errors.Is(err, sample.ErrInvalidStatus):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func newListHandler(appComponents *sampleAppComponent) spinhttp.RouterHandle {
	return func(w http.ResponseWriter, r *http.Request, params spinhttp.Params) {
		logger := appComponents.logger

		filter, err := newFilterFromRequest(r)
		if err != nil {
			response.RenderError(w, err, http.StatusBadRequest)
			return
		}

		records, err := appComponents.sampleRepository.ListAll(r.Context())
		if err != nil {
			logger.Error("Failed to list measurement records", "error", err)
			response.RenderError(w, fmt.Errorf("failed to list measurements: %w", err), http.StatusInternalServerError)
			return
		}

		filtered := sample.FilterRecords(records, *filter)
		logger.Debug("Measurement records listed", "total", len(records), "matched", len(filtered))
		response.RenderJSON(w, response.NewCollectionResponse(filtered, nil))
	}
}

func newExportHandler(appComponents *sampleAppComponent) spinhttp.RouterHandle {
	return func(w http.ResponseWriter, r *http.Request, params spinhttp.Params) {
		logger := appComponents.logger

		filter, err := newFilterFromRequest(r)
		if err != nil {
			response.RenderError(w, err, http.StatusBadRequest)
			return
		}

		records, err := appComponents.sampleRepository.ListAll(r.Context())
		if err != nil {
			logger.Error("Failed to list measurement records", "error", err)
			response.RenderError(w, fmt.Errorf("failed to export measurements: %w", err), http.StatusInternalServerError)
			return
		}

		filtered := sample.FilterRecords(records, *filter)

		w.Header().Set("Content-Type", response.CSVContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="measurements.csv"`)
		w.WriteHeader(http.StatusOK)

		csvWriter := csv.NewWriter(w)
		_ = csvWriter.Write([]string{"sampleId", "heightMm", "widthMm", "lengthMm", "status", "createdAt"})
		for _, record := range filtered {
			_ = csvWriter.Write([]string{
				record.SampleID,
				strconv.FormatFloat(record.HeightMm, 'f', -1, 64),
				strconv.FormatFloat(record.WidthMm, 'f', -1, 64),
				strconv.FormatFloat(record.LengthMm, 'f', -1, 64),
				string(record.Status),
				record.CreatedAt.Format(time.RFC3339Nano),
			})
		}
		csvWriter.Flush()

		logger.Info("Measurement history exported", "count", len(filtered))
	}
}

func newDeleteHandler(appComponents *sampleAppComponent) spinhttp.RouterHandle {
	return func(w http.ResponseWriter, r *http.Request, params spinhttp.Params) {
		logger := appComponents.logger

		sampleID := params.ByName("sampleId")
		if sampleID == "" {
			response.RenderError(w, fmt.Errorf("sample ID is required"), http.StatusBadRequest)
			return
		}

		createdAtParam := r.URL.Query().Get("createdAt")
		if createdAtParam == "" {
			response.RenderError(w, fmt.Errorf("createdAt query parameter is required"), http.StatusBadRequest)
			return
		}

		createdAt, err := time.Parse(time.RFC3339, createdAtParam)
		if err != nil {
			response.RenderError(w, fmt.Errorf("invalid createdAt timestamp: %w", err), http.StatusBadRequest)
			return
		}

		if err := appComponents.sampleRepository.DeleteByID(r.Context(), sampleID, createdAt); err != nil {
			logger.Error("Failed to delete measurement record", "sampleId", sampleID, "error", err)
			response.RenderError(w, fmt.Errorf("failed to delete measurement: %w", err), http.StatusInternalServerError)
			return
		}

		logger.Info("Measurement record deleted", "sampleId", sampleID)
		response.RenderJSON(w, response.NewPostResponse(true, "measurement deleted", nil))
	}
}

func newSeedHandler(appComponents *sampleAppComponent) spinhttp.RouterHandle {
	return func(w http.ResponseWriter, r *http.Request, params spinhttp.Params) {
		logger := appComponents.logger

		seeder := sample.NewDemoSeeder(logger)
		if err := seeder.Seed(r.Context(), appComponents.sampleRepository); err != nil {
			logger.Error("Failed to seed demo records", "error", err)
			response.RenderError(w, fmt.Errorf("failed to seed demo records: %w", err), http.StatusInternalServerError)
			return
		}

		response.RenderJSON(w, response.NewPostResponse(true, "demo records seeded", nil))
	}
}

func newSaveInputFromRequest(r *http.Request) (*sample.SaveInput, error) {
	var request saveRequest
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&request); err != nil {
		return nil, fmt.Errorf("failed to decode measurement from request: %w", err)
	}
	r.Body.Close()

	if request.HeightMm == nil || request.WidthMm == nil || request.LengthMm == nil {
		return nil, fmt.Errorf("heightMm, widthMm and lengthMm are required")
	}

	if err := sample.ValidateDimensions(*request.HeightMm, *request.WidthMm, *request.LengthMm); err != nil {
		return nil, err
	}

	override := sample.Status(request.StatusOverride)
	if request.StatusOverride != "" && !override.IsValid() {
		return nil, sample.ErrInvalidStatus
	}

	return &sample.SaveInput{
		SampleID:       request.SampleID,
		HeightMm:       *request.HeightMm,
		WidthMm:        *request.WidthMm,
		LengthMm:       *request.LengthMm,
		StatusOverride: override,
	}, nil
}

func newFilterFromRequest(r *http.Request) (*sample.Filter, error) {
	filter := sample.Filter{
		Search: r.URL.Query().Get("search"),
	}

	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		date, err := time.ParseInLocation(dateParamLayout, dateParam, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid date filter, expected YYYY-MM-DD: %w", err)
		}
		filter.Date = &date
	}

	if periodParam := r.URL.Query().Get("period"); periodParam != "" {
		period, err := sample.NewPeriodFromISO8601Duration(periodParam)
		if err != nil {
			return nil, fmt.Errorf("invalid period filter: %w", err)
		}
		filter.Period = period
	}

	return &filter, nil
}
