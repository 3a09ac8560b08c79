package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/agri-advisor/internal/domain/advisory"
	"github.com/yanqian/agri-advisor/internal/domain/agri"
	"github.com/yanqian/agri-advisor/internal/domain/disease"
	"github.com/yanqian/agri-advisor/internal/domain/weather"
)

// PriceService serves synthetic market prices.
type PriceService interface {
	GenerateMarketPrices(ctx context.Context, commodity, state, district string) ([]agri.PriceRecord, error)
}

// OfficerService lists extension officers.
type OfficerService interface {
	GenerateOfficers(ctx context.Context, state, district string) ([]agri.Officer, error)
}

// CoordinateResolver maps a district to coordinates.
type CoordinateResolver interface {
	Resolve(ctx context.Context, district, state string) (agri.Coordinates, error)
}

// HealthChecker refreshes and reports reachability per storage backend.
type HealthChecker interface {
	Check(ctx context.Context) map[string]bool
}

// Handler wires the HTTP transport to domain services.
type Handler struct {
	advisorySvc    advisory.Service
	diseaseSvc     disease.Service
	weatherSvc     weather.Service
	prices         PriceService
	officers       OfficerService
	resolver       CoordinateResolver
	health         HealthChecker
	maxUploadBytes int64
	logger         *slog.Logger
}

// HandlerDeps groups the services exposed over HTTP.
type HandlerDeps struct {
	Advisory       advisory.Service
	Disease        disease.Service
	Weather        weather.Service
	Prices         PriceService
	Officers       OfficerService
	Resolver       CoordinateResolver
	Health         HealthChecker
	MaxUploadBytes int64
}

// NewHandler constructs the root HTTP handler.
func NewHandler(deps HandlerDeps, logger *slog.Logger) *Handler {
	if deps.MaxUploadBytes <= 0 {
		deps.MaxUploadBytes = 8 << 20
	}
	return &Handler{
		advisorySvc:    deps.Advisory,
		diseaseSvc:     deps.Disease,
		weatherSvc:     deps.Weather,
		prices:         deps.Prices,
		officers:       deps.Officers,
		resolver:       deps.Resolver,
		health:         deps.Health,
		maxUploadBytes: deps.MaxUploadBytes,
		logger:         logger.With("component", "http.handler"),
	}
}

// Chat answers a free-form farmer question.
func (h *Handler) Chat(c *gin.Context) {
	var req advisory.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest(err.Error(), err))
		return
	}

	resp, err := h.advisorySvc.AnswerFarmerQuestion(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Schemes suggests government schemes for a known farmer.
func (h *Handler) Schemes(c *gin.Context) {
	var req advisory.SchemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest(err.Error(), err))
		return
	}

	resp, err := h.advisorySvc.SuggestSchemes(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AnalyzeDisease classifies an uploaded crop image.
func (h *Handler) AnalyzeDisease(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	fileHeader, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abortWithError(c, &HTTPError{Status: http.StatusRequestEntityTooLarge, Code: "image_too_large", Message: "image exceeds upload limit", Err: err})
			return
		}
		abortWithError(c, badRequest("image file is required", err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		abortWithError(c, badRequest("unable to open image", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		abortWithError(c, badRequest("unable to read image", err))
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}

	resp, err := h.diseaseSvc.AnalyzeCropImage(c.Request.Context(), disease.Request{
		Image:    data,
		MimeType: mimeType,
		Language: c.PostForm("language"),
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Coordinates resolves a district to latitude and longitude.
func (h *Handler) Coordinates(c *gin.Context) {
	coords, err := h.resolver.Resolve(c.Request.Context(), c.Query("district"), c.Query("state"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, coords)
}

// MarketPrices returns the current synthetic price set.
func (h *Handler) MarketPrices(c *gin.Context) {
	records, err := h.prices.GenerateMarketPrices(c.Request.Context(), c.Query("commodity"), c.Query("state"), c.Query("district"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"prices": records})
}

// Officers lists extension officers for a state and optional district.
func (h *Handler) Officers(c *gin.Context) {
	officers, err := h.officers.GenerateOfficers(c.Request.Context(), c.Query("state"), c.Query("district"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"officers": officers})
}

// WeatherForecast returns daily forecasts and alerts for a district.
func (h *Handler) WeatherForecast(c *gin.Context) {
	forecast, err := h.weatherSvc.Forecast(c.Request.Context(), c.Query("district"), c.Query("state"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, forecast)
}

// Health reports liveness plus storage reachability. The process is healthy
// even when every backend is down; features fall back to memory. durableStore
// is true when at least one backend answered.
func (h *Handler) Health(c *gin.Context) {
	backends := map[string]bool{}
	if h.health != nil {
		backends = h.health.Check(c.Request.Context())
	}
	durable := false
	for _, up := range backends {
		durable = durable || up
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "durableStore": durable, "backends": backends})
}
