package api

import (
	"context"
	"time"

	"MarketDashboard/internal/dashboard"
	"MarketDashboard/internal/model"

	"github.com/gin-gonic/gin"
)

const (
	DefaultTimeout      = 60 * time.Second
	ServiceName         = "market-dashboard"
	ServiceVersion      = "1.0.0"
	RequestIDContextKey = "request_id"
	RequestIDHeaderKey  = "X-Request-ID"
)

// DashboardService builds the dashboard views.
type DashboardService interface {
	Overview(ctx context.Context) (*dashboard.OverviewView, error)
	Stock(ctx context.Context, symbol string, period model.Interval) (*dashboard.StockView, error)
	Sectors(ctx context.Context, period dashboard.Period) (*dashboard.SectorsView, error)
	Indicators() dashboard.IndicatorsView
}

// Refresher triggers an out-of-schedule refresh. ok is false when one is
// already running.
type Refresher interface {
	RunNow() (res dashboard.RefreshResult, ok bool)
}

// Pinger reports the health of a dependency, "up" or "down: <reason>".
type Pinger interface {
	Ping(ctx context.Context) string
}

// Handler serves the dashboard over HTTP.
type Handler struct {
	svc       DashboardService
	refresher Refresher
	checks    map[string]Pinger
	timeout   time.Duration
}

// NewHandler creates a Handler. refresher may be nil, in which case
// POST /api/refresh is not registered.
func NewHandler(svc DashboardService, refresher Refresher) *Handler {
	return &Handler{
		svc:       svc,
		refresher: refresher,
		checks:    make(map[string]Pinger),
		timeout:   DefaultTimeout,
	}
}

// AddHealthCheck reports p under name on GET /health.
func (h *Handler) AddHealthCheck(name string, p Pinger) {
	h.checks[name] = p
}

// SetupRoutes configures all API routes.
func (h *Handler) SetupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	registerValidations()

	router := gin.New()
	router.Use(requestIDMiddleware())
	router.Use(loggerMiddleware())
	router.Use(gin.Recovery())
	router.Use(Error())

	router.GET("/health", h.HealthCheck)

	v1 := router.Group("/api")
	{
		v1.GET("/overview", h.GetOverview)
		v1.GET("/stocks/:symbol", h.GetStock)
		v1.GET("/sectors", h.GetSectors)
		v1.GET("/indicators", h.GetIndicators)
		if h.refresher != nil {
			v1.POST("/refresh", h.PostRefresh)
		}
	}
	return router
}
