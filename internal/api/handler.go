package api

import (
	"context"
	"net/http"
	"time"

	"MarketDashboard/internal/dashboard"

	"github.com/gin-gonic/gin"
)

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Res{Success: true, Data: data})
}

// GetOverview handles GET /api/overview.
func (h *Handler) GetOverview(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	view, err := h.svc.Overview(ctx)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, view)
}

// GetStock handles GET /api/stocks/:symbol?period=daily|weekly|monthly.
func (h *Handler) GetStock(c *gin.Context) {
	var uri stockURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.Error(err)
		return
	}
	var q stockQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.Error(err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	view, err := h.svc.Stock(ctx, uri.Symbol, intervalOf(q.Period))
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, StockRes{StockView: view, Display: stockDisplay(view)})
}

// GetSectors handles GET /api/sectors?period=1M|3M|6M|1Y.
func (h *Handler) GetSectors(c *gin.Context) {
	var q sectorsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.Error(err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	view, err := h.svc.Sectors(ctx, dashboard.Period(q.Period))
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, view)
}

// GetIndicators handles GET /api/indicators.
func (h *Handler) GetIndicators(c *gin.Context) {
	ok(c, h.svc.Indicators())
}

// PostRefresh handles POST /api/refresh.
func (h *Handler) PostRefresh(c *gin.Context) {
	res, started := h.refresher.RunNow()
	if !started {
		c.Error(ErrRefreshRunning)
		return
	}
	ok(c, res)
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	res := HealthRes{
		Status:    "OK",
		Service:   ServiceName,
		Version:   ServiceVersion,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if len(h.checks) > 0 {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		res.Checks = make(map[string]string, len(h.checks))
		for name, p := range h.checks {
			status := p.Ping(ctx)
			res.Checks[name] = status
			if status != "up" {
				res.Status = "DEGRADED"
			}
		}
	}
	ok(c, res)
}
