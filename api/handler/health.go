package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/dashboard/api/transport"
	"github.com/fastygo/dashboard/internal/infrastructure/monitor"
	"github.com/fastygo/dashboard/pkg/httpcontext"
)

// StatusSource reports the last observed dependency state.
type StatusSource interface {
	GetStatus() monitor.Status
}

type HealthHandler struct {
	baseHandler
	monitor StatusSource
}

// NewHealthHandler accepts a nil source when the service runs without external dependencies.
func NewHealthHandler(source StatusSource, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     source,
	}
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	body := transport.HealthBody{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if h.monitor == nil {
		h.respondSuccess(ctx, http.StatusOK, body)
		return
	}

	status := h.monitor.GetStatus()
	body.Services = status.Services
	if !status.Healthy {
		body.Status = "degraded"
		h.respondJSON(ctx, http.StatusServiceUnavailable, body)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, body)
}
