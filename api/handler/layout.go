package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/dashboard/api/transport"
	"github.com/fastygo/dashboard/pkg/httpcontext"
	layoutUC "github.com/fastygo/dashboard/usecase/layout"
)

type LayoutHandler struct {
	baseHandler
	uc *layoutUC.UseCase
}

func NewLayoutHandler(uc *layoutUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *LayoutHandler {
	return &LayoutHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Dashboard card order
// @Tags layout
// @Router /layout [get]
func (h *LayoutHandler) GetLayout(ctx *fasthttp.RequestCtx) {
	identity, ok := h.identity(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	layout, err := h.uc.GetLayout(stdCtx, identity.UserID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, layout)
}

// @Summary Replace dashboard card order
// @Tags layout
// @Router /layout [put]
func (h *LayoutHandler) PutLayout(ctx *fasthttp.RequestCtx) {
	identity, ok := h.identity(ctx)
	if !ok {
		return
	}

	var req transport.LayoutRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	saved, err := h.uc.SaveLayout(stdCtx, identity.UserID, req.Layout())
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, saved)
}
