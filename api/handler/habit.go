package handler

import (
	"net/http"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/dashboard/api/transport"
	"github.com/fastygo/dashboard/domain"
	"github.com/fastygo/dashboard/pkg/httpcontext"
	habitUC "github.com/fastygo/dashboard/usecase/habit"
)

type HabitHandler struct {
	baseHandler
	uc *habitUC.UseCase
}

func NewHabitHandler(uc *habitUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *HabitHandler {
	return &HabitHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List habits
// @Tags habits
// @Router /habits [get]
func (h *HabitHandler) GetHabits(ctx *fasthttp.RequestCtx) {
	identity, ok := h.identity(ctx)
	if !ok {
		return
	}

	filter := domain.HabitFilter{
		Search: strings.TrimSpace(string(ctx.QueryArgs().Peek("search"))),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	page, err := h.uc.ListHabits(stdCtx, identity.UserID, filter, h.pageRequest(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, page)
}

// @Summary Get habit
// @Tags habits
// @Router /habits/{id} [get]
func (h *HabitHandler) GetHabit(ctx *fasthttp.RequestCtx) {
	identity, ok := h.identity(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	habit, err := h.uc.GetHabit(stdCtx, identity.UserID, h.pathID(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, habit)
}

// @Summary Create habit
// @Tags habits
// @Router /habits [post]
func (h *HabitHandler) CreateHabit(ctx *fasthttp.RequestCtx) {
	identity, ok := h.identity(ctx)
	if !ok {
		return
	}

	in, ok := h.parseHabit(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateHabit(stdCtx, identity.UserID, in)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, created)
}

// @Summary Update habit
// @Tags habits
// @Router /habits/{id} [put]
func (h *HabitHandler) UpdateHabit(ctx *fasthttp.RequestCtx) {
	identity, ok := h.identity(ctx)
	if !ok {
		return
	}

	in, ok := h.parseHabit(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateHabit(stdCtx, identity.UserID, h.pathID(ctx), in)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete habit and its logs
// @Tags habits
// @Router /habits/{id} [delete]
func (h *HabitHandler) DeleteHabit(ctx *fasthttp.RequestCtx) {
	identity, ok := h.identity(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteHabit(stdCtx, identity.UserID, h.pathID(ctx)); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Record a habit occurrence for a day
// @Tags habits
// @Router /habits/{id}/logs [post]
func (h *HabitHandler) LogHabit(ctx *fasthttp.RequestCtx) {
	identity, ok := h.identity(ctx)
	if !ok {
		return
	}

	var req transport.HabitLogRequest
	if !h.decode(ctx, &req) {
		return
	}
	in, err := req.Input()
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	logged, err := h.uc.LogOccurrence(stdCtx, identity.UserID, h.pathID(ctx), in)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, logged)
}

func (h *HabitHandler) parseHabit(ctx *fasthttp.RequestCtx) (domain.HabitInput, bool) {
	var req transport.HabitRequest
	if !h.decode(ctx, &req) {
		return domain.HabitInput{}, false
	}
	in, err := req.Input()
	if err != nil {
		h.respondError(ctx, err)
		return domain.HabitInput{}, false
	}
	return in, true
}
