package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/dashboard/api/transport"
	"github.com/fastygo/dashboard/domain"
	"github.com/fastygo/dashboard/pkg/httpcontext"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("encode response", zap.Error(err))
		ctx.SetStatusCode(http.StatusInternalServerError)
		body = []byte(`{"code":"INTERNAL","message":"internal error"}`)
	}
	ctx.SetBody(body)
}

func (h baseHandler) respondSuccess(ctx *fasthttp.RequestCtx, status int, data interface{}) {
	if status == http.StatusNoContent {
		ctx.SetStatusCode(status)
		return
	}
	h.respondJSON(ctx, status, data)
}

// respondError maps domain errors to their status. Anything unclassified is
// logged and answered with a generic 500.
func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	status, code := mapError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("request_id", httpcontext.RequestID(ctx)),
			zap.ByteString("method", ctx.Method()),
			zap.ByteString("path", ctx.Path()),
			zap.Error(err))
		h.respondJSON(ctx, status, transport.NewError(code, "internal error", nil))
		return
	}

	var dErr *domain.Error
	errors.As(err, &dErr)
	h.respondJSON(ctx, status, transport.NewError(code, dErr.Message, dErr.Fields))
}

func (h baseHandler) badRequest(ctx *fasthttp.RequestCtx, message string) {
	h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(domain.ErrCodeInvalid, message, nil))
}

// decode unmarshals the request body into dst, answering 400 on malformed JSON.
func (h baseHandler) decode(ctx *fasthttp.RequestCtx, dst interface{}) bool {
	if err := json.Unmarshal(ctx.PostBody(), dst); err != nil {
		h.badRequest(ctx, domain.ErrInvalidPayload.Message)
		return false
	}
	return true
}

// identity returns the caller stored by the auth middleware, answering 401 when absent.
func (h baseHandler) identity(ctx *fasthttp.RequestCtx) (domain.Identity, bool) {
	identity, ok := httpcontext.IdentityFrom(ctx)
	if !ok {
		h.respondError(ctx, domain.ErrUnauthorized)
	}
	return identity, ok
}

func (h baseHandler) pathID(ctx *fasthttp.RequestCtx) string {
	id, _ := ctx.UserValue("id").(string)
	return id
}

func (h baseHandler) pageRequest(ctx *fasthttp.RequestCtx) domain.PageRequest {
	args := ctx.QueryArgs()
	return domain.NewPageRequest(
		parseInt(string(args.Peek("page")), domain.DefaultPage),
		parseInt(string(args.Peek("pageSize")), domain.DefaultPageSize),
	)
}

func mapError(err error) (int, domain.ErrorCode) {
	var dErr *domain.Error
	if !errors.As(err, &dErr) {
		return http.StatusInternalServerError, domain.ErrCodeInternal
	}
	switch dErr.Code {
	case domain.ErrCodeUnauthorized:
		return http.StatusUnauthorized, dErr.Code
	case domain.ErrCodeForbidden:
		return http.StatusForbidden, dErr.Code
	case domain.ErrCodeInvalid:
		return http.StatusBadRequest, dErr.Code
	case domain.ErrCodeNotFound:
		return http.StatusNotFound, dErr.Code
	case domain.ErrCodeConflict:
		return http.StatusConflict, dErr.Code
	case domain.ErrCodeRateLimited:
		return http.StatusTooManyRequests, dErr.Code
	default:
		return http.StatusInternalServerError, domain.ErrCodeInternal
	}
}

func parseInt(value string, fallback int) int {
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	return fallback
}
