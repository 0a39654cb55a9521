package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/todoledger/api/transport"
	"github.com/fastygo/todoledger/internal/metrics"
	"github.com/fastygo/todoledger/pkg/httpcontext"
	authUC "github.com/fastygo/todoledger/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc       *authUC.UseCase
	validate *validator.Validate
}

func NewAuthHandler(uc *authUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		validate:    validator.New(),
	}
}

// @Summary Issue a new session
// @Tags auth
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.AuthLoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.badRequest(ctx, "invalid payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(ctx, err.Error())
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	token, err := h.uc.Login(stdCtx, req.Email, req.Password)
	metrics.RecordAuthAttempt("login", err == nil)
	if err != nil {
		h.respondErrorContext(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, token)
}

// @Summary Refresh the current session
// @Tags auth
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(ctx *fasthttp.RequestCtx) {
	sessionID := string(ctx.Request.Header.Peek(httpcontext.SessionHeader))

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	token, err := h.uc.Refresh(stdCtx, sessionID)
	metrics.RecordAuthAttempt("refresh", err == nil)
	if err != nil {
		h.respondErrorContext(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, token)
}

// @Summary Revoke the current session
// @Tags auth
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	sessionID := string(ctx.Request.Header.Peek(httpcontext.SessionHeader))

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	err := h.uc.Logout(stdCtx, sessionID)
	metrics.RecordAuthAttempt("logout", err == nil)
	if err != nil {
		h.respondErrorContext(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"session_id": sessionID})
}
