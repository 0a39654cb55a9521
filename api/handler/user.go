package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/todoledger/pkg/httpcontext"
	userUC "github.com/fastygo/todoledger/usecase/user"
)

type UserHandler struct {
	baseHandler
	uc *userUC.UseCase
}

func NewUserHandler(uc *userUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Resolve a user reference
// @Tags users
// @Router /api/v1/users/{email} [get]
func (h *UserHandler) GetUser(ctx *fasthttp.RequestCtx) {
	email, _ := ctx.UserValue("email").(string)
	if email == "" {
		h.badRequest(ctx, "missing user email")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.GetUser(stdCtx, email)
	if err != nil {
		h.respondErrorContext(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}
