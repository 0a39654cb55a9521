package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/todoledger/domain"
	"github.com/fastygo/todoledger/pkg/httpcontext"
	"github.com/fastygo/todoledger/usecase/ledger"
)

type TransactionHandler struct {
	baseHandler
	processor *ledger.Processor
}

func NewTransactionHandler(processor *ledger.Processor, adapter *httpcontext.Adapter, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		baseHandler: newBaseHandler(adapter, logger),
		processor:   processor,
	}
}

// @Summary Submit a transaction
// @Tags transactions
// @Router /api/v1/transactions/{kind} [post]
func (h *TransactionHandler) Submit(ctx *fasthttp.RequestCtx) {
	kind, _ := ctx.UserValue("kind").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	body := append([]byte(nil), ctx.PostBody()...)
	receipt, err := h.processor.Submit(stdCtx, domain.TransactionKind(kind), body, httpcontext.ExecutorEmail(ctx))
	if err != nil {
		h.respondErrorContext(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, statusFor(receipt.Kind), receipt)
}

func statusFor(kind domain.TransactionKind) int {
	switch kind {
	case domain.KindBootstrap, domain.KindCreateTask, domain.KindCreateUser:
		return http.StatusCreated
	}
	return http.StatusOK
}
