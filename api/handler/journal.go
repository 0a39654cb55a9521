package handler

import (
	"context"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/todoledger/api/transport"
	"github.com/fastygo/todoledger/domain"
	"github.com/fastygo/todoledger/pkg/httpcontext"
	"github.com/fastygo/todoledger/repository"
)

// JournalReader is the read side of the journal repository.
type JournalReader interface {
	List(ctx context.Context, filter repository.JournalFilter) ([]domain.Event, error)
}

type JournalHandler struct {
	baseHandler
	journal JournalReader
}

func NewJournalHandler(journal JournalReader, adapter *httpcontext.Adapter, logger *zap.Logger) *JournalHandler {
	return &JournalHandler{
		baseHandler: newBaseHandler(adapter, logger),
		journal:     journal,
	}
}

// @Summary Ledger history
// @Tags journal
// @Router /api/v1/journal [get]
func (h *JournalHandler) List(ctx *fasthttp.RequestCtx) {
	args := ctx.QueryArgs()
	filter := repository.JournalFilter{
		Kind:   string(args.Peek("kind")),
		Limit:  parseInt(string(args.Peek("limit")), 50),
		Offset: parseInt(string(args.Peek("offset")), 0),
	}
	if filter.Kind != "" && !domain.TransactionKind(filter.Kind).Valid() {
		h.badRequest(ctx, "unknown transaction kind")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	events, err := h.journal.List(stdCtx, filter)
	if err != nil {
		h.respondErrorContext(stdCtx, ctx, err)
		return
	}
	if events == nil {
		events = []domain.Event{}
	}
	meta := transport.PageMeta{Limit: filter.Limit, Offset: filter.Offset, Count: len(events)}
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(events, meta))
}
