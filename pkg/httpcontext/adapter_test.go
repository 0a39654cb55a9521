package httpcontext

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	appLogger "github.com/fastygo/todoledger/pkg/logger"
)

func TestAttachCarriesRequestMetadata(t *testing.T) {
	var reqCtx fasthttp.RequestCtx
	reqCtx.Request.Header.Set("X-Request-ID", "req-42")
	reqCtx.Request.Header.Set(ExecutorHeader, "batman@example.com")

	ctx, cancel := NewAdapter(time.Second).Attach(&reqCtx)
	defer cancel()

	_, hasDeadline := ctx.Deadline()
	require.True(t, hasDeadline)
	require.Equal(t, "batman@example.com", ExecutorFromContext(ctx))
	require.Equal(t, "req-42", string(reqCtx.Response.Header.Peek("X-Request-ID")))
	require.Empty(t, appLogger.TransactionID(ctx))
}

func TestAttachGeneratesRequestID(t *testing.T) {
	var reqCtx fasthttp.RequestCtx

	ctx, cancel := NewAdapter(0).Attach(&reqCtx)
	defer cancel()

	require.NotEmpty(t, string(reqCtx.Response.Header.Peek("X-Request-ID")))
	require.Empty(t, ExecutorFromContext(ctx))
	require.Empty(t, ExecutorEmail(&reqCtx))
}
