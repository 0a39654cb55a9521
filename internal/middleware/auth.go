package middleware

import (
	"context"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/todoledger/pkg/httpcontext"
	"github.com/fastygo/todoledger/usecase/auth"
)

// TokenVerifier resolves a bearer token to its claims.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*auth.Claims, error)
}

// JWTAuth rejects requests without a valid bearer token.
func JWTAuth(verifier TokenVerifier, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	return authenticate(verifier, logger, true)
}

// OptionalJWTAuth lets anonymous requests through but still rejects invalid tokens.
func OptionalJWTAuth(verifier TokenVerifier, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	return authenticate(verifier, logger, false)
}

func authenticate(verifier TokenVerifier, logger *zap.Logger, required bool) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			// Identity headers are only ever set from a verified token.
			ctx.Request.Header.Del(httpcontext.ExecutorHeader)
			ctx.Request.Header.Del(httpcontext.SessionHeader)

			tokenString := extractToken(ctx)
			if tokenString == "" {
				if required {
					ctx.SetStatusCode(fasthttp.StatusUnauthorized)
					return
				}
				next(ctx)
				return
			}

			claims, err := verifier.Verify(ctx, tokenString)
			if err != nil {
				logger.Warn("invalid jwt token", zap.Error(err))
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			ctx.Request.Header.Set(httpcontext.ExecutorHeader, claims.Email)
			if claims.SessionID != "" {
				ctx.Request.Header.Set(httpcontext.SessionHeader, claims.SessionID)
			}
			next(ctx)
		}
	}
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := strings.TrimSpace(string(ctx.Request.Header.Peek("Authorization")))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return header
}
