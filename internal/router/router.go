package router

import (
	"github.com/fasthttp/router"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	apiHandler "github.com/fastygo/todoledger/api/handler"
)

type Handlers struct {
	Auth        *apiHandler.AuthHandler
	Transaction *apiHandler.TransactionHandler
	Task        *apiHandler.TaskHandler
	User        *apiHandler.UserHandler
	Journal     *apiHandler.JournalHandler
	Health      *apiHandler.HealthHandler
}

type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

type Options struct {
	RequireAuth  Middleware
	OptionalAuth Middleware
	Metrics      bool
}

func New(handlers Handlers, opts Options) *router.Router {
	r := router.New()
	requireAuth := orPassthrough(opts.RequireAuth)
	optionalAuth := orPassthrough(opts.OptionalAuth)

	r.GET("/health", handlers.Health.Check)
	if opts.Metrics {
		r.GET("/metrics", fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler()))
	}

	// Auth routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", requireAuth(handlers.Auth.Refresh))
	r.POST("/api/v1/auth/logout", requireAuth(handlers.Auth.Logout))

	// Transactions; the engines decide whether an executor is required.
	r.POST("/api/v1/transactions/{kind}", optionalAuth(handlers.Transaction.Submit))

	// Reference resolution
	r.GET("/api/v1/tasks/{id}", optionalAuth(handlers.Task.GetTask))
	r.GET("/api/v1/users/{email}", optionalAuth(handlers.User.GetUser))

	r.GET("/api/v1/journal", requireAuth(handlers.Journal.List))

	return r
}

func orPassthrough(mw Middleware) Middleware {
	if mw != nil {
		return mw
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler { return next }
}
