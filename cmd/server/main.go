package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/todoledger/api/handler"
	"github.com/fastygo/todoledger/domain"
	"github.com/fastygo/todoledger/internal/config"
	"github.com/fastygo/todoledger/internal/infrastructure/buffer"
	"github.com/fastygo/todoledger/internal/infrastructure/monitor"
	redisInfra "github.com/fastygo/todoledger/internal/infrastructure/redis"
	"github.com/fastygo/todoledger/internal/middleware"
	"github.com/fastygo/todoledger/internal/router"
	"github.com/fastygo/todoledger/internal/services"
	"github.com/fastygo/todoledger/internal/services/lifecycle"
	"github.com/fastygo/todoledger/pkg/httpcontext"
	"github.com/fastygo/todoledger/pkg/logger"
	redisRepo "github.com/fastygo/todoledger/repository/redis"
	"github.com/fastygo/todoledger/usecase"
	authUC "github.com/fastygo/todoledger/usecase/auth"
	"github.com/fastygo/todoledger/usecase/ledger"
	"github.com/fastygo/todoledger/usecase/seed"
	taskUC "github.com/fastygo/todoledger/usecase/task"
	userUC "github.com/fastygo/todoledger/usecase/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	appCtx, cancel := manager.Listen(context.Background())
	defer cancel()

	st, err := openStores(appCtx, cfg, zapLogger, manager)
	if err != nil {
		zapLogger.Fatal("store initialization failed", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}

	redisClient, err := redisInfra.Connect(appCtx, cfg.Redis, zapLogger)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.RegisterCloser("redis", redisClient)

	bufferStore, err := buffer.Open(cfg.Journal.BufferPath, buffer.EntityJournal)
	if err != nil {
		zapLogger.Fatal("failed to open journal buffer", zap.Error(err))
	}
	manager.RegisterCloser("journal_buffer", bufferStore)

	mon := monitor.New(st.db, redisClient, bufferStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(context.Context) error {
		mon.Stop()
		return nil
	})

	journalProcessor := services.NewJournalProcessor(
		bufferStore,
		mon,
		st.journal,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Journal.SyncInterval,
			BatchSize:  cfg.Journal.BatchSize,
			MaxRetries: cfg.Journal.MaxRetry,
			Retention:  time.Duration(cfg.Journal.RetentionHours) * time.Hour,
		},
	)
	journalProcessor.Start()
	manager.Register("journal_processor", journalProcessor.Stop)

	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = uuid.NewString()
		zapLogger.Warn("JWT_SECRET not set, using an ephemeral secret")
	}
	sessionRepo := redisRepo.NewSessionRepository(redisClient)
	authUseCase := authUC.New(st.users, sessionRepo, authUC.NewSigner(cfg.JWT.Secret, cfg.JWT.Issuer), cfg.JWT.SessionTTL, zapLogger)

	taskUseCase := taskUC.New(st.tasks, zapLogger)
	userUseCase := userUC.New(st.users, zapLogger)
	seeder := seed.New(st.users, st.tasks, zapLogger)

	dispatcher := usecase.NewDispatcher()
	seeder.Register(dispatcher)
	taskUseCase.Register(dispatcher)
	userUseCase.Register(dispatcher)

	processor := ledger.New(dispatcher, st.tasks, st.users, journalProcessor, zapLogger)

	if cfg.Seed.OnStart {
		seeded, err := seeder.SeedIfEmpty(appCtx, domain.Bootstrap{
			Transaction: domain.Transaction{ID: uuid.NewString(), Timestamp: time.Now().UTC()},
		})
		if err != nil {
			zapLogger.Fatal("bootstrap failed", zap.Error(err))
		}
		zapLogger.Info("seed on start", zap.Bool("seeded", seeded))
	}

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:        apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Transaction: apiHandler.NewTransactionHandler(processor, ctxAdapter, zapLogger),
		Task:        apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		User:        apiHandler.NewUserHandler(userUseCase, ctxAdapter, zapLogger),
		Journal:     apiHandler.NewJournalHandler(st.journal, ctxAdapter, zapLogger),
		Health:      apiHandler.NewHealthHandler(mon, cfg.Store.Driver, ctxAdapter, zapLogger),
	}

	r := router.New(handlers, router.Options{
		RequireAuth:  middleware.JWTAuth(authUseCase, zapLogger),
		OptionalAuth: middleware.OptionalJWTAuth(authUseCase, zapLogger),
		Metrics:      cfg.HTTP.EnableMetrics,
	})

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Concurrency:  cfg.HTTP.MaxConn,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()), zap.String("store", cfg.Store.Driver))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Error("server stopped", zap.Error(err))
			cancel()
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
