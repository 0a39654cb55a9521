package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fastygo/todoledger/domain"
	"github.com/fastygo/todoledger/internal/infrastructure/buffer"
	"github.com/fastygo/todoledger/internal/metrics"
	"github.com/fastygo/todoledger/repository"
	"github.com/fastygo/todoledger/usecase"
)

// ConnectionHealth abstracts the connection monitor functionality.
type ConnectionHealth interface {
	IsOnline() bool
}

// ProcessorConfig controls how frequently the buffer is drained and trimmed.
type ProcessorConfig struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
	Retention  time.Duration
}

// JournalProcessor writes journal events straight to the repository while the
// database is reachable and parks them in the bbolt buffer otherwise.
type JournalProcessor struct {
	store   *buffer.Store
	monitor ConnectionHealth
	journal repository.JournalRepository
	logger  *zap.Logger
	cron    *cron.Cron
	cfg     ProcessorConfig
}

var _ usecase.Journal = (*JournalProcessor)(nil)

func NewJournalProcessor(
	store *buffer.Store,
	monitor ConnectionHealth,
	journal repository.JournalRepository,
	logger *zap.Logger,
	cfg ProcessorConfig,
) *JournalProcessor {
	if cfg.Interval < time.Second {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	jp := &JournalProcessor{
		store:   store,
		monitor: monitor,
		journal: journal,
		logger:  logger,
		cfg:     cfg,
		cron:    cron.New(cron.WithSeconds()),
	}

	drainSchedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = jp.cron.AddFunc(drainSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := jp.Drain(ctx); err != nil {
			jp.logger.Error("journal drain failed", zap.Error(err))
		}
	})
	_, _ = jp.cron.AddFunc("@hourly", func() {
		if _, err := jp.Cleanup(time.Now()); err != nil {
			jp.logger.Error("journal buffer cleanup failed", zap.Error(err))
		}
	})

	return jp
}

// Start launches the cron scheduler.
func (jp *JournalProcessor) Start() {
	if jp == nil || jp.cron == nil {
		return
	}
	jp.cron.Start()
	jp.logger.Info("journal processor started", zap.Duration("interval", jp.cfg.Interval))
}

// Stop waits for running jobs to finish or for ctx to expire.
func (jp *JournalProcessor) Stop(ctx context.Context) error {
	if jp == nil || jp.cron == nil {
		return nil
	}
	stopCtx := jp.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	jp.logger.Info("journal processor stopped")
	return nil
}

// Record appends the event, buffering it when the database is offline or the append fails.
func (jp *JournalProcessor) Record(ctx context.Context, event domain.Event) error {
	if jp == nil {
		return fmt.Errorf("journal processor not configured")
	}
	if jp.monitor == nil || jp.monitor.IsOnline() {
		err := jp.journal.Append(ctx, event)
		if err == nil {
			metrics.RecordJournalWrite("direct")
			return nil
		}
		jp.logger.Warn("journal append failed, buffering", zap.String("event_id", event.ID), zap.Error(err))
	}
	if jp.store == nil {
		return fmt.Errorf("journal buffer not configured")
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := jp.store.Enqueue(buffer.Item{
		ID:        event.ID,
		Executor:  event.Executor,
		Entity:    buffer.EntityJournal,
		Operation: buffer.OperationAppend,
		Data:      data,
		Timestamp: event.CreatedAt,
	}); err != nil {
		return err
	}
	metrics.RecordJournalWrite("buffered")
	return nil
}

// Drain replays buffered events in order.
func (jp *JournalProcessor) Drain(ctx context.Context) error {
	if jp == nil || jp.store == nil {
		return nil
	}
	if jp.monitor != nil && !jp.monitor.IsOnline() {
		jp.logger.Debug("skipping journal drain (offline)")
		return nil
	}

	items, err := jp.store.GetBatch(jp.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, item := range items {
		if err := jp.processItem(ctx, item); err != nil {
			jp.logger.Error("failed to replay journal item",
				zap.String("item_id", item.ID),
				zap.Int("retries", item.Retries),
				zap.Error(err))

			item.Retries++
			if item.Retries >= jp.cfg.MaxRetries {
				jp.logger.Warn("dropping journal item (max retries reached)", zap.String("item_id", item.ID))
				_ = jp.store.Remove(item)
				metrics.RecordJournalWrite("dropped")
				continue
			}
			if err := jp.store.Requeue(item); err != nil {
				jp.logger.Error("failed to requeue journal item", zap.Error(err))
			}
			continue
		}

		if err := jp.store.Remove(item); err != nil {
			jp.logger.Warn("failed to purge replayed journal item", zap.Error(err))
		}
		metrics.RecordJournalWrite("drained")
	}
	return nil
}

// Cleanup drops buffered items older than the retention window.
func (jp *JournalProcessor) Cleanup(now time.Time) (int, error) {
	if jp == nil || jp.store == nil {
		return 0, nil
	}
	dropped, err := jp.store.Cleanup(now.Add(-jp.cfg.Retention))
	if err != nil {
		return 0, err
	}
	if dropped > 0 {
		jp.logger.Warn("expired journal items dropped", zap.Int("count", dropped))
	}
	return dropped, nil
}

// Size returns the number of buffered items.
func (jp *JournalProcessor) Size() int {
	if jp == nil || jp.store == nil {
		return 0
	}
	size, err := jp.store.Size()
	if err != nil {
		return 0
	}
	return size
}

func (jp *JournalProcessor) processItem(ctx context.Context, item buffer.Item) error {
	if item.Entity != buffer.EntityJournal || item.Operation != buffer.OperationAppend {
		return fmt.Errorf("unsupported buffer item %s/%s", item.Entity, item.Operation)
	}
	var event domain.Event
	if err := json.Unmarshal(item.Data, &event); err != nil {
		return err
	}
	return jp.journal.Append(ctx, event)
}
