package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/fastygo/todoledger/domain"
)

const (
	OutcomeSuccess = "success"

	// KindUnknown labels every kind outside domain.TransactionKinds so
	// client-chosen path segments cannot mint new series.
	KindUnknown = "unknown"
)

var (
	transactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "todoledger_transactions_total",
			Help: "Transactions submitted by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)
	transactionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "todoledger_transaction_duration_seconds",
			Help:    "Transaction processing time in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)
	authAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "todoledger_auth_attempts_total",
			Help: "Login, refresh and logout attempts by outcome",
		},
		[]string{"event", "success"},
	)
	journalWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "todoledger_journal_writes_total",
			Help: "Journal entries by path: direct, buffered, drained, dropped",
		},
		[]string{"path"},
	)
)

// RecordTransaction observes one submitted transaction.
func RecordTransaction(kind domain.TransactionKind, started time.Time, err error) {
	label := KindUnknown
	if kind.Valid() {
		label = string(kind)
	}
	transactionsTotal.WithLabelValues(label, Outcome(err)).Inc()
	transactionDuration.WithLabelValues(label).Observe(time.Since(started).Seconds())
}

func RecordAuthAttempt(event string, success bool) {
	authAttempts.WithLabelValues(event, strconv.FormatBool(success)).Inc()
}

func RecordJournalWrite(path string) {
	journalWrites.WithLabelValues(path).Inc()
}

// Outcome maps an error to its domain code label.
func Outcome(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		return string(dErr.Code)
	}
	return string(domain.ErrCodeInternal)
}
