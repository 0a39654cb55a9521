package domain

import (
	"encoding/json"
	"time"
)

// Event is a journal entry for one applied transaction.
type Event struct {
	ID        string          `json:"id"`
	Kind      TransactionKind `json:"kind"`
	Executor  string          `json:"executor,omitempty"`
	TargetID  string          `json:"target_id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
