package monitor

import "time"

type Status struct {
	Database   bool      `json:"database"`
	Redis      bool      `json:"redis"`
	Buffer     bool      `json:"buffer"`
	BufferSize int       `json:"buffer_size"`
	LastCheck  time.Time `json:"last_check"`
}

// Healthy reports whether every hard dependency answered the last probe.
func (s Status) Healthy() bool {
	return s.Database && s.Redis
}
