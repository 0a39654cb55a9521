package domain

import "time"

// Session backs a signed bearer token. Email names the executor the token
// speaks for; revoking the session invalidates every token issued for it.
type Session struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Renewals  int       `json:"renewals,omitempty"`
}

func (s *Session) IsExpired(at time.Time) bool {
	return s == nil || !s.ExpiresAt.After(at)
}

// Renew moves the expiry to at+ttl.
func (s *Session) Renew(at time.Time, ttl time.Duration) {
	s.ExpiresAt = at.Add(ttl)
	s.Renewals++
}
