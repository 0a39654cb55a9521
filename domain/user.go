package domain

import "time"

// User is a ledger participant identified by email.
type User struct {
	Email         string     `json:"email"`
	FirstName     string     `json:"first_name,omitempty"`
	LastName      string     `json:"last_name,omitempty"`
	Password      string     `json:"-"`
	CreatedAt     time.Time  `json:"created_at"`
	LastUpdatedAt *time.Time `json:"last_updated_at,omitempty"`
}

// Ref returns the reference used to stamp this user onto tasks.
func (u *User) Ref() Ref {
	if u == nil {
		return Ref{}
	}
	return UserRef(u.Email)
}

func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.LastUpdatedAt != nil {
		at := *u.LastUpdatedAt
		c.LastUpdatedAt = &at
	}
	return &c
}
