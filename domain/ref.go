package domain

import (
	"fmt"
	"strings"
)

// Namespace is the record namespace every identity lives under.
const Namespace = "org.example.todolist"

// Record types.
const (
	TypeUser = "User"
	TypeTask = "Task"
)

const refScheme = "resource:"

// Ref is a non-owning reference to a record: namespace, type and key.
// It is never dereferenced by the engines; the stores resolve it lazily.
type Ref struct {
	Namespace string
	Type      string
	ID        string
}

// NewRelationship builds a reference to a record of the given type in the ledger namespace.
func NewRelationship(recordType, id string) Ref {
	return Ref{Namespace: Namespace, Type: recordType, ID: id}
}

// UserRef builds a reference to the user identified by email. The user need not exist.
func UserRef(email string) Ref {
	return NewRelationship(TypeUser, email)
}

// ParseRef accepts either the canonical "resource:<ns>.<Type>#<id>" form or a
// bare key, and returns a reference to a record of recordType. A canonical
// reference outside Namespace or of another type fails with ErrInvalidReference.
func ParseRef(s, recordType string) (Ref, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Ref{}, nil
	}
	if !strings.HasPrefix(s, refScheme) {
		return NewRelationship(recordType, s), nil
	}

	body := strings.TrimPrefix(s, refScheme)
	hash := strings.Index(body, "#")
	if hash <= 0 || hash == len(body)-1 {
		return Ref{}, fmt.Errorf("%w: malformed %q", ErrInvalidReference, s)
	}
	qualified, id := body[:hash], body[hash+1:]
	dot := strings.LastIndex(qualified, ".")
	if dot <= 0 || dot == len(qualified)-1 {
		return Ref{}, fmt.Errorf("%w: malformed %q", ErrInvalidReference, s)
	}

	ref := Ref{Namespace: qualified[:dot], Type: qualified[dot+1:], ID: id}
	if ref.Namespace != Namespace {
		return Ref{}, fmt.Errorf("%w: namespace %q", ErrInvalidReference, ref.Namespace)
	}
	if ref.Type != recordType {
		return Ref{}, fmt.Errorf("%w: %s reference where %s expected", ErrInvalidReference, ref.Type, recordType)
	}
	return ref, nil
}

func (r Ref) IsZero() bool {
	return r.ID == ""
}

func (r Ref) String() string {
	if r.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s%s.%s#%s", refScheme, r.Namespace, r.Type, r.ID)
}

func (r Ref) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes a user reference: every Ref field on a record names a user.
func (r *Ref) UnmarshalText(text []byte) error {
	parsed, err := ParseRef(string(text), TypeUser)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// refPtr returns nil for the zero reference so optional fields stay unset.
func refPtr(r Ref) *Ref {
	if r.IsZero() {
		return nil
	}
	return &r
}
