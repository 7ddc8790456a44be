// Package store holds the process-wide authentication state: pending OTP
// challenges and the per-address attempt ledgers used for rate limiting.
// The interface exists so a deployment can back it with a shared cache
// instead of process memory.
package store

import "time"

type ActionKind string

const (
	ActionRequestCode ActionKind = "request-code"
	ActionVerifyCode  ActionKind = "verify-code"
)

// Challenge is one outstanding OTP verification for an email address.
// At most one exists per address; a new request overwrites the old one.
type Challenge struct {
	Address  string
	CodeHash string
	IssuedAt time.Time
	Attempts int
}

type AuthStore interface {
	// GetChallenge returns nil, nil when no challenge exists for the address.
	GetChallenge(address string) (*Challenge, error)
	PutChallenge(ch Challenge) error
	DeleteChallenge(address string) error

	AppendAttempt(address string, kind ActionKind, at time.Time) error
	// CountAttemptsSince prunes entries older than since and returns how
	// many remain in the window.
	CountAttemptsSince(address string, kind ActionKind, since time.Time) (int, error)
	ClearAttempts(address string, kind ActionKind) error
}
