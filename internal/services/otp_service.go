package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync"
	"time"

	"fillratedash/internal/store"
	"fillratedash/internal/utils"
)

var (
	ErrInvalidAddress    = errors.New("invalid email address")
	ErrForbiddenDomain   = errors.New("forbidden email domain")
	ErrRateLimited       = errors.New("rate limited")
	ErrNoActiveChallenge = errors.New("no active challenge")
	ErrChallengeExpired  = errors.New("challenge expired")
	ErrAttemptsExhausted = errors.New("attempts exhausted")
	ErrDeliveryFailed    = errors.New("delivery failed")
)

// InvalidCodeError reports a failed code comparison. Remaining of zero means
// the challenge was deleted and a new code must be requested.
type InvalidCodeError struct {
	Remaining int
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid code, %d attempts remaining", e.Remaining)
}

const (
	MaxOTPRequestsPerHour = 5
	MaxVerifyPerHour      = 3
	MaxConfirmAttempts    = 3
	OTPValidity           = 10 * time.Minute

	rateWindow = time.Hour
	codeDigits = 6
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// OTPService owns the OTP challenge lifecycle: issuance, rate limiting and
// verification. All mutations for one address run under that address's lock;
// the SMTP dispatch deliberately happens outside of it.
type OTPService struct {
	Store  store.AuthStore
	Emails EmailService
	Domain string

	now func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewOTPService(authStore store.AuthStore, emails EmailService, allowedDomain string) *OTPService {
	return &OTPService{
		Store:  authStore,
		Emails: emails,
		Domain: allowedDomain,
		now:    time.Now,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (s *OTPService) addressLock(email string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[email]
	if !ok {
		l = &sync.Mutex{}
		s.locks[email] = l
	}
	return l
}

// NormalizeEmail lowercases and trims an address the same way for issuance
// and verification, so the digest matches.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *OTPService) checkDomain(email string) error {
	if !strings.HasSuffix(email, "@"+s.Domain) {
		return ErrForbiddenDomain
	}
	return nil
}

func codeDigest(email, code string) string {
	sum := sha256.Sum256([]byte(email + "_" + code))
	return hex.EncodeToString(sum[:])
}

// RequestCode issues a fresh 6-digit code for the address and emails it.
// A prior pending challenge for the same address is overwritten. A failed
// send returns ErrDeliveryFailed but leaves the stored challenge in place;
// the next request simply overwrites it.
func (s *OTPService) RequestCode(email string) (string, error) {
	email = NormalizeEmail(email)
	if !emailPattern.MatchString(email) {
		return "", ErrInvalidAddress
	}
	if err := s.checkDomain(email); err != nil {
		return "", err
	}

	lock := s.addressLock(email)
	lock.Lock()

	now := s.now()
	cnt, err := s.Store.CountAttemptsSince(email, store.ActionRequestCode, now.Add(-rateWindow))
	if err != nil {
		lock.Unlock()
		return "", err
	}
	if cnt >= MaxOTPRequestsPerHour {
		lock.Unlock()
		log.Printf("[auth][send-otp] rate limited email=%q", email)
		return "", ErrRateLimited
	}

	code, err := utils.NumericCode(codeDigits)
	if err != nil {
		lock.Unlock()
		return "", err
	}

	if err := s.Store.PutChallenge(store.Challenge{
		Address:  email,
		CodeHash: codeDigest(email, code),
		IssuedAt: now,
		Attempts: 0,
	}); err != nil {
		lock.Unlock()
		return "", err
	}
	if err := s.Store.AppendAttempt(email, store.ActionRequestCode, now); err != nil {
		lock.Unlock()
		return "", err
	}
	lock.Unlock()

	// Network I/O outside the address lock.
	if err := s.Emails.SendOTPEmail(email, code, OTPValidity); err != nil {
		log.Printf("[auth][send-otp] delivery failed email=%q: %v", email, err)
		return "", fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	log.Printf("[auth][send-otp] OTP sent email=%q", email)
	return email, nil
}

// VerifyCode validates a submitted code against the pending challenge.
// Checks run in a fixed order: domain, rate limit, existence, expiry,
// attempt ceiling, digest comparison. On success the challenge is deleted
// and the verify ledger for the address is cleared.
func (s *OTPService) VerifyCode(email, code string) (string, error) {
	email = NormalizeEmail(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return "", ErrInvalidAddress
	}
	if err := s.checkDomain(email); err != nil {
		return "", err
	}

	lock := s.addressLock(email)
	lock.Lock()
	defer lock.Unlock()

	now := s.now()
	cnt, err := s.Store.CountAttemptsSince(email, store.ActionVerifyCode, now.Add(-rateWindow))
	if err != nil {
		return "", err
	}
	if cnt >= MaxVerifyPerHour {
		log.Printf("[auth][verify-otp] rate limited email=%q", email)
		return "", ErrRateLimited
	}

	ch, err := s.Store.GetChallenge(email)
	if err != nil {
		return "", err
	}
	if ch == nil {
		return "", ErrNoActiveChallenge
	}

	if now.Sub(ch.IssuedAt) > OTPValidity {
		if err := s.Store.DeleteChallenge(email); err != nil {
			return "", err
		}
		log.Printf("[auth][verify-otp] challenge expired email=%q", email)
		return "", ErrChallengeExpired
	}

	if ch.Attempts >= MaxConfirmAttempts {
		if err := s.Store.DeleteChallenge(email); err != nil {
			return "", err
		}
		return "", ErrAttemptsExhausted
	}

	if codeDigest(email, code) != ch.CodeHash {
		ch.Attempts++
		if err := s.Store.PutChallenge(*ch); err != nil {
			return "", err
		}
		if err := s.Store.AppendAttempt(email, store.ActionVerifyCode, now); err != nil {
			return "", err
		}
		remaining := MaxConfirmAttempts - ch.Attempts
		if remaining <= 0 {
			if err := s.Store.DeleteChallenge(email); err != nil {
				return "", err
			}
		}
		log.Printf("[auth][verify-otp] invalid code email=%q remaining=%d", email, remaining)
		return "", &InvalidCodeError{Remaining: remaining}
	}

	if err := s.Store.DeleteChallenge(email); err != nil {
		return "", err
	}
	if err := s.Store.ClearAttempts(email, store.ActionVerifyCode); err != nil {
		return "", err
	}
	log.Printf("[auth][verify-otp] login OK email=%q", email)
	return email, nil
}
