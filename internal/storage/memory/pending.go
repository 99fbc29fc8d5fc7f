// Package memory holds the in-flight registration state. Entries expire
// lazily on read; a process restart clears everything, which is acceptable
// because a pending registration is advisory until verified.
package memory

import (
	"net/http"
	"sync"
	"time"

	"github.com/enroll-dev/enroll/internal/domain"
	"github.com/enroll-dev/enroll/internal/errors"
)

type PendingStore struct {
	mu      sync.RWMutex
	entries map[domain.Email]domain.PendingRegistration
}

func New() *PendingStore {
	return &PendingStore{
		entries: make(map[domain.Email]domain.PendingRegistration),
	}
}

// Put inserts or replaces the pending registration for email. A repeated
// signup attempt before verification always wins over the previous one.
func (s *PendingStore) Put(email domain.Email, code, passwordHash string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[email] = domain.PendingRegistration{
		Email:        email,
		Code:         code,
		PasswordHash: passwordHash,
		ExpiresAt:    time.Now().Add(ttl),
	}
}

// Get returns the live entry for email. Both a missing entry and an expired
// one report not found; the expired entry is deleted on the way out.
func (s *PendingStore) Get(email domain.Email) (domain.PendingRegistration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[email]
	if !ok {
		return domain.PendingRegistration{}, &errors.ErrorWithStatusCode{Message: "Pending registration not found", StatusCode: http.StatusNotFound}
	}
	if time.Now().After(entry.ExpiresAt) {
		delete(s.entries, email)
		return domain.PendingRegistration{}, &errors.ErrorWithStatusCode{Message: "Pending registration not found", StatusCode: http.StatusNotFound}
	}
	return entry, nil
}

// Remove deletes the entry for email. Removing an absent entry is a no-op.
func (s *PendingStore) Remove(email domain.Email) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, email)
}
