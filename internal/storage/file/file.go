// Package file persists confirmed accounts as a single JSON collection,
// rewritten in full on every create. Good enough for the expected account
// volume; readers in the same process never observe a partial write because
// all access goes through the store's mutex and the file is swapped in with
// a rename.
package file

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/enroll-dev/enroll/internal/domain"
	"github.com/enroll-dev/enroll/internal/errors"
	"github.com/enroll-dev/enroll/internal/logger"
	"github.com/google/uuid"
)

type Storage struct {
	mu       sync.Mutex
	path     string
	accounts []domain.Account
}

// New loads the account collection from path. A missing file starts an empty
// collection; an unreadable one is logged and also starts empty, matching the
// recover-and-continue behavior expected from the store.
func New(path string) (*Storage, error) {
	s := &Storage{path: filepath.Clean(path)}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read accounts file %s: %w", s.path, err)
	}
	if err := json.Unmarshal(data, &s.accounts); err != nil {
		logger.Log.Error("failed to parse accounts file, starting empty", "path", s.path, "error", err)
		s.accounts = nil
	}
	return s, nil
}

// Exists reports whether an account with this email is stored.
func (s *Storage) Exists(email domain.Email) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.find(email) != nil
}

// Create appends a new account and rewrites the collection durably before
// returning. The mutex makes the conflict check atomic with the append, so
// concurrent creates for the same email resolve to exactly one winner.
func (s *Storage) Create(email domain.Email, passwordHash string) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.find(email) != nil {
		return domain.Account{}, &errors.ErrorWithStatusCode{Message: "Email already registered", StatusCode: http.StatusConflict}
	}

	account := domain.Account{
		Id:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	s.accounts = append(s.accounts, account)

	if err := s.flush(); err != nil {
		// roll back the in-memory append so memory and disk stay in sync
		s.accounts = s.accounts[:len(s.accounts)-1]
		return domain.Account{}, err
	}
	return account, nil
}

// User fetches an account by email.
func (s *Storage) User(email domain.Email) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if account := s.find(email); account != nil {
		return *account, nil
	}
	return domain.Account{}, &errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
}

// Cleanup flushes the collection a final time at process stop.
func (s *Storage) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.flush(); err != nil {
		logger.Log.Error("final accounts flush failed", "error", err)
	}
}

// find assumes the caller holds s.mu.
func (s *Storage) find(email domain.Email) *domain.Account {
	for i := range s.accounts {
		if s.accounts[i].Email == email {
			return &s.accounts[i]
		}
	}
	return nil
}

// flush rewrites the whole collection via temp file + rename. Assumes the
// caller holds s.mu.
func (s *Storage) flush() error {
	data, err := json.MarshalIndent(s.accounts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal accounts: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".accounts-*")
	if err != nil {
		return fmt.Errorf("failed to create temp accounts file: %w", err)
	}
	defer os.Remove(tmp.Name()) // best effort, gone already on the happy path

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write accounts: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync accounts: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close accounts file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace accounts file: %w", err)
	}
	return nil
}
