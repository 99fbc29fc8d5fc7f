package service

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/enroll-dev/enroll/internal/domain"
	"github.com/enroll-dev/enroll/internal/errors"
	"github.com/enroll-dev/enroll/internal/logger"
	"github.com/enroll-dev/enroll/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(email domain.Email, password string) error
	Verify(email domain.Email, code string) error
	Login(email domain.Email, password string) (domain.Account, error)
}

type Auth struct {
	accounts   AccountStorage
	pending    PendingStorage
	sender     Sender
	codeTTL    time.Duration
	bcryptCost int
}

type AccountStorage interface {
	Exists(email domain.Email) bool
	Create(email domain.Email, passwordHash string) (domain.Account, error)
	User(email domain.Email) (domain.Account, error)
}

type PendingStorage interface {
	Put(email domain.Email, code, passwordHash string, ttl time.Duration)
	Get(email domain.Email) (domain.PendingRegistration, error)
	Remove(email domain.Email)
}

type Sender interface {
	Send(recipientEmail, subject, body string) error
}

func NewAuth(accounts AccountStorage, pending PendingStorage, sender Sender, codeTTL time.Duration, bcryptCost int) *Auth {
	return &Auth{
		accounts:   accounts,
		pending:    pending,
		sender:     sender,
		codeTTL:    codeTTL,
		bcryptCost: bcryptCost,
	}
}

// Register starts a signup: it stores a pending entry carrying the hashed
// password and a one-time code, then mails the code. A repeated call for the
// same email replaces the previous pending entry.
func (a *Auth) Register(email domain.Email, password string) error {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)

	if err := utils.ValidateEmail(email); err != nil {
		return err
	}
	if !utils.ValidatePassword(password) {
		return &errors.ErrorWithStatusCode{Message: "Password must be >=6 chars, include 1 uppercase & 1 number", StatusCode: http.StatusBadRequest}
	}
	if a.accounts.Exists(email) {
		return &errors.ErrorWithStatusCode{Message: "Email already registered", StatusCode: http.StatusConflict}
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return err
	}

	code := utils.GenerateVerificationCode()
	a.pending.Put(email, code, string(passHash), a.codeTTL)

	emailBody := fmt.Sprintf("Your verification code is: %s", code)
	if err := a.sender.Send(email, "Your verification code", emailBody); err != nil {
		logger.Log.Error("failed to send verification code", "error", err)
		// the pending entry stays: the caller can still verify with a code
		// obtained out of band, or re-register for a fresh one
		return &errors.ErrorWithStatusCode{Message: "Failed to send verification code", StatusCode: http.StatusInternalServerError}
	}
	return nil
}

// Verify consumes the pending entry and promotes it to a stored account.
// A wrong code leaves the entry (and its remaining TTL) in place for a retry.
func (a *Auth) Verify(email domain.Email, code string) error {
	email = strings.TrimSpace(email)
	code = strings.TrimSpace(code)

	if err := utils.ValidateEmail(email); err != nil {
		return err
	}
	if code == "" {
		return &errors.ErrorWithStatusCode{Message: "Code is required", StatusCode: http.StatusBadRequest}
	}

	entry, err := a.pending.Get(email)
	if err != nil {
		if errors.IsNotFound(err) {
			return &errors.ErrorWithStatusCode{Message: "No registration request found", StatusCode: http.StatusBadRequest}
		}
		return err
	}
	if entry.Code != code {
		return &errors.ErrorWithStatusCode{Message: "Invalid code", StatusCode: http.StatusBadRequest}
	}

	// the account store is the sole enforcement point for uniqueness: two
	// concurrent verifies both reach Create, exactly one wins
	if _, err := a.accounts.Create(email, entry.PasswordHash); err != nil {
		return err
	}
	a.pending.Remove(email)
	return nil
}

// Login checks if an account with given credentials exists in the system.
// Unknown email and wrong password produce the same answer, to not leak
// which addresses are registered.
func (a *Auth) Login(email domain.Email, password string) (domain.Account, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)

	if err := utils.ValidateEmail(email); err != nil {
		return domain.Account{}, err
	}
	if password == "" {
		return domain.Account{}, &errors.ErrorWithStatusCode{Message: "Password is required", StatusCode: http.StatusBadRequest}
	}

	account, err := a.accounts.User(email)
	if err != nil {
		if errors.IsNotFound(err) {
			return domain.Account{}, &errors.ErrorWithStatusCode{Message: "Invalid credentials", StatusCode: http.StatusUnauthorized}
		}
		return domain.Account{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return domain.Account{}, &errors.ErrorWithStatusCode{Message: "Invalid credentials", StatusCode: http.StatusUnauthorized}
	}
	return account, nil
}
