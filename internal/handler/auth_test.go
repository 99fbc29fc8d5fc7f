package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/enroll-dev/enroll/internal/domain"
	internal_errors "github.com/enroll-dev/enroll/internal/errors"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockAuthService struct {
	RegisterFunc func(email domain.Email, password string) error
	VerifyFunc   func(email domain.Email, code string) error
	LoginFunc    func(email domain.Email, password string) (domain.Account, error)
}

func (m *MockAuthService) Register(email domain.Email, password string) error {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(email, password)
	}
	return nil
}

func (m *MockAuthService) Verify(email domain.Email, code string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(email, code)
	}
	return nil
}

func (m *MockAuthService) Login(email domain.Email, password string) (domain.Account, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(email, password)
	}
	return domain.Account{}, nil
}

func newTestRouter(auth *MockAuthService) chi.Router {
	h := New(auth)
	r := chi.NewRouter()
	r.Post("/register", h.Register)
	r.Post("/verify", h.Verify)
	r.Post("/login", h.Login)
	return r
}

func postJSON(t *testing.T, router chi.Router, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestRegisterHandler(t *testing.T) {
	requestBody := []byte(`{"email": "a@x.com", "password": "Abcde1"}`)

	t.Run("successful request", func(t *testing.T) {
		called := false
		router := newTestRouter(&MockAuthService{
			RegisterFunc: func(email domain.Email, password string) error {
				called = true
				assert.Equal(t, "a@x.com", email)
				assert.Equal(t, "Abcde1", password)
				return nil
			},
		})

		rr := postJSON(t, router, "/register", requestBody)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, called)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Temporary code sent to email", resp["message"])
	})

	t.Run("invalid request body", func(t *testing.T) {
		router := newTestRouter(&MockAuthService{})

		rr := postJSON(t, router, "/register", []byte(`{invalid json::}`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		router := newTestRouter(&MockAuthService{})

		rr := postJSON(t, router, "/register", []byte(`{"email": "a@x.com"}`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		router := newTestRouter(&MockAuthService{
			RegisterFunc: func(email domain.Email, password string) error {
				return &internal_errors.ErrorWithStatusCode{Message: "Email already registered", StatusCode: http.StatusConflict}
			},
		})

		rr := postJSON(t, router, "/register", requestBody)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), "Email already registered")
	})

	t.Run("unexpected service error maps to 500", func(t *testing.T) {
		router := newTestRouter(&MockAuthService{
			RegisterFunc: func(email domain.Email, password string) error {
				return assert.AnError
			},
		})

		rr := postJSON(t, router, "/register", requestBody)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		// internal detail stays server-side
		assert.NotContains(t, rr.Body.String(), assert.AnError.Error())
	})
}

func TestVerifyHandler(t *testing.T) {
	requestBody := []byte(`{"email": "a@x.com", "code": "123456"}`)

	t.Run("successful request", func(t *testing.T) {
		router := newTestRouter(&MockAuthService{
			VerifyFunc: func(email domain.Email, code string) error {
				assert.Equal(t, "a@x.com", email)
				assert.Equal(t, "123456", code)
				return nil
			},
		})

		rr := postJSON(t, router, "/verify", requestBody)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Registration successful", resp["message"])
	})

	t.Run("invalid code", func(t *testing.T) {
		router := newTestRouter(&MockAuthService{
			VerifyFunc: func(email domain.Email, code string) error {
				return &internal_errors.ErrorWithStatusCode{Message: "Invalid code", StatusCode: http.StatusBadRequest}
			},
		})

		rr := postJSON(t, router, "/verify", requestBody)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid code")
	})

	t.Run("missing code field", func(t *testing.T) {
		router := newTestRouter(&MockAuthService{})

		rr := postJSON(t, router, "/verify", []byte(`{"email": "a@x.com"}`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestLoginHandler(t *testing.T) {
	requestBody := []byte(`{"email": "a@x.com", "password": "Abcde1"}`)

	t.Run("successful request", func(t *testing.T) {
		router := newTestRouter(&MockAuthService{
			LoginFunc: func(email domain.Email, password string) (domain.Account, error) {
				return domain.Account{Id: "id", Email: email}, nil
			},
		})

		rr := postJSON(t, router, "/login", requestBody)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Login successful", resp["message"])
		assert.Equal(t, "a@x.com", resp["email"])
	})

	t.Run("invalid credentials", func(t *testing.T) {
		router := newTestRouter(&MockAuthService{
			LoginFunc: func(email domain.Email, password string) (domain.Account, error) {
				return domain.Account{}, &internal_errors.ErrorWithStatusCode{Message: "Invalid credentials", StatusCode: http.StatusUnauthorized}
			},
		})

		rr := postJSON(t, router, "/login", requestBody)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid credentials")
	})

	t.Run("invalid request body", func(t *testing.T) {
		router := newTestRouter(&MockAuthService{})

		rr := postJSON(t, router, "/login", []byte(`not json`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
