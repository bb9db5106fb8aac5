package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fittrack/fittrack-api/internal/application/auth"
	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mock ---

type mockAuthSvc struct{ mock.Mock }

func (m *mockAuthSvc) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) Login(ctx context.Context, identifier, password string) (*auth.LoginChallenge, error) {
	args := m.Called(ctx, identifier, password)
	if c, _ := args.Get(0).(*auth.LoginChallenge); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) VerifyLogin(ctx context.Context, userID, code string) (*auth.LoginResult, error) {
	args := m.Called(ctx, userID, code)
	if res, _ := args.Get(0).(*auth.LoginResult); res != nil {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) Resend(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockAuthSvc) Refresh(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func (m *mockAuthSvc) GoogleLogin(ctx context.Context, idToken string) (*auth.LoginResult, bool, error) {
	args := m.Called(ctx, idToken)
	if res, _ := args.Get(0).(*auth.LoginResult); res != nil {
		return res, args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *mockAuthSvc) LinkGoogle(ctx context.Context, userID, idToken string) error {
	return m.Called(ctx, userID, idToken).Error(0)
}
func (m *mockAuthSvc) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	return m.Called(ctx, userID, currentPassword, newPassword).Error(0)
}

// --- helpers ---

func postJSON(t *testing.T, h http.HandlerFunc, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

// --- Register ---

func TestRegister_InvalidBody(t *testing.T) {
	h := NewAuthHandler(&mockAuthSvc{})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader([]byte("{")))
	rr := httptest.NewRecorder()
	h.Register(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRegister_WeakPassword_RejectedBeforeService(t *testing.T) {
	svc := &mockAuthSvc{}
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.Register, "/api/auth/register", domain.RegisterRequest{
		Username: "jane_doe",
		Email:    "jane@example.com",
		Password: "alllowercase",
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "Register")
}

func TestRegister_BadUsername_Rejected(t *testing.T) {
	svc := &mockAuthSvc{}
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.Register, "/api/auth/register", domain.RegisterRequest{
		Username: "x",
		Email:    "jane@example.com",
		Password: "Sup3rSecret",
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "Register")
}

func TestRegister_DuplicateEmail_Conflict(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Register", mock.Anything, mock.Anything).Return(nil, domain.ErrDuplicateEmail)
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.Register, "/api/auth/register", domain.RegisterRequest{
		Username: "jane_doe",
		Email:    "jane@example.com",
		Password: "Sup3rSecret",
	})

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestRegister_Created(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Register", mock.Anything, mock.Anything).Return(&domain.User{
		UserID: "u1", Username: "jane_doe", Email: "jane@example.com",
	}, nil)
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.Register, "/api/auth/register", domain.RegisterRequest{
		Username: "jane_doe",
		Email:    "jane@example.com",
		Password: "Sup3rSecret",
	})

	assert.Equal(t, http.StatusCreated, rr.Code)
	var u domain.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &u))
	assert.Equal(t, "u1", u.UserID)
}

// --- Login ---

func TestLogin_BadCredentials_Unauthorized(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Login", mock.Anything, "jane", "wrong").
		Return(nil, domain.ErrUnauthorized)
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.Login, "/api/auth/login", domain.LoginRequest{
		Identifier: "jane", Password: "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLogin_ReturnsChallenge(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Login", mock.Anything, "jane", "RightPass1").Return(&auth.LoginChallenge{
		UserID: "u1", EmailHint: "j***@example.com", ExpiresIn: 300,
	}, nil)
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.Login, "/api/auth/login", domain.LoginRequest{
		Identifier: "jane", Password: "RightPass1",
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	var ch auth.LoginChallenge
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ch))
	assert.Equal(t, "u1", ch.UserID)
	assert.Equal(t, "j***@example.com", ch.EmailHint)
}

// --- VerifyLogin ---

func TestVerifyLogin_NonNumericCode_Rejected(t *testing.T) {
	svc := &mockAuthSvc{}
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.VerifyLogin, "/api/auth/verify", domain.VerifyLoginRequest{
		UserID: "u1", Code: "abc123",
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "VerifyLogin")
}

func TestVerifyLogin_TooManyAttempts_Unauthorized(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("VerifyLogin", mock.Anything, "u1", "123456").Return(nil, domain.ErrTooManyAttempts)
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.VerifyLogin, "/api/auth/verify", domain.VerifyLoginRequest{
		UserID: "u1", Code: "123456",
	})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestVerifyLogin_ReturnsToken(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("VerifyLogin", mock.Anything, "u1", "123456").Return(&auth.LoginResult{
		Token: "signed.jwt",
		User:  &domain.User{UserID: "u1"},
	}, nil)
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.VerifyLogin, "/api/auth/verify", domain.VerifyLoginRequest{
		UserID: "u1", Code: "123456",
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	var res auth.LoginResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, "signed.jwt", res.Token)
}

// --- Resend ---

func TestResend_RateLimited(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Resend", mock.Anything, "u1").Return(domain.ErrRateLimited)
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.Resend, "/api/auth/resend", map[string]string{"user_id": "u1"})

	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
}

// --- Google ---

func TestGoogleLogin_ReportsNewUser(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("GoogleLogin", mock.Anything, "id.token").Return(&auth.LoginResult{
		Token: "signed.jwt",
		User:  &domain.User{UserID: "u1"},
	}, true, nil)
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.GoogleLogin, "/api/auth/google", map[string]string{"id_token": "id.token"})

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, true, body["is_new_user"])
	assert.Equal(t, "signed.jwt", body["token"])
}
