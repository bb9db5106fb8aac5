package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/fittrack/fittrack-api/internal/domain"
	googleinfra "github.com/fittrack/fittrack-api/internal/infrastructure/google"
	jwtinfra "github.com/fittrack/fittrack-api/internal/infrastructure/jwt"
	"github.com/fittrack/fittrack-api/internal/pkg/id"
	"github.com/fittrack/fittrack-api/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost      = 12
	codeTTL         = 5 * time.Minute
	maxCodeAttempts = 5
	resendCooldown  = time.Minute
)

// LoginChallenge is the response to a correct password. The caller must
// complete the second step with the emailed code before receiving a token.
type LoginChallenge struct {
	UserID    string `json:"user_id"`
	EmailHint string `json:"email_hint"`
	ExpiresIn int    `json:"expires_in"`
}

// LoginResult is the final outcome of a successful authentication.
type LoginResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByGoogleSub(ctx context.Context, sub string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	LinkGoogleSub(ctx context.Context, userID, sub string) error
}

type VerificationStore interface {
	Put(ctx context.Context, v *domain.VerificationCode) error
	Get(ctx context.Context, userID, purpose string) (*domain.VerificationCode, error)
	Consume(ctx context.Context, userID, purpose string) error
	IncrementAttempts(ctx context.Context, userID, purpose string) (int, error)
}

type Mailer interface {
	SendEmail(to, subject, body string) error
}

type TokenProvider interface {
	Sign(userID string) (string, error)
	Verify(tokenStr string) (*jwtinfra.Claims, error)
}

type GoogleVerifier interface {
	Verify(ctx context.Context, token string) (*googleinfra.Payload, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, subject, message string) error
}

type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, identifier, password string) (*LoginChallenge, error)
	VerifyLogin(ctx context.Context, userID, code string) (*LoginResult, error)
	Resend(ctx context.Context, userID string) error
	Refresh(ctx context.Context, token string) (string, error)
	GoogleLogin(ctx context.Context, idToken string) (*LoginResult, bool, error)
	LinkGoogle(ctx context.Context, userID, idToken string) error
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}

type ServiceDeps struct {
	UserRepo         UserStore
	VerificationRepo VerificationStore
	Mailer           Mailer
	JWTProvider      TokenProvider
	GoogleVerifier   GoogleVerifier
	Events           EventPublisher
}

type service struct {
	users         UserStore
	verifications VerificationStore
	mailer        Mailer
	jwtProvider   TokenProvider
	google        GoogleVerifier
	events        EventPublisher
}

func NewService(deps ServiceDeps) Service {
	return &service{
		users:         deps.UserRepo,
		verifications: deps.VerificationRepo,
		mailer:        deps.Mailer,
		jwtProvider:   deps.JWTProvider,
		google:        deps.GoogleVerifier,
		events:        deps.Events,
	}
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Username:     req.Username,
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		AuthProvider: domain.ProviderLocal,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login checks the password and, when correct, issues a fresh login code by
// email. Wrong identifier, wrong password and federated-only accounts all
// produce the same error so callers cannot probe which accounts exist.
func (s *service) Login(ctx context.Context, identifier, password string) (*LoginChallenge, error) {
	var u *domain.User
	var err error
	if strings.Contains(identifier, "@") {
		u, err = s.users.GetByEmail(ctx, strings.ToLower(identifier))
	} else {
		u, err = s.users.GetByUsername(ctx, identifier)
	}
	if err != nil {
		return nil, errInvalidCredentials()
	}
	if !u.HasPassword() {
		return nil, errInvalidCredentials()
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, errInvalidCredentials()
	}

	if err := s.issueCode(ctx, u); err != nil {
		return nil, err
	}

	return &LoginChallenge{
		UserID:    u.UserID,
		EmailHint: maskEmail(u.Email),
		ExpiresIn: int(codeTTL.Seconds()),
	}, nil
}

// VerifyLogin completes the second step. For an existing record the state is
// checked before the code value, so a burned or expired code reports its own
// kind. An unknown user id gets the same mismatch shape as a wrong code and
// the response never reveals whether the id exists.
func (s *service) VerifyLogin(ctx context.Context, userID, code string) (*LoginResult, error) {
	v, err := s.verifications.Get(ctx, userID, domain.PurposeLogin)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("wrong code: %w", domain.ErrCodeMismatch)
		}
		return nil, err
	}
	if v.Consumed {
		return nil, fmt.Errorf("code already used: %w", domain.ErrCodeConsumed)
	}
	if v.ExpiresAt < time.Now().Unix() {
		return nil, fmt.Errorf("code expired: %w", domain.ErrCodeExpired)
	}
	if v.Attempts >= maxCodeAttempts {
		return nil, fmt.Errorf("too many attempts: %w", domain.ErrTooManyAttempts)
	}
	if v.Code != code {
		n, incErr := s.verifications.IncrementAttempts(ctx, userID, domain.PurposeLogin)
		if incErr != nil {
			slog.Warn("failed to record code attempt", "user_id", userID, "err", incErr)
		}
		if incErr == nil && n >= maxCodeAttempts {
			return nil, fmt.Errorf("too many attempts: %w", domain.ErrTooManyAttempts)
		}
		return nil, fmt.Errorf("wrong code: %w", domain.ErrCodeMismatch)
	}

	// Conditional consume so a raced duplicate submit cannot win twice.
	if err := s.verifications.Consume(ctx, userID, domain.PurposeLogin); err != nil {
		return nil, err
	}

	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	token, err := s.jwtProvider.Sign(u.UserID)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &LoginResult{Token: token, User: u}, nil
}

func (s *service) Resend(ctx context.Context, userID string) error {
	v, err := s.verifications.Get(ctx, userID, domain.PurposeLogin)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if v != nil && !v.Consumed && time.Now().Unix()-v.IssuedAt < int64(resendCooldown.Seconds()) {
		return fmt.Errorf("code requested too recently: %w", domain.ErrRateLimited)
	}

	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return err
	}
	return s.issueCode(ctx, u)
}

func (s *service) Refresh(ctx context.Context, token string) (string, error) {
	claims, err := s.jwtProvider.Verify(token)
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", domain.ErrUnauthorized)
	}
	u, err := s.users.Get(ctx, claims.UserID)
	if err != nil {
		return "", fmt.Errorf("account no longer exists: %w", domain.ErrUnauthorized)
	}
	return s.jwtProvider.Sign(u.UserID)
}

// GoogleLogin signs in with a verified Google ID token, provisioning an account
// on first contact. The second return value reports whether the account is new.
// Accounts are matched by Google subject only; an existing local account with
// the same email address is never linked implicitly.
func (s *service) GoogleLogin(ctx context.Context, idToken string) (*LoginResult, bool, error) {
	payload, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return nil, false, err
	}
	if !payload.EmailVerified {
		return nil, false, fmt.Errorf("google email not verified: %w", domain.ErrUnauthorized)
	}

	u, err := s.users.GetByGoogleSub(ctx, payload.Sub)
	isNew := false
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		u, err = s.provisionGoogleUser(ctx, payload)
		if err != nil {
			return nil, false, err
		}
		isNew = true
		s.publishEvent(ctx, "New federated account", "Google account provisioned for "+u.Email)
	default:
		return nil, false, err
	}

	token, err := s.jwtProvider.Sign(u.UserID)
	if err != nil {
		return nil, false, fmt.Errorf("sign token: %w", err)
	}
	return &LoginResult{Token: token, User: u}, isNew, nil
}

// LinkGoogle attaches a Google identity to the signed-in account. Unlike
// GoogleLogin this is an explicit, authenticated request, so it is the only
// path that ever sets google_sub on an existing local account.
func (s *service) LinkGoogle(ctx context.Context, userID, idToken string) error {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return err
	}
	if u.GoogleSub != "" {
		return fmt.Errorf("account already linked to google: %w", domain.ErrConflict)
	}

	payload, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return err
	}
	if !payload.EmailVerified {
		return fmt.Errorf("google email not verified: %w", domain.ErrUnauthorized)
	}

	// The repo claims the google_sub marker atomically; a sub already owned
	// by another account comes back as ErrConflict.
	if err := s.users.LinkGoogleSub(ctx, userID, payload.Sub); err != nil {
		return err
	}
	s.publishEvent(ctx, "Google account linked", "Google identity linked for user "+userID)
	return nil
}

func (s *service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !u.HasPassword() {
		return fmt.Errorf("account has no password set: %w", domain.ErrBadRequest)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)) != nil {
		return fmt.Errorf("current password is wrong: %w", domain.ErrUnauthorized)
	}
	if !validate.StrongPassword(newPassword) {
		return fmt.Errorf("new password too weak: %w", domain.ErrBadRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.Update(ctx, userID, map[string]interface{}{"password_hash": string(hash)}); err != nil {
		return err
	}
	s.publishEvent(ctx, "Password changed", "Password changed for user "+userID)
	return nil
}

// issueCode writes a fresh code for the user, superseding any previous one,
// and emails it. A delivery failure surfaces as ErrCodeDelivery so the caller
// is not left waiting on a code that never went out.
func (s *service) issueCode(ctx context.Context, u *domain.User) error {
	code, err := generateCode()
	if err != nil {
		return err
	}
	now := time.Now()
	v := &domain.VerificationCode{
		UserID:    u.UserID,
		Purpose:   domain.PurposeLogin,
		Code:      code,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(codeTTL).Unix(),
	}
	if err := s.verifications.Put(ctx, v); err != nil {
		return err
	}
	body := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, int(codeTTL.Minutes()))
	if err := s.mailer.SendEmail(u.Email, "Your login code", body); err != nil {
		return fmt.Errorf("send login code: %w", domain.ErrCodeDelivery)
	}
	return nil
}

func (s *service) provisionGoogleUser(ctx context.Context, p *googleinfra.Payload) (*domain.User, error) {
	now := time.Now().UTC()
	base := usernameFromEmail(p.Email)
	for attempt := 0; attempt < 4; attempt++ {
		u := &domain.User{
			UserID:          id.New(),
			Username:        base,
			Email:           strings.ToLower(p.Email),
			AuthProvider:    domain.ProviderGoogle,
			GoogleSub:       p.Sub,
			DisplayName:     p.Name,
			ProfileImageURL: p.Picture,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		err := s.users.Create(ctx, u)
		if err == nil {
			return u, nil
		}
		if errors.Is(err, domain.ErrDuplicateUsername) {
			base = suffixUsername(usernameFromEmail(p.Email))
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("could not allocate a username: %w", domain.ErrConflict)
}

func (s *service) publishEvent(ctx context.Context, subject, message string) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, subject, message); err != nil {
		slog.Warn("failed to publish security event", "subject", subject, "err", err)
	}
}

func errInvalidCredentials() error {
	return fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// maskEmail keeps the first character of the local part and the domain, e.g.
// "jane@example.com" becomes "j***@example.com".
func maskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}

// usernameFromEmail derives a valid username from the email local part,
// dropping characters outside the allowed set.
func usernameFromEmail(email string) string {
	local := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		local = email[:at]
	}
	var b strings.Builder
	for _, r := range strings.ToLower(local) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}
	name := b.String()
	if len(name) > 14 {
		name = name[:14]
	}
	for len(name) < 3 {
		name += "0"
	}
	return name
}

func suffixUsername(base string) string {
	n, err := rand.Int(rand.Reader, big.NewInt(100000))
	if err != nil {
		return base + "0"
	}
	return fmt.Sprintf("%s_%05d", base, n.Int64())
}
