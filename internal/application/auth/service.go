package auth

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/go-auth-api/internal/domain"
	"github.com/go-auth-api/internal/infrastructure/cache"
	jwtinfra "github.com/go-auth-api/internal/infrastructure/jwt"
	"github.com/go-auth-api/internal/infrastructure/smtp"
	"github.com/go-auth-api/internal/pkg/id"
)

const (
	cacheKeyPrefix  = "auth:email:"
	verificationTTL = 10 * time.Minute
	defaultExpires  = "7d"
)

type RequestCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ConfirmCodeRequest struct {
	Token string `json:"token" validate:"required"`
	Code  string `json:"code" validate:"required,len=6"`
}

// Service is the auth flow orchestrator: code issuance, cache-backed pending
// verification, confirmation with user upsert, and token issuance/refresh.
type Service interface {
	RequestEmailCode(ctx context.Context, email string) (requestToken string, err error)
	ConfirmEmailCode(ctx context.Context, requestToken, code string) (jwtinfra.SignedToken, error)
	Refresh(ctx context.Context, payload domain.SessionPayload) (jwtinfra.SignedToken, error)
}

type userStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SetActive(ctx context.Context, userID string, active bool) error
}

type service struct {
	store     cache.Store
	users     userStore
	mailer    smtp.Mailer
	secret    string
	expiresIn string
}

type ServiceDeps struct {
	Store     cache.Store
	UserRepo  userStore
	Mailer    smtp.Mailer
	Secret    string
	ExpiresIn string
}

func NewService(deps ServiceDeps) Service {
	expiresIn := deps.ExpiresIn
	if expiresIn == "" {
		expiresIn = defaultExpires
	}
	return &service{
		store:     deps.Store,
		users:     deps.UserRepo,
		mailer:    deps.Mailer,
		secret:    deps.Secret,
		expiresIn: expiresIn,
	}
}

// RequestEmailCode mints an opaque request token, stores the pending
// verification for 10 minutes and dispatches the code by mail. Mail failure
// is logged and swallowed: the token already exists, so the user may retry
// or receive the code out of band. Throttling belongs to the HTTP layer.
func (s *service) RequestEmailCode(ctx context.Context, email string) (string, error) {
	token := id.New()
	code, err := generateCode()
	if err != nil {
		return "", err
	}

	entry, err := json.Marshal(domain.PendingVerification{Email: email, Code: code})
	if err != nil {
		return "", fmt.Errorf("marshal verification: %w", err)
	}
	if err := s.store.Set(ctx, cacheKeyPrefix+token, string(entry), verificationTTL); err != nil {
		return "", fmt.Errorf("store verification: %w", err)
	}

	body := fmt.Sprintf("<p>Your confirmation code: <strong>%s</strong></p>", code)
	if err := s.mailer.SendEmail(email, "Email confirmation", body); err != nil {
		slog.Warn("failed to send confirmation email", "email", email, "err", err)
	}

	return token, nil
}

// ConfirmEmailCode resolves the pending verification, upserts the user and
// issues a session token. A mismatched code leaves the entry intact so the
// user can retry until the TTL expires; a successful match consumes it.
func (s *service) ConfirmEmailCode(ctx context.Context, requestToken, code string) (jwtinfra.SignedToken, error) {
	key := cacheKeyPrefix + requestToken
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return jwtinfra.SignedToken{}, domain.ErrInvalidVerification
		}
		return jwtinfra.SignedToken{}, fmt.Errorf("lookup verification: %w", err)
	}
	var pending domain.PendingVerification
	if err := json.Unmarshal([]byte(raw), &pending); err != nil {
		return jwtinfra.SignedToken{}, fmt.Errorf("decode verification: %w", err)
	}
	if pending.Code != code {
		return jwtinfra.SignedToken{}, domain.ErrInvalidVerification
	}

	user, err := s.users.GetByEmail(ctx, pending.Email)
	switch {
	case err == nil:
		if err := s.users.SetActive(ctx, user.ID, true); err != nil {
			return jwtinfra.SignedToken{}, err
		}
	case errors.Is(err, domain.ErrNotFound):
		user = &domain.User{
			ID:        id.NewUUID(),
			Email:     pending.Email,
			IsActive:  true,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.users.Create(ctx, user); err != nil {
			return jwtinfra.SignedToken{}, err
		}
	default:
		return jwtinfra.SignedToken{}, err
	}

	// Single-use: consumed after a successful match, racing confirms race on
	// the store and at most one sees the entry.
	if err := s.store.Delete(ctx, key); err != nil {
		slog.Warn("failed to delete verification entry", "err", err)
	}

	return s.sign(domain.SessionPayload{UserID: user.ID, Email: user.Email})
}

// Refresh re-signs the already-verified payload with a fresh expiry.
// Deliberately does not hit the directory: refresh trusts the session.
func (s *service) Refresh(_ context.Context, payload domain.SessionPayload) (jwtinfra.SignedToken, error) {
	return s.sign(payload)
}

func (s *service) sign(payload domain.SessionPayload) (jwtinfra.SignedToken, error) {
	if s.secret == "" {
		return jwtinfra.SignedToken{}, fmt.Errorf("JWT secret not configured: %w", domain.ErrConfiguration)
	}
	return jwtinfra.Sign(payload, s.expiresIn, s.secret)
}

// generateCode returns a uniformly random 6-digit code in [100000, 899999],
// never with a leading zero.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(800000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}
