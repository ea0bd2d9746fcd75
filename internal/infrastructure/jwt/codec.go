package jwtinfra

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/go-auth-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultExpiry is applied when an expiry string does not match the
// <integer><unit> grammar. Lenient fallback, never an error.
const DefaultExpiry = 24 * time.Hour

var expiryRe = regexp.MustCompile(`^(\d+)([smhdwy])$`)

// unitMillis maps a duration unit to its length in milliseconds.
// "y" is the Julian year (365.25 days).
var unitMillis = map[string]int64{
	"s": 1000,
	"m": 60000,
	"h": 3600000,
	"d": 86400000,
	"w": 604800000,
	"y": 31557600000,
}

// Claims holds the session payload plus the registered JWT fields.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// SignedToken is a signed token string together with its absolute expiry,
// so callers can set cookie expiry without re-deriving it.
type SignedToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenPair is the result of two independent Sign calls sharing a payload.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// ParseExpiry converts a human-readable duration string of the form
// <integer><unit> (unit in s, m, h, d, w, y) into a time.Duration.
// Anything unparseable yields DefaultExpiry.
func ParseExpiry(expiresIn string) time.Duration {
	m := expiryRe.FindStringSubmatch(expiresIn)
	if m == nil {
		return DefaultExpiry
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return DefaultExpiry
	}
	return time.Duration(n*unitMillis[m[2]]) * time.Millisecond
}

// Sign encodes the payload into an HS256 JWT expiring at now + expiresIn.
func Sign(payload domain.SessionPayload, expiresIn, secret string) (SignedToken, error) {
	now := time.Now()
	expiresAt := now.Add(ParseExpiry(expiresIn))
	claims := Claims{
		UserID: payload.UserID,
		Email:  payload.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return SignedToken{}, fmt.Errorf("sign token: %w", err)
	}
	return SignedToken{Token: tokenStr, ExpiresAt: expiresAt}, nil
}

// SignPair signs the same payload twice with independent secrets and expiries.
// Separate secrets let access and refresh tokens be rotated independently.
func SignPair(payload domain.SessionPayload, accessSecret, refreshSecret, accessExpiresIn, refreshExpiresIn string) (TokenPair, error) {
	access, err := Sign(payload, accessExpiresIn, accessSecret)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := Sign(payload, refreshExpiresIn, refreshSecret)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:      access.Token,
		RefreshToken:     refresh.Token,
		AccessExpiresAt:  access.ExpiresAt,
		RefreshExpiresAt: refresh.ExpiresAt,
	}, nil
}

// Verify decodes and validates a token string against the secret.
// Any failure (bad signature, malformed, expired) yields domain.ErrInvalidToken.
func Verify(tokenStr, secret string) (domain.SessionPayload, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return domain.SessionPayload{}, domain.ErrInvalidToken
	}
	return domain.SessionPayload{UserID: claims.UserID, Email: claims.Email}, nil
}
