// Package auth issues and verifies the bearer tokens that authenticate
// ForoHub requests.
//
// Tokens are HS256 JWTs carrying the issuer, the username as subject, the
// numeric user id in the "id" claim and an expiration. Each token is signed
// with a key derived from the subject's credential state (by default the
// stored password hash), so changing a password makes every token issued
// before it unverifiable.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/forohub/internal/common"
	"github.com/dmitrijs2005/forohub/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Reasons a token fails verification. Every error returned for them also
// matches common.ErrInvalidToken.
var (
	ErrTokenMissing      = errors.New("token missing")
	ErrTokenMalformed    = errors.New("token malformed")
	ErrSubjectMissing    = errors.New("subject not found")
	ErrUnknownSubject    = errors.New("user not found for subject")
	ErrSignatureMismatch = errors.New("signature mismatch")
	ErrIssuerMismatch    = errors.New("issuer mismatch")
	ErrTokenExpired      = errors.New("token expired")
)

var errEmptyKey = errors.New("empty signing key")

// Claims is the token payload.
type Claims struct {
	UserID int64 `json:"id"`
	jwt.RegisteredClaims
}

// KeyFunc derives the HMAC key for a user's tokens from the user's current
// credential state.
type KeyFunc func(user *models.User) ([]byte, error)

// PasswordHashKey uses the stored password hash as the signing key.
func PasswordHashKey(user *models.User) ([]byte, error) {
	if user == nil || user.PasswordHash == "" {
		return nil, errEmptyKey
	}
	return []byte(user.PasswordHash), nil
}

// UserFinder is the part of the credential store the token service reads.
type UserFinder interface {
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
}

// TokenService issues and verifies tokens. It keeps no per-request state and
// is safe for concurrent use.
type TokenService struct {
	users     UserFinder
	issuer    string
	validity  time.Duration
	zone      *time.Location
	localZone *time.Location
	keyFunc   KeyFunc
	now       func() time.Time
}

type Option func(*TokenService)

// WithClock replaces time.Now for both issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(s *TokenService) { s.now = now }
}

// WithLocalZone sets the zone whose wall clock is read when computing
// expiration. Defaults to time.Local.
func WithLocalZone(loc *time.Location) Option {
	return func(s *TokenService) { s.localZone = loc }
}

func WithKeyFunc(f KeyFunc) Option {
	return func(s *TokenService) { s.keyFunc = f }
}

// NewTokenService creates a TokenService. zoneOffset is the fixed UTC
// offset used to interpret the issue wall clock (see ExpiresAt).
func NewTokenService(users UserFinder, issuer string, validity, zoneOffset time.Duration, opts ...Option) *TokenService {
	s := &TokenService{
		users:     users,
		issuer:    issuer,
		validity:  validity,
		zone:      time.FixedZone(zoneName(zoneOffset), int(zoneOffset.Seconds())),
		localZone: time.Local,
		keyFunc:   PasswordHashKey,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExpiresAt returns the expiration for a token issued at now: the wall clock
// of now in the local zone, read as if it were in the fixed zone, plus the
// validity. With the defaults (UTC-5, two hours) a server whose local zone
// is UTC hands out tokens that live seven hours.
func (s *TokenService) ExpiresAt(now time.Time) time.Time {
	w := now.In(s.localZone)
	fixed := time.Date(w.Year(), w.Month(), w.Day(), w.Hour(), w.Minute(), w.Second(), w.Nanosecond(), s.zone)
	return fixed.Add(s.validity)
}

// Issue signs a token for user. Failures wrap common.ErrTokenCreation.
func (s *TokenService) Issue(user *models.User) (string, error) {
	key, err := s.keyFunc(user)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrTokenCreation, err)
	}

	claims := Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   user.UserName,
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt(s.now())),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrTokenCreation, err)
	}

	return signed, nil
}

// ResolveIdentity verifies token and returns its subject (the username).
//
// The subject is read from the unverified payload first so the user, and
// with it the verification key, can be looked up. Verification failures
// wrap common.ErrInvalidToken and one of the Err* reasons above.
// Credential-store errors other than not-found are returned as they are.
func (s *TokenService) ResolveIdentity(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", invalid(ErrTokenMissing, nil)
	}

	unverified := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, unverified); err != nil {
		return "", invalid(ErrTokenMalformed, err)
	}
	if unverified.Subject == "" {
		return "", invalid(ErrSubjectMissing, nil)
	}

	user, err := s.users.GetUserByLogin(ctx, unverified.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", invalid(ErrUnknownSubject, nil)
		}
		return "", fmt.Errorf("credential lookup: %w", err)
	}

	key, err := s.keyFunc(user)
	if err != nil {
		return "", invalid(ErrSignatureMismatch, err)
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	verified := &Claims{}
	if _, err := parser.ParseWithClaims(token, verified, func(*jwt.Token) (any, error) {
		return key, nil
	}); err != nil {
		return "", invalid(classify(err), err)
	}

	return verified.Subject, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrSignatureMismatch
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return ErrIssuerMismatch
	default:
		return ErrTokenMalformed
	}
}

var reasonLabels = []struct {
	err   error
	label string
}{
	{ErrTokenMissing, "missing"},
	{ErrTokenMalformed, "malformed"},
	{ErrSubjectMissing, "no_subject"},
	{ErrUnknownSubject, "unknown_subject"},
	{ErrSignatureMismatch, "signature"},
	{ErrIssuerMismatch, "issuer"},
	{ErrTokenExpired, "expired"},
}

// Reason returns a short label for the verification failure in err, or
// "other" when err carries none of the Err* reasons.
func Reason(err error) string {
	for _, r := range reasonLabels {
		if errors.Is(err, r.err) {
			return r.label
		}
	}
	return "other"
}

func invalid(reason, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %w", common.ErrInvalidToken, reason)
	}
	return fmt.Errorf("%w: %w: %w", common.ErrInvalidToken, reason, cause)
}

func zoneName(offset time.Duration) string {
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, int(offset.Hours()), int(offset.Minutes())%60)
}
