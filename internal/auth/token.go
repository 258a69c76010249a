package auth

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fivetwenty-io/ghost-client/pkg/ghost"
)

const (
	// tokenTTL is the validity window Ghost expects for admin tokens.
	tokenTTL = 5 * time.Minute

	// renewMargin renews the cached token slightly before expiry so a
	// request never leaves with a token about to lapse mid-flight.
	renewMargin = 30 * time.Second
)

// TokenSigner produces the bearer credential for administrative requests.
type TokenSigner interface {
	// Token returns a currently valid signed token, re-signing if the
	// cached one is expired, invalidated, or within the renewal margin.
	Token(ctx context.Context) (string, error)
	// Invalidate discards the cached token so the next Token call
	// re-signs. Called by the transport after a 401.
	Invalidate()
}

// AdminKeySigner signs short-lived JWTs from a Ghost admin API key. The
// cached token is the only shared mutable state; refresh is mutex-guarded
// so concurrent callers observe at most one re-sign per expiry event.
type AdminKeySigner struct {
	keyID    string
	secret   []byte
	audience string
	now      func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewAdminKeySigner parses an "id:secret" admin key (secret hex encoded)
// and binds the signer to the given API-version audience.
func NewAdminKeySigner(adminKey string, version ghost.Version) (*AdminKeySigner, error) {
	id, hexSecret, ok := strings.Cut(adminKey, ":")
	if !ok || id == "" || hexSecret == "" {
		return nil, ghost.ErrInvalidAdminKey
	}

	secret, err := hex.DecodeString(hexSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ghost.ErrInvalidAdminKey, err)
	}

	return &AdminKeySigner{
		keyID:    id,
		secret:   secret,
		audience: version.AdminAudience(),
		now:      time.Now,
	}, nil
}

// Token implements TokenSigner.
func (s *AdminKeySigner) Token(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.token != "" && now.Before(s.expiresAt.Add(-renewMargin)) {
		return s.token, nil
	}

	token, expiresAt, err := s.sign(now)
	if err != nil {
		return "", err
	}

	s.token = token
	s.expiresAt = expiresAt

	return token, nil
}

// Invalidate implements TokenSigner.
func (s *AdminKeySigner) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.expiresAt = time.Time{}
}

// ExpiresAt returns the cached token's expiry, zero when no token is
// cached.
func (s *AdminKeySigner) ExpiresAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.expiresAt
}

// sign is a pure function of (secret, audience, now): an HS256 JWT with
// the key id in the header and the version-tagged audience claim.
func (s *AdminKeySigner) sign(now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(tokenTTL)

	claims := jwt.MapClaims{
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
		"aud": s.audience,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = s.keyID

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing admin token: %w", err)
	}

	return signed, expiresAt, nil
}
