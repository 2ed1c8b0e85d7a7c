// Package token implements the signed credential codec used by the auth
// pipeline. Tokens are HS256 JWTs carrying subject, role, issued-at and
// expiry; the signature covers both timestamps, so tampering with expiry
// surfaces as a malformed token, never as a silently accepted one.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/boardhouse/board-service/internal/core/domain"
)

// NowFunc returns the current time. It can be overridden in tests.
var NowFunc = time.Now

// minSecretBytes is the minimum HMAC key length (256 bits).
const minSecretBytes = 32

const (
	defaultAccessTTL  = time.Hour
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// Claims is the JWT payload carried by both token kinds.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Codec mints and decodes signed credentials. Pure computation: no token is
// ever stored by the codec itself.
type Codec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewCodec builds a Codec. The secret must be at least 256 bits; TTLs
// default to 1h (access) and 7d (refresh) when non-positive.
func NewCodec(secret string, accessTTL, refreshTTL time.Duration) (*Codec, error) {
	if len(secret) < minSecretBytes {
		return nil, errors.New("token: signing secret must be at least 32 bytes")
	}
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &Codec{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}, nil
}

// AccessTTL returns the lifetime applied to access tokens.
func (c *Codec) AccessTTL() time.Duration { return c.accessTTL }

// RefreshTTL returns the lifetime applied to refresh tokens.
func (c *Codec) RefreshTTL() time.Duration { return c.refreshTTL }

// Mint builds and signs a credential for subject with the TTL selected by
// kind. Timestamps are absolute so Decode is stateless and reproducible.
func (c *Codec) Mint(subject, role string, kind domain.TokenKind) (string, error) {
	ttl := c.accessTTL
	if kind == domain.TokenKindRefresh {
		ttl = c.refreshTTL
	}

	// A random jti makes every minted token unique even within the same
	// second, so a fresh login always supersedes the stored refresh record
	// with a distinct string.
	jti := make([]byte, 16)
	if _, err := rand.Read(jti); err != nil {
		return "", err
	}

	now := NowFunc()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        hex.EncodeToString(jti),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode verifies signature, structure and expiry. It fails with
// domain.ErrTokenExpired when only the expiry has lapsed and with
// domain.ErrTokenMalformed for every other failure — callers branch on
// expiry specifically to trigger renewal.
func (c *Codec) Decode(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return c.secret, nil
		},
		jwt.WithTimeFunc(func() time.Time { return NowFunc() }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenMalformed
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, domain.ErrTokenMalformed
	}
	return claims, nil
}

// SubjectOf is a convenience projection over Decode.
func (c *Codec) SubjectOf(tokenStr string) (string, error) {
	claims, err := c.Decode(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// RoleOf is a convenience projection over Decode.
func (c *Codec) RoleOf(tokenStr string) (string, error) {
	claims, err := c.Decode(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Role, nil
}
