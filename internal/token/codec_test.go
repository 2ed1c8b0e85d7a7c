package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/boardhouse/board-service/internal/core/domain"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec(testSecret, time.Hour, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	return c
}

func TestNewCodec_RejectsShortSecret(t *testing.T) {
	if _, err := NewCodec("too-short", time.Hour, time.Hour); err == nil {
		t.Fatalf("expected error for short secret")
	}
}

func TestMintDecode_RoundTrip(t *testing.T) {
	c := newTestCodec(t)

	tok, err := c.Mint("alice", domain.RoleUser, domain.TokenKindAccess)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := c.Decode(tok)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claims.Subject != "alice" {
		t.Fatalf("subject = %q, want alice", claims.Subject)
	}
	if claims.Role != domain.RoleUser {
		t.Fatalf("role = %q, want %q", claims.Role, domain.RoleUser)
	}
}

func TestMint_KindSelectsTTL(t *testing.T) {
	c := newTestCodec(t)

	access, err := c.Mint("alice", domain.RoleUser, domain.TokenKindAccess)
	if err != nil {
		t.Fatalf("mint access: %v", err)
	}
	refresh, err := c.Mint("alice", domain.RoleUser, domain.TokenKindRefresh)
	if err != nil {
		t.Fatalf("mint refresh: %v", err)
	}

	ac, err := c.Decode(access)
	if err != nil {
		t.Fatalf("decode access: %v", err)
	}
	rc, err := c.Decode(refresh)
	if err != nil {
		t.Fatalf("decode refresh: %v", err)
	}

	if !rc.ExpiresAt.After(ac.ExpiresAt.Time) {
		t.Fatalf("refresh expiry %v not after access expiry %v", rc.ExpiresAt, ac.ExpiresAt)
	}
}

func TestMint_UniqueTokens(t *testing.T) {
	c := newTestCodec(t)

	first, err := c.Mint("alice", domain.RoleUser, domain.TokenKindRefresh)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	second, err := c.Mint("alice", domain.RoleUser, domain.TokenKindRefresh)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if first == second {
		t.Fatalf("two mints produced identical tokens")
	}
}

func TestDecode_ExpiredIsExpiredNotMalformed(t *testing.T) {
	c := newTestCodec(t)

	NowFunc = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := c.Mint("alice", domain.RoleUser, domain.TokenKindAccess)
	NowFunc = time.Now
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	_, err = c.Decode(tok)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("err = %v, want ErrTokenExpired", err)
	}
}

func TestDecode_TamperedIsMalformed(t *testing.T) {
	c := newTestCodec(t)

	tok, err := c.Mint("alice", domain.RoleUser, domain.TokenKindAccess)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	// Flip one byte in the payload segment; the signature no longer covers
	// the altered content.
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape")
	}
	payload := []byte(parts[1])
	mid := len(payload) / 2
	if payload[mid] == 'A' {
		payload[mid] = 'B'
	} else {
		payload[mid] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = c.Decode(tampered)
	if !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("err = %v, want ErrTokenMalformed", err)
	}
}

func TestDecode_WrongSecretIsMalformed(t *testing.T) {
	c := newTestCodec(t)
	other, err := NewCodec("ffffffffffffffffffffffffffffffff", time.Hour, time.Hour)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	tok, err := other.Mint("alice", domain.RoleUser, domain.TokenKindAccess)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := c.Decode(tok); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("err = %v, want ErrTokenMalformed", err)
	}
}

func TestDecode_GarbageIsMalformed(t *testing.T) {
	c := newTestCodec(t)
	if _, err := c.Decode("not-a-token"); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("err = %v, want ErrTokenMalformed", err)
	}
}

func TestProjections(t *testing.T) {
	c := newTestCodec(t)

	tok, err := c.Mint("bob", domain.RoleAdmin, domain.TokenKindAccess)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	subject, err := c.SubjectOf(tok)
	if err != nil || subject != "bob" {
		t.Fatalf("SubjectOf = %q, %v", subject, err)
	}
	role, err := c.RoleOf(tok)
	if err != nil || role != domain.RoleAdmin {
		t.Fatalf("RoleOf = %q, %v", role, err)
	}
}
