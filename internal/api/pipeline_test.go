package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/boardhouse/board-service/internal/api/middleware"
	"github.com/boardhouse/board-service/internal/api/session"
	"github.com/boardhouse/board-service/internal/core/domain"
	"github.com/boardhouse/board-service/internal/infrastructure/config"
	"github.com/boardhouse/board-service/internal/token"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type memoryStore struct {
	tokens map[string]string
}

func (s *memoryStore) Save(_ context.Context, subject, tok string) error {
	s.tokens[subject] = tok
	return nil
}

func (s *memoryStore) Find(_ context.Context, subject string) (string, error) {
	tok, ok := s.tokens[subject]
	if !ok {
		return "", domain.ErrTokenNotFound
	}
	return tok, nil
}

func (s *memoryStore) Delete(_ context.Context, subject string) error {
	delete(s.tokens, subject)
	return nil
}

type memoryResolver struct {
	users map[string]domain.Identity
}

func (r *memoryResolver) Resolve(_ context.Context, subject string) (*domain.Identity, error) {
	identity, ok := r.users[subject]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &identity, nil
}

// newPipelineServer wires the ordered auth pipeline in front of one public
// and one protected route, the way NewRouter does.
func newPipelineServer(t *testing.T, codec *token.Codec, store *memoryStore, resolver *memoryResolver) *echo.Echo {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())
	e.Use(AuthPipeline(codec, store, resolver, session.NewCarrier(false), nil, config.AuthConfig{FailMode: "open"}, zerolog.Nop())...)

	e.GET("/public", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/whoami", func(c echo.Context) error {
		identity, _ := middleware.IdentityFrom(c)
		return c.JSON(http.StatusOK, identity)
	}, middleware.RequireAuth())

	return e
}

// mintLoginPair issues the access/refresh pair as a login issuedAgo in the
// past would have, and stores the refresh record.
func mintLoginPair(t *testing.T, codec *token.Codec, store *memoryStore, subject, role string, issuedAgo time.Duration) (access, refresh string) {
	t.Helper()

	token.NowFunc = func() time.Time { return time.Now().Add(-issuedAgo) }
	defer func() { token.NowFunc = time.Now }()

	access, err := codec.Mint(subject, role, domain.TokenKindAccess)
	if err != nil {
		t.Fatalf("mint access: %v", err)
	}
	refresh, err = codec.Mint(subject, role, domain.TokenKindRefresh)
	if err != nil {
		t.Fatalf("mint refresh: %v", err)
	}
	if err := store.Save(context.Background(), subject, refresh); err != nil {
		t.Fatalf("store refresh: %v", err)
	}
	return access, refresh
}

func doRequest(e *echo.Echo, path, access, refresh string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if access != "" {
		req.AddCookie(&http.Cookie{Name: session.AccessCookie, Value: access})
	}
	if refresh != "" {
		req.AddCookie(&http.Cookie{Name: session.RefreshCookie, Value: refresh})
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// The renewal stage must complete before the access stage observes the
// token: a request whose access token expired an hour ago succeeds in a
// single round trip because the pipeline renews in-flight.
func TestPipeline_ExpiredAccessRenewedInSingleRequest(t *testing.T) {
	codec, err := token.NewCodec(testSecret, time.Hour, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	store := &memoryStore{tokens: make(map[string]string)}
	resolver := &memoryResolver{users: map[string]domain.Identity{
		"alice": {Subject: "alice", Role: domain.RoleUser},
	}}
	e := newPipelineServer(t, codec, store, resolver)

	// Login two hours ago: access (1h TTL) expired, refresh (7d) still valid.
	access, refresh := mintLoginPair(t, codec, store, "alice", domain.RoleUser, 2*time.Hour)

	rec := doRequest(e, "/whoami", access, refresh)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d body=%s, want 200", rec.Code, rec.Body.String())
	}

	var identity domain.Identity
	if err := json.Unmarshal(rec.Body.Bytes(), &identity); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if identity.Subject != "alice" || identity.Role != domain.RoleUser {
		t.Fatalf("identity = %+v", identity)
	}

	// The client's next request already carries a fresh access token.
	renewed := ""
	for _, raw := range rec.Header().Values("Set-Cookie") {
		if strings.HasPrefix(raw, session.AccessCookie+"=") {
			renewed = strings.TrimPrefix(strings.SplitN(raw, ";", 2)[0], session.AccessCookie+"=")
		}
	}
	if renewed == "" {
		t.Fatalf("no renewed access cookie in response")
	}
	if _, err := codec.Decode(renewed); err != nil {
		t.Fatalf("renewed token invalid: %v", err)
	}
}

// A second login overwrites the stored refresh record; the first session's
// refresh token no longer renews anything.
func TestPipeline_SupersededSessionCannotRenew(t *testing.T) {
	codec, err := token.NewCodec(testSecret, time.Hour, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	store := &memoryStore{tokens: make(map[string]string)}
	resolver := &memoryResolver{users: map[string]domain.Identity{
		"alice": {Subject: "alice", Role: domain.RoleUser},
	}}
	e := newPipelineServer(t, codec, store, resolver)

	firstAccess, firstRefresh := mintLoginPair(t, codec, store, "alice", domain.RoleUser, 2*time.Hour)
	_, secondRefresh := mintLoginPair(t, codec, store, "alice", domain.RoleUser, 0)

	if firstRefresh == secondRefresh {
		t.Fatalf("two logins produced identical refresh tokens")
	}

	rec := doRequest(e, "/whoami", firstAccess, firstRefresh)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("code = %d, want 401 for superseded session", rec.Code)
	}
	// The legitimate record is untouched.
	if store.tokens["alice"] != secondRefresh {
		t.Fatalf("stored record modified by failed renewal")
	}
}

// After revocation, renewal fails at the store lookup, and anonymous
// requests still work.
func TestPipeline_LogoutRevokesRenewal(t *testing.T) {
	codec, err := token.NewCodec(testSecret, time.Hour, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	store := &memoryStore{tokens: make(map[string]string)}
	resolver := &memoryResolver{users: map[string]domain.Identity{
		"alice": {Subject: "alice", Role: domain.RoleUser},
	}}
	e := newPipelineServer(t, codec, store, resolver)

	access, refresh := mintLoginPair(t, codec, store, "alice", domain.RoleUser, 2*time.Hour)

	if err := store.Delete(context.Background(), "alice"); err != nil {
		t.Fatalf("delete record: %v", err)
	}

	rec := doRequest(e, "/whoami", access, refresh)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("code = %d, want 401 after revocation", rec.Code)
	}

	// No credentials at all: anonymous browsing proceeds without error.
	rec = doRequest(e, "/public", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200 for anonymous public request", rec.Code)
	}
}
