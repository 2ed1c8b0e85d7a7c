package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func newContext(t *testing.T, cookies ...*http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func responseCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestSet_CookieAttributes(t *testing.T) {
	ctx, rec := newContext(t)

	NewCarrier(true).Set(ctx, AccessCookie, "tok", time.Hour)

	ck := responseCookie(t, rec, AccessCookie)
	if ck.Value != "tok" {
		t.Fatalf("value = %q", ck.Value)
	}
	if !ck.HttpOnly {
		t.Fatalf("cookie is script-accessible")
	}
	if !ck.Secure {
		t.Fatalf("Secure not set despite secure carrier")
	}
	if ck.Path != "/" {
		t.Fatalf("path = %q, want /", ck.Path)
	}
	if ck.MaxAge != 3600 {
		t.Fatalf("MaxAge = %d, want 3600", ck.MaxAge)
	}
	if ck.SameSite != http.SameSiteLaxMode {
		t.Fatalf("SameSite = %v, want Lax", ck.SameSite)
	}
}

func TestRead(t *testing.T) {
	ctx, _ := newContext(t, &http.Cookie{Name: RefreshCookie, Value: "tok"})

	carrier := NewCarrier(false)
	if got := carrier.Read(ctx, RefreshCookie); got != "tok" {
		t.Fatalf("read = %q, want tok", got)
	}
	if got := carrier.Read(ctx, AccessCookie); got != "" {
		t.Fatalf("read = %q for absent slot, want empty", got)
	}
}

func TestClear_OverwritesWithExpiredCookie(t *testing.T) {
	ctx, rec := newContext(t)

	NewCarrier(false).Clear(ctx, AccessCookie)

	ck := responseCookie(t, rec, AccessCookie)
	if ck.Value != "" {
		t.Fatalf("value = %q, want empty", ck.Value)
	}
	if ck.MaxAge >= 0 {
		t.Fatalf("MaxAge = %d, want negative", ck.MaxAge)
	}
	if !ck.Expires.Before(time.Now()) {
		t.Fatalf("Expires = %v, want in the past", ck.Expires)
	}
	if !ck.HttpOnly {
		t.Fatalf("deletion cookie not HttpOnly")
	}
}
