package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("password stored in clear text")
	}
	if !CheckPassword(hash, "s3cret") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("wrong password accepted")
	}
}

func TestCompanyToken(t *testing.T) {
	tk := NewTokens("secret", "", time.Hour)

	raw, err := tk.IssueCompany("c1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	id, err := tk.ParseCompany(raw)
	if err != nil || id != "c1" {
		t.Fatalf("parse: id=%q err=%v", id, err)
	}

	other := NewTokens("another", "", time.Hour)
	if _, err := other.ParseCompany(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("foreign secret: want ErrInvalidToken got %v", err)
	}
}

func TestCompanyToken_Expired(t *testing.T) {
	tk := NewTokens("secret", "", time.Minute)
	tk.now = func() time.Time { return time.Now().Add(-time.Hour) }

	raw, err := tk.IssueCompany("c1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := tk.ParseCompany(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token accepted: %v", err)
	}
}

func identityToken(t *testing.T, secret, sub string) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return raw
}

func TestParseIdentity(t *testing.T) {
	tk := NewTokens("secret", "idp", time.Hour)

	id, err := tk.ParseIdentity(identityToken(t, "idp", "user_1"))
	if err != nil || id != "user_1" {
		t.Fatalf("parse: id=%q err=%v", id, err)
	}
	if _, err := tk.ParseIdentity(identityToken(t, "idp", "")); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("missing sub accepted: %v", err)
	}

	unset := NewTokens("secret", "", time.Hour)
	if _, err := unset.ParseIdentity(identityToken(t, "", "user_1")); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("identity secret unset must reject: %v", err)
	}
}

func TestTokenFromRequest(t *testing.T) {
	cases := []struct {
		name string
		set  func(r *http.Request)
		want string
	}{
		{"token header", func(r *http.Request) { r.Header.Set("token", "a") }, "a"},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer b") }, "b"},
		{"query", func(r *http.Request) { r.URL.RawQuery = "token=c" }, "c"},
		{"none", func(r *http.Request) {}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/x", nil)
			tc.set(r)
			if got := TokenFromRequest(r); got != tc.want {
				t.Fatalf("want %q got %q", tc.want, got)
			}
		})
	}
}

func TestRequireCompany(t *testing.T) {
	tk := NewTokens("secret", "", time.Hour)
	var seen string
	h := tk.RequireCompany(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CompanyID(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/company/company", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("no token: want 401 got %d", rr.Code)
	}

	raw, _ := tk.IssueCompany("c9")
	req := httptest.NewRequest(http.MethodGet, "/api/company/company", nil)
	req.Header.Set("token", raw)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || seen != "c9" {
		t.Fatalf("valid token: code=%d company=%q", rr.Code, seen)
	}
}
