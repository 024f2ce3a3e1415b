package utils

/*

go test -v ./internal/utils -count=1

*/

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNormalizeEmail(t *testing.T) {
	cases := []struct{ in, want string }{
		{"  HR@Acme.IO ", "hr@acme.io"},
		{"a@b.co", "a@b.co"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeEmail(tc.in); got != tc.want {
			t.Fatalf("in=%q want=%q got=%q", tc.in, tc.want, got)
		}
	}
}

func TestValidEmail(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"hr@acme.io", true},
		{"first.last@sub.example.com", true},
		{"no-at-sign", false},
		{"Ana <ana@acme.io>", false},
		{"ana@localhost", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidEmail(tc.in); got != tc.want {
			t.Fatalf("in=%q want=%v got=%v", tc.in, tc.want, got)
		}
	}
}

func TestEnvelope(t *testing.T) {
	rr := httptest.NewRecorder()
	Success(rr, http.StatusCreated, map[string]any{"job": map[string]string{"id": "j1"}})
	if rr.Code != http.StatusCreated {
		t.Fatalf("status: %d", rr.Code)
	}
	var ok map[string]any
	_ = json.Unmarshal(rr.Body.Bytes(), &ok)
	if ok["success"] != true || ok["job"] == nil {
		t.Fatalf("success body: %s", rr.Body.String())
	}

	rr = httptest.NewRecorder()
	Fail(rr, http.StatusConflict, "Already Applied")
	var bad map[string]any
	_ = json.Unmarshal(rr.Body.Bytes(), &bad)
	if rr.Code != http.StatusConflict || bad["success"] != false || bad["message"] != "Already Applied" {
		t.Fatalf("fail body: %d %s", rr.Code, rr.Body.String())
	}
}

func TestDecodeStrict(t *testing.T) {
	var dst struct {
		ID string `json:"id"`
	}
	if err := DecodeStrict(strings.NewReader(`{"id":"a"}`), &dst); err != nil || dst.ID != "a" {
		t.Fatalf("valid body: %v", err)
	}
	if err := DecodeStrict(strings.NewReader(`{"id":"a","x":1}`), &dst); err == nil {
		t.Fatal("unknown field accepted")
	}
	if err := DecodeStrict(strings.NewReader(`{"id":"a"}{"id":"b"}`), &dst); err == nil {
		t.Fatal("trailing content accepted")
	}
	if msg := FormatUnknownFieldError(DecodeStrict(strings.NewReader(""), &dst)); msg != "request body is empty" {
		t.Fatalf("empty body message: %q", msg)
	}
}
