package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Werneck0live/job-portal/internal/webhook"
)

func TestWebhook_Responses(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"ok", nil, http.StatusOK},
		{"missing_headers", webhook.ErrMissingHeaders, http.StatusBadRequest},
		{"bad_signature", fmt.Errorf("%w: no matching signature", webhook.ErrVerification), http.StatusBadRequest},
		{"bad_payload", fmt.Errorf("%w: /data/id required", webhook.ErrInvalidPayload), http.StatusBadRequest},
		{"store_down", errors.New("mongo down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotBody string
			pm := &processorMock{
				HandleFn: func(_ context.Context, payload []byte, h http.Header) (string, error) {
					gotBody = string(payload)
					if h.Get("svix-id") != "msg_1" {
						t.Fatalf("headers not forwarded: %v", h)
					}
					return "user.created", tc.err
				},
			}
			req := httptest.NewRequest(http.MethodPost, "/webhooks", strings.NewReader(`{"type":"user.created"}`))
			req.Header.Set("svix-id", "msg_1")
			rr, body := do(t, newTestRouter(Deps{Webhooks: pm}), req)

			if rr.Code != tc.status {
				t.Fatalf("status = %d; want %d", rr.Code, tc.status)
			}
			if gotBody != `{"type":"user.created"}` {
				t.Fatalf("raw body must reach the verifier untouched: %q", gotBody)
			}
			if tc.status == http.StatusOK && len(body) != 0 {
				t.Fatalf("want {} got %v", body)
			}
			if tc.status == http.StatusInternalServerError && body["message"] != "Error in webhook handler" {
				t.Fatalf("body = %v", body)
			}
		})
	}
}

func TestMiddleware_Recover(t *testing.T) {
	h := Recover(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	rr, body := do(t, h, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusInternalServerError || body["message"] != msgInternal {
		t.Fatalf("recover: %d %v", rr.Code, body)
	}
}

func TestMiddleware_RecoverAfterHeadersSent(t *testing.T) {
	h := Recover(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("partial"))
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusAccepted || rr.Body.String() != "partial" {
		t.Fatalf("recover rewrote a sent response: %d %q", rr.Code, rr.Body.String())
	}
}

func TestMiddleware_LogUsesInjectedLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil)).With("cmp", "http")
	h := LogMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/job/list", nil))

	out := buf.String()
	for _, want := range []string{`"msg":"http_request"`, `"cmp":"http"`, `"status":418`, `"path":"/api/job/list"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("log line missing %s: %s", want, out)
		}
	}
}

func TestMiddleware_CORSPreflight(t *testing.T) {
	h := newTestRouter(Deps{Jobs: &jobsMock{}})
	req := httptest.NewRequest(http.MethodOptions, "/api/company/login", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d", rr.Code)
	}
	if !strings.Contains(rr.Header().Get("Access-Control-Allow-Headers"), "token") {
		t.Fatalf("allow headers = %q", rr.Header().Get("Access-Control-Allow-Headers"))
	}
}

func TestMiddleware_TimeoutSetsDeadline(t *testing.T) {
	var has bool
	h := Timeout(50*time.Millisecond)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		_, has = r.Context().Deadline()
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !has {
		t.Fatal("want request deadline")
	}
}

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }
