package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/Werneck0live/job-portal/internal/utils"
)

type ctxKey string

const (
	ctxCompanyID ctxKey = "company_id"
	ctxUserID    ctxKey = "user_id"
)

func WithCompanyID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxCompanyID, id)
}

func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxUserID, id)
}

func CompanyID(ctx context.Context) string {
	id, _ := ctx.Value(ctxCompanyID).(string)
	return id
}

func UserID(ctx context.Context) string {
	id, _ := ctx.Value(ctxUserID).(string)
	return id
}

// TokenFromRequest aceita o header "token" (clientes antigos), Authorization
// Bearer ou, para upgrades de websocket, ?token=.
func TokenFromRequest(r *http.Request) string {
	if t := strings.TrimSpace(r.Header.Get("token")); t != "" {
		return t
	}
	if h := r.Header.Get("Authorization"); len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return r.URL.Query().Get("token")
}

// RequireCompany exige um token de empresa válido e injeta o id no contexto.
func (t *Tokens) RequireCompany(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := TokenFromRequest(r)
		if raw == "" {
			utils.Fail(w, http.StatusUnauthorized, "Not authorized, Login Again")
			return
		}
		id, err := t.ParseCompany(raw)
		if err != nil {
			utils.Fail(w, http.StatusUnauthorized, "Not authorized, Login Again")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithCompanyID(r.Context(), id)))
	})
}

// RequireUser exige um token do provedor de identidade.
func (t *Tokens) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := t.ParseIdentity(TokenFromRequest(r))
		if err != nil {
			utils.Fail(w, http.StatusUnauthorized, "Not authorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
	})
}
