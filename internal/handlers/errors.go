package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Werneck0live/job-portal/internal/models"
	"github.com/Werneck0live/job-portal/internal/service"
	"github.com/Werneck0live/job-portal/internal/telemetry"
	"github.com/Werneck0live/job-portal/internal/utils"
)

const msgInternal = "internal server error"

// writeError converte erros de domínio no envelope {success:false,message}.
// Erros inesperados são logados, reportados e respondidos de forma genérica.
func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		utils.Fail(w, http.StatusBadRequest, ve.Msg)
	case errors.Is(err, service.ErrNotFound):
		utils.Fail(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrJobUnavailable):
		utils.WriteJSON(w, http.StatusGone, map[string]any{
			"success":     false,
			"unavailable": true,
			"message":     "This job is no longer available",
		})
	case errors.Is(err, service.ErrMissingResume):
		utils.Fail(w, http.StatusUnprocessableEntity, "Upload resume to apply")
	case errors.Is(err, service.ErrDuplicateApplication):
		utils.Fail(w, http.StatusConflict, "Already Applied")
	case errors.Is(err, service.ErrForbidden):
		utils.Fail(w, http.StatusForbidden, "You do not own this resource")
	case errors.Is(err, models.ErrInvalidTransition):
		utils.Fail(w, http.StatusConflict, "Application status already decided")
	case errors.Is(err, service.ErrStatusConflict):
		utils.Fail(w, http.StatusConflict, "Application status changed, reload and try again")
	case errors.Is(err, service.ErrCompanyExists):
		utils.Fail(w, http.StatusConflict, "Company already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		utils.Fail(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, service.ErrUpstream):
		telemetry.LogError(r.Context(), log, "upstream_error", err, "path", r.URL.Path)
		utils.Fail(w, http.StatusBadGateway, "upstream service unavailable, try again later")
	default:
		telemetry.LogError(r.Context(), log, "internal_error", err, "path", r.URL.Path)
		utils.Fail(w, http.StatusInternalServerError, msgInternal)
	}
}
