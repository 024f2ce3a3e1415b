package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Werneck0live/job-portal/internal/auth"
	"github.com/Werneck0live/job-portal/internal/models"
	"github.com/Werneck0live/job-portal/internal/search"
	"github.com/Werneck0live/job-portal/internal/service"
	"github.com/Werneck0live/job-portal/internal/utils"
)

type JobQueries interface {
	ListVisible(ctx context.Context) ([]models.JobWithCompany, error)
	Search(ctx context.Context, f search.Facets, page int) (*service.SearchResult, error)
	Get(ctx context.Context, id string) (*models.JobWithCompany, error)
	Related(ctx context.Context, jobID, userID string) ([]models.JobWithCompany, error)
}

// IdentityParser resolve o usuário de um token opcional.
type IdentityParser interface {
	ParseIdentity(raw string) (string, error)
}

type JobHandler struct {
	Jobs     JobQueries
	Identity IdentityParser
	Log      *slog.Logger
}

// facetsFromQuery lê title, location, category (repetível), loc (repetível) e page.
func facetsFromQuery(q url.Values) (search.Facets, int, bool) {
	f := search.Facets{
		Title:      q.Get("title"),
		Location:   q.Get("location"),
		Categories: q["category"],
		Locations:  q["loc"],
	}
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	return f, page, f.Active() || q.Has("page")
}

// GET /api/jobs
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	f, page, filtered := facetsFromQuery(r.URL.Query())
	if !filtered {
		jobs, err := h.Jobs.ListVisible(r.Context())
		if err != nil {
			writeError(w, r, h.Log, err)
			return
		}
		utils.Success(w, http.StatusOK, map[string]any{"jobs": jobs})
		return
	}

	res, err := h.Jobs.Search(r.Context(), f, page)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	utils.Success(w, http.StatusOK, map[string]any{
		"jobs":  res.Jobs,
		"page":  res.Page,
		"pages": res.Pages,
		"total": res.Total,
	})
}

// GET /api/jobs/{id}
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	job, err := h.Jobs.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	utils.Success(w, http.StatusOK, map[string]any{"job": job})
}

// GET /api/jobs/{id}/related; com token de usuário exclui vagas já aplicadas.
func (h *JobHandler) Related(w http.ResponseWriter, r *http.Request) {
	var userID string
	if raw := auth.TokenFromRequest(r); raw != "" && h.Identity != nil {
		userID, _ = h.Identity.ParseIdentity(raw)
	}
	jobs, err := h.Jobs.Related(r.Context(), mux.Vars(r)["id"], userID)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	utils.Success(w, http.StatusOK, map[string]any{"jobs": jobs})
}
