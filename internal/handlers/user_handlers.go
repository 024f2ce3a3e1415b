package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Werneck0live/job-portal/internal/auth"
	"github.com/Werneck0live/job-portal/internal/models"
	"github.com/Werneck0live/job-portal/internal/utils"
)

type Users interface {
	Get(ctx context.Context, id string) (*models.User, error)
	UpdateResume(ctx context.Context, userID string, data []byte) (*models.User, error)
}

type Applications interface {
	Apply(ctx context.Context, userID, jobID string) (*models.Application, error)
	ChangeStatus(ctx context.Context, companyID, applicationID, status string) (*models.Application, error)
	SetJobVisibility(ctx context.Context, companyID, jobID string) (*models.Job, error)
	UserApplications(ctx context.Context, userID string) ([]models.ApplicationView, error)
	CompanyApplicants(ctx context.Context, companyID string) ([]models.ApplicationView, error)
}

type UserHandler struct {
	Users          Users
	Apps           Applications
	MaxUploadBytes int64
	Log            *slog.Logger
}

// GET /api/users/user
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.Users.Get(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	utils.Success(w, http.StatusOK, map[string]any{"user": u})
}

// POST /api/users/apply
func (h *UserHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var dto ApplyDTO
	if err := utils.DecodeStrict(r.Body, &dto); err != nil {
		utils.BadRequest(w, utils.FormatUnknownFieldError(err))
		return
	}
	if err := validateApplyDTO(dto); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	a, err := h.Apps.Apply(r.Context(), auth.UserID(r.Context()), dto.JobID)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	utils.Success(w, http.StatusCreated, map[string]any{"message": "Applied Successfully", "application": a})
}

// GET /api/users/applications
func (h *UserHandler) Applications(w http.ResponseWriter, r *http.Request) {
	list, err := h.Apps.UserApplications(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	utils.Success(w, http.StatusOK, map[string]any{"applications": list})
}

// POST /api/users/update-resume (multipart, campo "resume")
func (h *UserHandler) UpdateResume(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(w, r, h.MaxUploadBytes); err != nil {
		utils.BadRequest(w, "invalid multipart form")
		return
	}
	data, err := readFormFile(r, "resume", h.MaxUploadBytes)
	if err != nil {
		utils.BadRequest(w, err.Error())
		return
	}
	if len(data) == 0 {
		utils.BadRequest(w, "resume file is required")
		return
	}

	u, err := h.Users.UpdateResume(r.Context(), auth.UserID(r.Context()), data)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	utils.Success(w, http.StatusOK, map[string]any{"message": "Resume Updated", "user": u})
}
