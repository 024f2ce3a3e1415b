package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Werneck0live/job-portal/internal/auth"
	"github.com/Werneck0live/job-portal/internal/models"
	"github.com/Werneck0live/job-portal/internal/service"
	"github.com/Werneck0live/job-portal/internal/utils"
)

type Companies interface {
	Register(ctx context.Context, in service.RegisterInput) (*service.Session, error)
	Login(ctx context.Context, email, password string) (*service.Session, error)
	Get(ctx context.Context, id string) (*models.CompanySummary, error)
}

type CompanyJobs interface {
	Post(ctx context.Context, companyID string, in service.JobInput) (*models.Job, error)
	CompanyJobs(ctx context.Context, companyID string) ([]models.JobWithApplicants, error)
}

type CompanyHandler struct {
	Companies      Companies
	Jobs           CompanyJobs
	Apps           Applications
	MaxUploadBytes int64
	Log            *slog.Logger
}

func writeSession(w http.ResponseWriter, code int, s *service.Session) {
	utils.Success(w, code, map[string]any{"company": s.Company, "token": s.Token})
}

// POST /api/company/register (multipart: name, email, password, image)
func (h *CompanyHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(w, r, h.MaxUploadBytes); err != nil {
		utils.BadRequest(w, "invalid multipart form")
		return
	}
	img, err := readFormFile(r, "image", h.MaxUploadBytes)
	if err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	sess, err := h.Companies.Register(r.Context(), service.RegisterInput{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
		Image:    img,
	})
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeSession(w, http.StatusCreated, sess)
}

// POST /api/company/login
func (h *CompanyHandler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := utils.DecodeStrict(r.Body, &dto); err != nil {
		utils.BadRequest(w, utils.FormatUnknownFieldError(err))
		return
	}
	if err := validateLoginDTO(dto); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}
	sess, err := h.Companies.Login(r.Context(), dto.Email, dto.Password)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeSession(w, http.StatusOK, sess)
}

// GET /api/company/company
func (h *CompanyHandler) Me(w http.ResponseWriter, r *http.Request) {
	c, err := h.Companies.Get(r.Context(), auth.CompanyID(r.Context()))
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	utils.Success(w, http.StatusOK, map[string]any{"company": c})
}

// POST /api/company/post-job
func (h *CompanyHandler) PostJob(w http.ResponseWriter, r *http.Request) {
	var dto PostJobDTO
	if err := utils.DecodeStrict(r.Body, &dto); err != nil {
		utils.BadRequest(w, utils.FormatUnknownFieldError(err))
		return
	}
	job, err := h.Jobs.Post(r.Context(), auth.CompanyID(r.Context()), service.JobInput(dto))
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	utils.Success(w, http.StatusCreated, map[string]any{"newJob": job, "message": "Added Job"})
}

// GET /api/company/list-jobs
func (h *CompanyHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Jobs.CompanyJobs(r.Context(), auth.CompanyID(r.Context()))
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	utils.Success(w, http.StatusOK, map[string]any{"jobsData": jobs})
}

// GET /api/company/applicants
func (h *CompanyHandler) Applicants(w http.ResponseWriter, r *http.Request) {
	list, err := h.Apps.CompanyApplicants(r.Context(), auth.CompanyID(r.Context()))
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	utils.Success(w, http.StatusOK, map[string]any{"applications": list})
}

// POST /api/company/change-status
func (h *CompanyHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	var dto ChangeStatusDTO
	if err := utils.DecodeStrict(r.Body, &dto); err != nil {
		utils.BadRequest(w, utils.FormatUnknownFieldError(err))
		return
	}
	if err := validateChangeStatusDTO(dto); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}
	a, err := h.Apps.ChangeStatus(r.Context(), auth.CompanyID(r.Context()), dto.ID, dto.Status)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	utils.Success(w, http.StatusOK, map[string]any{"message": "Status Changed", "application": a})
}

// POST /api/company/change-visibility
func (h *CompanyHandler) ChangeVisibility(w http.ResponseWriter, r *http.Request) {
	var dto ChangeVisibilityDTO
	if err := utils.DecodeStrict(r.Body, &dto); err != nil {
		utils.BadRequest(w, utils.FormatUnknownFieldError(err))
		return
	}
	if err := validateChangeVisibilityDTO(dto); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}
	job, err := h.Apps.SetJobVisibility(r.Context(), auth.CompanyID(r.Context()), dto.ID)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	utils.Success(w, http.StatusOK, map[string]any{"job": job})
}
