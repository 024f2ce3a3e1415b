package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Werneck0live/job-portal/internal/auth"
	"github.com/Werneck0live/job-portal/internal/models"
	"github.com/Werneck0live/job-portal/internal/search"
	"github.com/Werneck0live/job-portal/internal/service"
	"github.com/Werneck0live/job-portal/internal/utils"
)

type jobsMock struct {
	ListVisibleFn func(ctx context.Context) ([]models.JobWithCompany, error)
	SearchFn      func(ctx context.Context, f search.Facets, page int) (*service.SearchResult, error)
	GetFn         func(ctx context.Context, id string) (*models.JobWithCompany, error)
	RelatedFn     func(ctx context.Context, jobID, userID string) ([]models.JobWithCompany, error)
	PostFn        func(ctx context.Context, companyID string, in service.JobInput) (*models.Job, error)
	CompanyJobsFn func(ctx context.Context, companyID string) ([]models.JobWithApplicants, error)
}

func (m *jobsMock) ListVisible(ctx context.Context) ([]models.JobWithCompany, error) {
	if m.ListVisibleFn == nil {
		return nil, errors.New("ListVisibleFn not set")
	}
	return m.ListVisibleFn(ctx)
}
func (m *jobsMock) Search(ctx context.Context, f search.Facets, page int) (*service.SearchResult, error) {
	if m.SearchFn == nil {
		return nil, errors.New("SearchFn not set")
	}
	return m.SearchFn(ctx, f, page)
}
func (m *jobsMock) Get(ctx context.Context, id string) (*models.JobWithCompany, error) {
	if m.GetFn == nil {
		return nil, errors.New("GetFn not set")
	}
	return m.GetFn(ctx, id)
}
func (m *jobsMock) Related(ctx context.Context, jobID, userID string) ([]models.JobWithCompany, error) {
	if m.RelatedFn == nil {
		return nil, errors.New("RelatedFn not set")
	}
	return m.RelatedFn(ctx, jobID, userID)
}
func (m *jobsMock) Post(ctx context.Context, companyID string, in service.JobInput) (*models.Job, error) {
	if m.PostFn == nil {
		return nil, errors.New("PostFn not set")
	}
	return m.PostFn(ctx, companyID, in)
}
func (m *jobsMock) CompanyJobs(ctx context.Context, companyID string) ([]models.JobWithApplicants, error) {
	if m.CompanyJobsFn == nil {
		return nil, errors.New("CompanyJobsFn not set")
	}
	return m.CompanyJobsFn(ctx, companyID)
}

type appsMock struct {
	ApplyFn             func(ctx context.Context, userID, jobID string) (*models.Application, error)
	ChangeStatusFn      func(ctx context.Context, companyID, applicationID, status string) (*models.Application, error)
	SetJobVisibilityFn  func(ctx context.Context, companyID, jobID string) (*models.Job, error)
	UserApplicationsFn  func(ctx context.Context, userID string) ([]models.ApplicationView, error)
	CompanyApplicantsFn func(ctx context.Context, companyID string) ([]models.ApplicationView, error)
}

func (m *appsMock) Apply(ctx context.Context, userID, jobID string) (*models.Application, error) {
	if m.ApplyFn == nil {
		return nil, errors.New("ApplyFn not set")
	}
	return m.ApplyFn(ctx, userID, jobID)
}
func (m *appsMock) ChangeStatus(ctx context.Context, companyID, applicationID, status string) (*models.Application, error) {
	if m.ChangeStatusFn == nil {
		return nil, errors.New("ChangeStatusFn not set")
	}
	return m.ChangeStatusFn(ctx, companyID, applicationID, status)
}
func (m *appsMock) SetJobVisibility(ctx context.Context, companyID, jobID string) (*models.Job, error) {
	if m.SetJobVisibilityFn == nil {
		return nil, errors.New("SetJobVisibilityFn not set")
	}
	return m.SetJobVisibilityFn(ctx, companyID, jobID)
}
func (m *appsMock) UserApplications(ctx context.Context, userID string) ([]models.ApplicationView, error) {
	if m.UserApplicationsFn == nil {
		return nil, errors.New("UserApplicationsFn not set")
	}
	return m.UserApplicationsFn(ctx, userID)
}
func (m *appsMock) CompanyApplicants(ctx context.Context, companyID string) ([]models.ApplicationView, error) {
	if m.CompanyApplicantsFn == nil {
		return nil, errors.New("CompanyApplicantsFn not set")
	}
	return m.CompanyApplicantsFn(ctx, companyID)
}

type companiesMock struct {
	RegisterFn func(ctx context.Context, in service.RegisterInput) (*service.Session, error)
	LoginFn    func(ctx context.Context, email, password string) (*service.Session, error)
	GetFn      func(ctx context.Context, id string) (*models.CompanySummary, error)
}

func (m *companiesMock) Register(ctx context.Context, in service.RegisterInput) (*service.Session, error) {
	if m.RegisterFn == nil {
		return nil, errors.New("RegisterFn not set")
	}
	return m.RegisterFn(ctx, in)
}
func (m *companiesMock) Login(ctx context.Context, email, password string) (*service.Session, error) {
	if m.LoginFn == nil {
		return nil, errors.New("LoginFn not set")
	}
	return m.LoginFn(ctx, email, password)
}
func (m *companiesMock) Get(ctx context.Context, id string) (*models.CompanySummary, error) {
	if m.GetFn == nil {
		return nil, errors.New("GetFn not set")
	}
	return m.GetFn(ctx, id)
}

type processorMock struct {
	HandleFn func(ctx context.Context, payload []byte, headers http.Header) (string, error)
}

func (m *processorMock) Handle(ctx context.Context, payload []byte, headers http.Header) (string, error) {
	if m.HandleFn == nil {
		return "", errors.New("HandleFn not set")
	}
	return m.HandleFn(ctx, payload, headers)
}

type usersMock struct {
	GetFn          func(ctx context.Context, id string) (*models.User, error)
	UpdateResumeFn func(ctx context.Context, userID string, data []byte) (*models.User, error)
}

func (m *usersMock) Get(ctx context.Context, id string) (*models.User, error) {
	if m.GetFn == nil {
		return nil, errors.New("GetFn not set")
	}
	return m.GetFn(ctx, id)
}
func (m *usersMock) UpdateResume(ctx context.Context, userID string, data []byte) (*models.User, error) {
	if m.UpdateResumeFn == nil {
		return nil, errors.New("UpdateResumeFn not set")
	}
	return m.UpdateResumeFn(ctx, userID, data)
}

// guardMock aceita "company-<id>" e "user-<id>" como tokens.
type guardMock struct{}

func (guardMock) ParseIdentity(raw string) (string, error) {
	if id, ok := strings.CutPrefix(raw, "user-"); ok {
		return id, nil
	}
	return "", errors.New("bad token")
}

func (guardMock) RequireCompany(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := strings.CutPrefix(auth.TokenFromRequest(r), "company-")
		if !ok {
			utils.Fail(w, http.StatusUnauthorized, "Not authorized, Login Again")
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithCompanyID(r.Context(), id)))
	})
}

func (g guardMock) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := g.ParseIdentity(auth.TokenFromRequest(r))
		if err != nil {
			utils.Fail(w, http.StatusUnauthorized, "Not authorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), id)))
	})
}
