package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Werneck0live/job-portal/internal/models"
	"github.com/Werneck0live/job-portal/internal/repository"
	"github.com/Werneck0live/job-portal/internal/search"
)

const relatedLimit = 4

type JobService struct {
	jobs      JobStore
	companies CompanyStore
	apps      ApplicationStore
	notifier  Notifier
	log       *slog.Logger
}

func NewJobService(jobs JobStore, companies CompanyStore, apps ApplicationStore, n Notifier, log *slog.Logger) *JobService {
	return &JobService{
		jobs:      jobs,
		companies: companies,
		apps:      apps,
		notifier:  orNop(n),
		log:       orDefault(log).With("svc", "jobs"),
	}
}

// ListVisible devolve as vagas visíveis cuja empresa ainda existe e não foi
// excluída, em ordem de inserção.
func (s *JobService) ListVisible(ctx context.Context) ([]models.JobWithCompany, error) {
	jobs, err := s.jobs.ListVisible(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.CompanyID)
	}
	companies, err := s.companies.GetMany(ctx, uniq(ids))
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Company, len(companies))
	for _, c := range companies {
		byID[c.ID] = c
	}

	out := make([]models.JobWithCompany, 0, len(jobs))
	for _, j := range jobs {
		c, ok := byID[j.CompanyID]
		if !ok || c.Deleted {
			continue
		}
		out = append(out, models.JobWithCompany{Job: j, Company: c.Public()})
	}
	return out, nil
}

// Get resolve a vaga com a empresa. Empresa ausente ou excluída vira
// ErrJobUnavailable, distinto de ErrNotFound.
func (s *JobService) Get(ctx context.Context, id string) (*models.JobWithCompany, error) {
	j, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	c, err := s.companies.GetByID(ctx, j.CompanyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrJobUnavailable
		}
		return nil, err
	}
	if c.Deleted {
		return nil, ErrJobUnavailable
	}
	return &models.JobWithCompany{Job: *j, Company: c.Public()}, nil
}

type SearchResult struct {
	Jobs  []models.JobWithCompany `json:"jobs"`
	Page  int                     `json:"page"`
	Pages int                     `json:"pages"`
	Total int                     `json:"total"`
}

// Search aplica o mesmo motor de filtro do cliente sobre as vagas visíveis.
func (s *JobService) Search(ctx context.Context, f search.Facets, page int) (*SearchResult, error) {
	list, err := s.ListVisible(ctx)
	if err != nil {
		return nil, err
	}
	st := search.NewState(search.ListingFields)
	applySearch(st, list, f, page)
	return readSearch(st), nil
}

func applySearch(w search.Writer[models.JobWithCompany], list []models.JobWithCompany, f search.Facets, page int) {
	w.SetSource(list)
	w.SetFacets(f)
	w.SetPage(page)
}

func readSearch(r search.Reader[models.JobWithCompany]) *SearchResult {
	results := r.Results()
	return &SearchResult{Jobs: r.PageItems(), Page: r.Page(), Pages: r.PageCount(), Total: len(results)}
}

// Related lista até 4 outras vagas visíveis da mesma empresa, excluindo as
// que o usuário (se informado) já aplicou.
func (s *JobService) Related(ctx context.Context, jobID, userID string) ([]models.JobWithCompany, error) {
	current, err := s.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	list, err := s.ListVisible(ctx)
	if err != nil {
		return nil, err
	}

	applied := map[string]bool{}
	if userID != "" {
		apps, err := s.apps.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		for _, a := range apps {
			applied[a.JobID] = true
		}
	}

	plain := make([]models.Job, 0, len(list))
	byID := make(map[string]models.JobWithCompany, len(list))
	for _, j := range list {
		plain = append(plain, j.Job)
		byID[j.ID] = j
	}
	related := search.Related(plain, current.Job, applied, relatedLimit)
	out := make([]models.JobWithCompany, 0, len(related))
	for _, j := range related {
		out = append(out, byID[j.ID])
	}
	return out, nil
}

type JobInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Salary      int    `json:"salary"`
	Level       string `json:"level"`
	Category    string `json:"category"`
}

func (in JobInput) validate() error {
	var missing []string
	for _, f := range []struct{ name, v string }{
		{"title", in.Title},
		{"description", in.Description},
		{"location", in.Location},
		{"category", in.Category},
		{"level", in.Level},
	} {
		if strings.TrimSpace(f.v) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return invalid("missing required fields: %s", strings.Join(missing, ", "))
	}
	if in.Salary <= 0 {
		return invalid("salary must be greater than zero")
	}
	return nil
}

// Post cria uma vaga visível para a empresa.
func (s *JobService) Post(ctx context.Context, companyID string, in JobInput) (*models.Job, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	c, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if c.Deleted {
		return nil, ErrForbidden
	}

	j := &models.Job{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Location:    strings.TrimSpace(in.Location),
		Salary:      in.Salary,
		Level:       strings.TrimSpace(in.Level),
		Category:    strings.TrimSpace(in.Category),
		CompanyID:   companyID,
		Visible:     true,
	}
	if _, err := s.jobs.Create(ctx, j); err != nil {
		return nil, err
	}
	s.log.Info("job_posted", "job_id", j.ID, "company_id", companyID)
	notify(s.notifier, s.log, models.Event{
		Type:    models.EventJobPosted,
		JobID:   j.ID,
		Message: fmt.Sprintf("%s is hiring: %s", c.Name, j.Title),
	})
	return j, nil
}

// CompanyJobs lista as vagas da empresa (visíveis ou não) com o total de candidaturas.
func (s *JobService) CompanyJobs(ctx context.Context, companyID string) ([]models.JobWithApplicants, error) {
	jobs, err := s.jobs.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	counts, err := s.apps.CountByJob(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]models.JobWithApplicants, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, models.JobWithApplicants{Job: j, Applicants: counts[j.ID]})
	}
	return out, nil
}
