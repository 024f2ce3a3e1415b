package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Werneck0live/job-portal/internal/models"
	"github.com/Werneck0live/job-portal/internal/repository"
)

type ApplicationService struct {
	apps      ApplicationStore
	jobs      JobStore
	users     UserStore
	companies CompanyStore
	policy    models.TransitionPolicy
	notifier  Notifier
	log       *slog.Logger
}

func NewApplicationService(apps ApplicationStore, jobs JobStore, users UserStore, companies CompanyStore,
	policy models.TransitionPolicy, n Notifier, log *slog.Logger) *ApplicationService {
	if policy == "" {
		policy = models.PolicyStrict
	}
	return &ApplicationService{
		apps:      apps,
		jobs:      jobs,
		users:     users,
		companies: companies,
		policy:    policy,
		notifier:  orNop(n),
		log:       orDefault(log).With("svc", "applications"),
	}
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// Apply registra a candidatura como Pending. Exige currículo e rejeita o
// mesmo par (usuário, vaga) duas vezes.
func (s *ApplicationService) Apply(ctx context.Context, userID, jobID string) (*models.Application, error) {
	if jobID == "" {
		return nil, invalid("job id is required")
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if !u.HasResume() {
		return nil, ErrMissingResume
	}

	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if !j.Visible {
		return nil, ErrJobUnavailable
	}

	exists, err := s.apps.Exists(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateApplication
	}

	a := &models.Application{
		UserID:    userID,
		JobID:     jobID,
		CompanyID: j.CompanyID,
		Status:    models.StatusPending,
	}
	if _, err := s.apps.Create(ctx, a); err != nil {
		// índice único cobre a corrida entre o Exists e o insert
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateApplication
		}
		return nil, err
	}

	s.log.Info("application_created", "application_id", a.ID, "user_id", userID, "job_id", jobID)
	notify(s.notifier, s.log, models.Event{
		Type:          models.EventApplicationCreated,
		Recipient:     j.CompanyID,
		JobID:         jobID,
		ApplicationID: a.ID,
		Status:        a.Status,
		Message:       fmt.Sprintf("%s applied to %s", u.Name, j.Title),
	})
	return a, nil
}

// ChangeStatus decide a candidatura. Só a empresa dona pode decidir; a
// transição segue a política configurada e é gravada com compare-and-swap.
func (s *ApplicationService) ChangeStatus(ctx context.Context, companyID, applicationID, status string) (*models.Application, error) {
	to, err := models.ParseStatus(status)
	if err != nil {
		return nil, &ValidationError{Msg: "status must be Accepted or Rejected", Err: err}
	}
	if !to.Terminal() {
		return nil, &ValidationError{Msg: "status must be Accepted or Rejected", Err: models.ErrInvalidStatus}
	}

	a, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if a.CompanyID != companyID {
		s.log.Warn("status_change_denied", "application_id", applicationID, "company_id", companyID)
		return nil, ErrForbidden
	}

	next, err := a.Status.Transition(to, s.policy)
	if err != nil {
		return nil, err
	}
	if err := s.apps.UpdateStatus(ctx, a.ID, a.Status, next); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStatusConflict
		}
		return nil, err
	}

	prev := a.Status
	a.Status = next
	s.log.Info("application_status_changed", "application_id", a.ID, "from", prev, "to", next)
	notify(s.notifier, s.log, models.Event{
		Type:          models.EventApplicationStatusChanged,
		Recipient:     a.UserID,
		JobID:         a.JobID,
		ApplicationID: a.ID,
		Status:        next,
		Message:       fmt.Sprintf("Your application was %s", next),
	})
	return a, nil
}

// SetJobVisibility alterna a visibilidade de uma vaga da própria empresa.
// Vaga de outra empresa devolve ErrForbidden sem alterar nada.
func (s *ApplicationService) SetJobVisibility(ctx context.Context, companyID, jobID string) (*models.Job, error) {
	if jobID == "" {
		return nil, invalid("job id is required")
	}
	j, err := s.jobs.ToggleVisibility(ctx, jobID, companyID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		// o update não casou: vaga inexistente ou de outro dono
		if _, getErr := s.jobs.GetByID(ctx, jobID); getErr != nil {
			return nil, mapNotFound(getErr)
		}
		s.log.Warn("visibility_change_denied", "job_id", jobID, "company_id", companyID)
		return nil, ErrForbidden
	}

	s.log.Info("job_visibility_changed", "job_id", j.ID, "visible", j.Visible)
	visible := j.Visible
	notify(s.notifier, s.log, models.Event{
		Type:      models.EventJobVisibilityChanged,
		Recipient: companyID,
		JobID:     j.ID,
		Visible:   &visible,
		Message:   fmt.Sprintf("%s is now %s", j.Title, visibilityWord(visible)),
	})
	return j, nil
}

func visibilityWord(v bool) string {
	if v {
		return "visible"
	}
	return "hidden"
}

// UserApplications devolve as candidaturas do usuário (mais recentes primeiro)
// com vaga e empresa resolvidas; referências ausentes ficam nil.
func (s *ApplicationService) UserApplications(ctx context.Context, userID string) ([]models.ApplicationView, error) {
	apps, err := s.apps.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	jobIDs := make([]string, 0, len(apps))
	companyIDs := make([]string, 0, len(apps))
	for _, a := range apps {
		jobIDs = append(jobIDs, a.JobID)
		companyIDs = append(companyIDs, a.CompanyID)
	}
	jobs, err := s.jobsByID(ctx, jobIDs)
	if err != nil {
		return nil, err
	}
	companies, err := s.companies.GetMany(ctx, uniq(companyIDs))
	if err != nil {
		return nil, err
	}
	companyByID := make(map[string]models.Company, len(companies))
	for _, c := range companies {
		companyByID[c.ID] = c
	}

	out := make([]models.ApplicationView, 0, len(apps))
	for _, a := range apps {
		v := models.ApplicationView{Application: a}
		if j, ok := jobs[a.JobID]; ok {
			v.Job = j.Summary()
		}
		if c, ok := companyByID[a.CompanyID]; ok {
			pub := c.Public()
			v.Company = &pub
		}
		out = append(out, v)
	}
	return out, nil
}

// CompanyApplicants devolve as candidaturas recebidas pela empresa com
// candidato e vaga resolvidos.
func (s *ApplicationService) CompanyApplicants(ctx context.Context, companyID string) ([]models.ApplicationView, error) {
	apps, err := s.apps.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	jobIDs := make([]string, 0, len(apps))
	userIDs := make([]string, 0, len(apps))
	for _, a := range apps {
		jobIDs = append(jobIDs, a.JobID)
		userIDs = append(userIDs, a.UserID)
	}
	jobs, err := s.jobsByID(ctx, jobIDs)
	if err != nil {
		return nil, err
	}
	users, err := s.users.GetMany(ctx, uniq(userIDs))
	if err != nil {
		return nil, err
	}
	userByID := make(map[string]models.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	out := make([]models.ApplicationView, 0, len(apps))
	for _, a := range apps {
		v := models.ApplicationView{Application: a}
		if j, ok := jobs[a.JobID]; ok {
			v.Job = j.Summary()
		}
		if u, ok := userByID[a.UserID]; ok {
			v.User = &models.ApplicantSummary{ID: u.ID, Name: u.Name, Image: u.Image, Resume: u.Resume}
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *ApplicationService) jobsByID(ctx context.Context, ids []string) (map[string]models.Job, error) {
	jobs, err := s.jobs.GetMany(ctx, uniq(ids))
	if err != nil {
		return nil, err
	}
	out := make(map[string]models.Job, len(jobs))
	for _, j := range jobs {
		out[j.ID] = j
	}
	return out, nil
}
