// Package memory implementa os mesmos contratos dos repositórios Mongo em
// memória. Usado nos testes de service e handlers.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Werneck0live/job-portal/internal/models"
	"github.com/Werneck0live/job-portal/internal/repository"
)

// Store guarda as quatro coleções; cada Xxx() devolve uma visão tipada.
type Store struct {
	mu           sync.RWMutex
	seq          int64
	companies    map[string]models.Company
	jobs         map[string]models.Job
	applications map[string]models.Application
	users        map[string]models.User
	order        map[string]int64 // ordem de inserção por id
}

func New() *Store {
	return &Store{
		companies:    map[string]models.Company{},
		jobs:         map[string]models.Job{},
		applications: map[string]models.Application{},
		users:        map[string]models.User{},
		order:        map[string]int64{},
	}
}

func (s *Store) Companies() *Companies       { return &Companies{s} }
func (s *Store) Jobs() *Jobs                 { return &Jobs{s} }
func (s *Store) Applications() *Applications { return &Applications{s} }
func (s *Store) Users() *Users               { return &Users{s} }

func (s *Store) stamp(id string) {
	s.seq++
	s.order[id] = s.seq
}

func sortByInsertion[T any](s *Store, list []T, id func(T) string, desc bool) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := s.order[id(list[i])], s.order[id(list[j])]
		if desc {
			return a > b
		}
		return a < b
	})
}

// ---------- companies ----------

type Companies struct{ s *Store }

func (c *Companies) Create(_ context.Context, co *models.Company) (string, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	for _, other := range c.s.companies {
		if strings.EqualFold(other.Email, co.Email) {
			return "", repository.ErrDuplicate
		}
	}
	if co.ID == "" {
		co.ID = uuid.NewString()
	}
	if co.CreatedAt.IsZero() {
		co.CreatedAt = time.Now().UTC()
	}
	c.s.companies[co.ID] = *co
	c.s.stamp(co.ID)
	return co.ID, nil
}

func (c *Companies) GetByID(_ context.Context, id string) (*models.Company, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	co, ok := c.s.companies[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &co, nil
}

func (c *Companies) GetByEmail(_ context.Context, email string) (*models.Company, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	for _, co := range c.s.companies {
		if co.Email == email {
			return &co, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (c *Companies) GetMany(_ context.Context, ids []string) ([]models.Company, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	out := []models.Company{}
	for _, id := range ids {
		if co, ok := c.s.companies[id]; ok {
			out = append(out, co)
		}
	}
	return out, nil
}

// MarkDeleted simula a exclusão lógica feita fora da API.
func (c *Companies) MarkDeleted(id string) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if co, ok := c.s.companies[id]; ok {
		co.Deleted = true
		c.s.companies[id] = co
	}
}

// Remove apaga a empresa de vez, deixando referências órfãs.
func (c *Companies) Remove(id string) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	delete(c.s.companies, id)
}

// ---------- jobs ----------

type Jobs struct{ s *Store }

func (j *Jobs) Create(_ context.Context, job *models.Job) (string, error) {
	j.s.mu.Lock()
	defer j.s.mu.Unlock()
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if _, exists := j.s.jobs[job.ID]; exists {
		return "", repository.ErrDuplicate
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	j.s.jobs[job.ID] = *job
	j.s.stamp(job.ID)
	return job.ID, nil
}

func (j *Jobs) GetByID(_ context.Context, id string) (*models.Job, error) {
	j.s.mu.RLock()
	defer j.s.mu.RUnlock()
	job, ok := j.s.jobs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &job, nil
}

func (j *Jobs) GetMany(_ context.Context, ids []string) ([]models.Job, error) {
	j.s.mu.RLock()
	defer j.s.mu.RUnlock()
	out := []models.Job{}
	for _, id := range ids {
		if job, ok := j.s.jobs[id]; ok {
			out = append(out, job)
		}
	}
	return out, nil
}

func (j *Jobs) filter(keep func(models.Job) bool) []models.Job {
	j.s.mu.RLock()
	defer j.s.mu.RUnlock()
	out := []models.Job{}
	for _, job := range j.s.jobs {
		if keep(job) {
			out = append(out, job)
		}
	}
	sortByInsertion(j.s, out, func(x models.Job) string { return x.ID }, false)
	return out
}

func (j *Jobs) ListVisible(_ context.Context) ([]models.Job, error) {
	return j.filter(func(x models.Job) bool { return x.Visible }), nil
}

func (j *Jobs) ListByCompany(_ context.Context, companyID string) ([]models.Job, error) {
	return j.filter(func(x models.Job) bool { return x.CompanyID == companyID }), nil
}

func (j *Jobs) ToggleVisibility(_ context.Context, jobID, companyID string) (*models.Job, error) {
	j.s.mu.Lock()
	defer j.s.mu.Unlock()
	job, ok := j.s.jobs[jobID]
	if !ok || job.CompanyID != companyID {
		return nil, repository.ErrNotFound
	}
	job.Visible = !job.Visible
	j.s.jobs[jobID] = job
	return &job, nil
}

// ---------- applications ----------

type Applications struct{ s *Store }

func (a *Applications) Create(_ context.Context, app *models.Application) (string, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	for _, other := range a.s.applications {
		if other.UserID == app.UserID && other.JobID == app.JobID {
			return "", repository.ErrDuplicate
		}
	}
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	if app.CreatedAt.IsZero() {
		app.CreatedAt = time.Now().UTC()
	}
	a.s.applications[app.ID] = *app
	a.s.stamp(app.ID)
	return app.ID, nil
}

func (a *Applications) GetByID(_ context.Context, id string) (*models.Application, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	app, ok := a.s.applications[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &app, nil
}

func (a *Applications) Exists(_ context.Context, userID, jobID string) (bool, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	for _, app := range a.s.applications {
		if app.UserID == userID && app.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

func (a *Applications) filter(keep func(models.Application) bool) []models.Application {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	out := []models.Application{}
	for _, app := range a.s.applications {
		if keep(app) {
			out = append(out, app)
		}
	}
	sortByInsertion(a.s, out, func(x models.Application) string { return x.ID }, true)
	return out
}

func (a *Applications) ListByUser(_ context.Context, userID string) ([]models.Application, error) {
	return a.filter(func(x models.Application) bool { return x.UserID == userID }), nil
}

func (a *Applications) ListByCompany(_ context.Context, companyID string) ([]models.Application, error) {
	return a.filter(func(x models.Application) bool { return x.CompanyID == companyID }), nil
}

func (a *Applications) CountByJob(_ context.Context, companyID string) (map[string]int, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	out := map[string]int{}
	for _, app := range a.s.applications {
		if app.CompanyID == companyID {
			out[app.JobID]++
		}
	}
	return out, nil
}

func (a *Applications) UpdateStatus(_ context.Context, id string, from, to models.ApplicationStatus) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	app, ok := a.s.applications[id]
	if !ok || app.Status != from {
		return repository.ErrNotFound
	}
	app.Status = to
	a.s.applications[id] = app
	return nil
}

// ---------- users ----------

type Users struct{ s *Store }

func (u *Users) Upsert(_ context.Context, user *models.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	cur, ok := u.s.users[user.ID]
	if !ok {
		u.s.stamp(user.ID)
	}
	cur.ID = user.ID
	cur.Name = user.Name
	cur.Email = user.Email
	cur.Image = user.Image
	cur.UpdatedAt = time.Now().UTC()
	u.s.users[user.ID] = cur
	return nil
}

func (u *Users) Delete(_ context.Context, id string) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	delete(u.s.users, id)
	return nil
}

func (u *Users) GetByID(_ context.Context, id string) (*models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	user, ok := u.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (u *Users) GetMany(_ context.Context, ids []string) ([]models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	out := []models.User{}
	for _, id := range ids {
		if user, ok := u.s.users[id]; ok {
			out = append(out, user)
		}
	}
	return out, nil
}

func (u *Users) SetResume(_ context.Context, id, ref string) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	user, ok := u.s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.Resume = ref
	user.UpdatedAt = time.Now().UTC()
	u.s.users[id] = user
	return nil
}
