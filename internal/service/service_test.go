package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Werneck0live/job-portal/internal/auth"
	"github.com/Werneck0live/job-portal/internal/models"
	"github.com/Werneck0live/job-portal/internal/repository/memory"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type recorder struct {
	mu     sync.Mutex
	events []models.Event
	err    error
}

func (r *recorder) Notify(_ context.Context, ev models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.err
}

func (r *recorder) last() (models.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return models.Event{}, false
	}
	return r.events[len(r.events)-1], true
}

type blobMock struct {
	PutFn func(ctx context.Context, key, contentType string, data []byte) (string, error)
}

func (m *blobMock) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if m.PutFn == nil {
		return "https://cdn.test/" + key, nil
	}
	return m.PutFn(ctx, key, contentType, data)
}

type fixture struct {
	store     *memory.Store
	events    *recorder
	blobs     *blobMock
	tokens    *auth.Tokens
	jobs      *JobService
	apps      *ApplicationService
	companies *CompanyService
	users     *UserService
}

func newFixture(t *testing.T, policy models.TransitionPolicy) *fixture {
	t.Helper()
	st := memory.New()
	f := &fixture{
		store:  st,
		events: &recorder{},
		blobs:  &blobMock{},
		tokens: auth.NewTokens("test-secret", "", time.Hour),
	}
	f.jobs = NewJobService(st.Jobs(), st.Companies(), st.Applications(), f.events, nil)
	f.apps = NewApplicationService(st.Applications(), st.Jobs(), st.Users(), st.Companies(), policy, f.events, nil)
	f.companies = NewCompanyService(st.Companies(), f.blobs, f.tokens, 1<<20, nil)
	f.users = NewUserService(st.Users(), f.blobs, 1<<20, nil)
	return f
}

func (f *fixture) company(t *testing.T, name string) models.Company {
	t.Helper()
	c := models.Company{Name: name, Email: name + "@example.com", Image: "https://cdn.test/" + name}
	if _, err := f.store.Companies().Create(context.Background(), &c); err != nil {
		t.Fatalf("seed company: %v", err)
	}
	return c
}

func (f *fixture) job(t *testing.T, companyID, title string, visible bool) models.Job {
	t.Helper()
	j := models.Job{Title: title, Location: "Remote", Category: "Programming", Level: "Senior", Salary: 1000, CompanyID: companyID, Visible: visible}
	if _, err := f.store.Jobs().Create(context.Background(), &j); err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return j
}

func (f *fixture) user(t *testing.T, id, resumeURL string) models.User {
	t.Helper()
	ctx := context.Background()
	u := models.User{ID: id, Name: "User " + id, Email: id + "@example.com"}
	if err := f.store.Users().Upsert(ctx, &u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if resumeURL != "" {
		if err := f.store.Users().SetResume(ctx, id, resumeURL); err != nil {
			t.Fatalf("seed resume: %v", err)
		}
	}
	u.Resume = resumeURL
	return u
}

func (f *fixture) application(t *testing.T, userID string, j models.Job) models.Application {
	t.Helper()
	a, err := f.apps.Apply(context.Background(), userID, j.ID)
	if err != nil {
		t.Fatalf("seed application: %v", err)
	}
	return *a
}

func isValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
