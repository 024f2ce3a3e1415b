package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Werneck0live/job-portal/internal/models"
)

// Contratos implementados por internal/repository (Mongo) e
// internal/repository/memory.

type JobStore interface {
	Create(ctx context.Context, j *models.Job) (string, error)
	GetByID(ctx context.Context, id string) (*models.Job, error)
	GetMany(ctx context.Context, ids []string) ([]models.Job, error)
	ListVisible(ctx context.Context) ([]models.Job, error)
	ListByCompany(ctx context.Context, companyID string) ([]models.Job, error)
	ToggleVisibility(ctx context.Context, jobID, companyID string) (*models.Job, error)
}

type CompanyStore interface {
	Create(ctx context.Context, c *models.Company) (string, error)
	GetByID(ctx context.Context, id string) (*models.Company, error)
	GetByEmail(ctx context.Context, email string) (*models.Company, error)
	GetMany(ctx context.Context, ids []string) ([]models.Company, error)
}

type ApplicationStore interface {
	Create(ctx context.Context, a *models.Application) (string, error)
	GetByID(ctx context.Context, id string) (*models.Application, error)
	Exists(ctx context.Context, userID, jobID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]models.Application, error)
	ListByCompany(ctx context.Context, companyID string) ([]models.Application, error)
	CountByJob(ctx context.Context, companyID string) (map[string]int, error)
	UpdateStatus(ctx context.Context, id string, from, to models.ApplicationStatus) error
}

type UserStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetMany(ctx context.Context, ids []string) ([]models.User, error)
	SetResume(ctx context.Context, id, ref string) error
}

// Notifier publica eventos de domínio (broker.Publisher em produção).
type Notifier interface {
	Notify(ctx context.Context, ev models.Event) error
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, models.Event) error { return nil }

// notify é best-effort: a escrita já aconteceu, falha no broker só vira log.
func notify(n Notifier, log *slog.Logger, ev models.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := n.Notify(ctx, ev); err != nil {
		log.Warn("event_publish_failed", "type", ev.Type, "recipient", ev.Recipient, "err", err)
	}
}

func orNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}

func orDefault(log *slog.Logger) *slog.Logger {
	if log == nil {
		return slog.Default()
	}
	return log
}

func uniq(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
