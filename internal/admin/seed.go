package admin

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Werneck0live/job-portal/internal/auth"
	"github.com/Werneck0live/job-portal/internal/models"
	"github.com/Werneck0live/job-portal/internal/repository"
	"github.com/Werneck0live/job-portal/internal/utils"
)

//go:embed seeds/companies.json
var companiesJSON []byte

//go:embed seeds/jobs.json
var jobsJSON []byte

type CompanyStore interface {
	Create(ctx context.Context, c *models.Company) (string, error)
}

type JobStore interface {
	Create(ctx context.Context, j *models.Job) (string, error)
}

type companySeed struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}

type jobSeed struct {
	Company     string `json:"company"` // email da empresa
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Level       string `json:"level"`
	Category    string `json:"category"`
	Salary      int    `json:"salary"`
}

// Seed cria empresas e vagas de demonstração. Idempotente: empresa que já
// existe é ignorada junto com as suas vagas.
func Seed(ctx context.Context, companies CompanyStore, jobs JobStore, password string, log *slog.Logger) error {
	if password == "" {
		return errors.New("seed password is required")
	}
	var cs []companySeed
	if err := json.Unmarshal(companiesJSON, &cs); err != nil {
		return err
	}
	var js []jobSeed
	if err := json.Unmarshal(jobsJSON, &js); err != nil {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	created := map[string]string{} // email -> id
	for _, s := range cs {
		email := utils.NormalizeEmail(s.Email)
		c := models.Company{Name: s.Name, Email: email, PasswordHash: hash, Image: s.Image}

		// timeout curto por item pra não travar
		ictx, cancel := context.WithTimeout(ctx, 3*time.Second)
		id, err := companies.Create(ictx, &c)
		cancel()

		if err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				log.Info("seed_company_exists", "email", email)
				continue
			}
			return fmt.Errorf("seed company %s: %w", email, err)
		}
		created[email] = id
		log.Info("seed_company_created", "email", email, "id", id)
	}

	for _, s := range js {
		companyID, ok := created[utils.NormalizeEmail(s.Company)]
		if !ok {
			continue
		}
		j := models.Job{
			Title:       s.Title,
			Description: s.Description,
			Location:    s.Location,
			Level:       s.Level,
			Category:    s.Category,
			Salary:      s.Salary,
			CompanyID:   companyID,
			Visible:     true,
		}
		ictx, cancel := context.WithTimeout(ctx, 3*time.Second)
		id, err := jobs.Create(ictx, &j)
		cancel()
		if err != nil {
			return fmt.Errorf("seed job %q: %w", s.Title, err)
		}
		log.Info("seed_job_created", "id", id, "company_id", companyID)
	}
	return nil
}
