package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Werneck0live/job-portal/internal/auth"
	"github.com/Werneck0live/job-portal/internal/blob"
	"github.com/Werneck0live/job-portal/internal/models"
	"github.com/Werneck0live/job-portal/internal/repository"
	"github.com/Werneck0live/job-portal/internal/utils"
)

type TokenIssuer interface {
	IssueCompany(companyID string) (string, error)
}

type CompanyService struct {
	companies CompanyStore
	blobs     blob.Store
	tokens    TokenIssuer
	maxImage  int64
	log       *slog.Logger
}

func NewCompanyService(companies CompanyStore, blobs blob.Store, tokens TokenIssuer, maxImage int64, log *slog.Logger) *CompanyService {
	return &CompanyService{
		companies: companies,
		blobs:     blobs,
		tokens:    tokens,
		maxImage:  maxImage,
		log:       orDefault(log).With("svc", "companies"),
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Image    []byte
}

var imageExt = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Session é o que register/login devolvem ao cliente.
type Session struct {
	Company models.CompanySummary
	Token   string
}

func (s *CompanyService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	name := strings.TrimSpace(in.Name)
	email := utils.NormalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" || len(in.Image) == 0 {
		return nil, invalid("All fields are required")
	}
	if !utils.ValidEmail(email) {
		return nil, invalid("invalid email address")
	}
	if s.maxImage > 0 && int64(len(in.Image)) > s.maxImage {
		return nil, invalid("image is too large")
	}
	contentType := http.DetectContentType(in.Image)
	ext, ok := imageExt[contentType]
	if !ok {
		return nil, invalid("image must be png, jpeg, gif or webp")
	}

	if _, err := s.companies.GetByEmail(ctx, email); err == nil {
		return nil, ErrCompanyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	url, err := s.blobs.Put(ctx, blob.Key("companies", email, ext), contentType, in.Image)
	if err != nil {
		return nil, upstream("upload company image", err)
	}

	c := &models.Company{Name: name, Email: email, PasswordHash: hash, Image: url}
	if _, err := s.companies.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCompanyExists
		}
		return nil, err
	}
	s.log.Info("company_registered", "company_id", c.ID)
	return s.session(c)
}

func (s *CompanyService) Login(ctx context.Context, email, password string) (*Session, error) {
	c, err := s.companies.GetByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if c.Deleted || !auth.CheckPassword(c.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return s.session(c)
}

func (s *CompanyService) session(c *models.Company) (*Session, error) {
	token, err := s.tokens.IssueCompany(c.ID)
	if err != nil {
		return nil, err
	}
	return &Session{Company: c.Public(), Token: token}, nil
}

func (s *CompanyService) Get(ctx context.Context, id string) (*models.CompanySummary, error) {
	c, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if c.Deleted {
		return nil, ErrNotFound
	}
	pub := c.Public()
	return &pub, nil
}
