package service

import (
	"context"
	"log/slog"

	"github.com/Werneck0live/job-portal/internal/blob"
	"github.com/Werneck0live/job-portal/internal/models"
	"github.com/Werneck0live/job-portal/internal/resume"
)

type UserService struct {
	users     UserStore
	blobs     blob.Store
	maxResume int64
	log       *slog.Logger
}

func NewUserService(users UserStore, blobs blob.Store, maxResume int64, log *slog.Logger) *UserService {
	return &UserService{users: users, blobs: blobs, maxResume: maxResume, log: orDefault(log).With("svc", "users")}
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return u, nil
}

// UpdateResume valida o PDF, envia ao blob store e grava a nova URL.
func (s *UserService) UpdateResume(ctx context.Context, userID string, data []byte) (*models.User, error) {
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}
	if err := resume.Validate(data, s.maxResume); err != nil {
		return nil, &ValidationError{Msg: err.Error(), Err: err}
	}

	url, err := s.blobs.Put(ctx, blob.Key("resumes", userID, ".pdf"), resume.ContentType, data)
	if err != nil {
		return nil, upstream("upload resume", err)
	}
	if err := s.users.SetResume(ctx, userID, url); err != nil {
		return nil, mapNotFound(err)
	}
	s.log.Info("resume_updated", "user_id", userID)
	return s.Get(ctx, userID)
}
