package handlers

import (
	"errors"
	"strings"
)

func validateApplyDTO(d ApplyDTO) error {
	if strings.TrimSpace(d.JobID) == "" {
		return errors.New("jobId is required")
	}
	return nil
}

func validateLoginDTO(d LoginDTO) error {
	if strings.TrimSpace(d.Email) == "" || d.Password == "" {
		return errors.New("email and password are required")
	}
	return nil
}

func validateChangeStatusDTO(d ChangeStatusDTO) error {
	if strings.TrimSpace(d.ID) == "" {
		return errors.New("id is required")
	}
	if strings.TrimSpace(d.Status) == "" {
		return errors.New("status is required")
	}
	return nil
}

func validateChangeVisibilityDTO(d ChangeVisibilityDTO) error {
	if strings.TrimSpace(d.ID) == "" {
		return errors.New("id is required")
	}
	return nil
}
