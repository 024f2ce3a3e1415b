package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "Pending"
	StatusAccepted ApplicationStatus = "Accepted"
	StatusRejected ApplicationStatus = "Rejected"
)

var (
	ErrInvalidStatus     = errors.New("invalid application status")
	ErrInvalidTransition = errors.New("invalid application status transition")
)

// ParseStatus accepts the canonical names case-insensitively.
func ParseStatus(s string) (ApplicationStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, nil
	case "accepted":
		return StatusAccepted, nil
	case "rejected":
		return StatusRejected, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

func (s ApplicationStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// TransitionPolicy decides whether a decided application may be re-decided.
type TransitionPolicy string

const (
	// PolicyStrict only allows Pending -> Accepted|Rejected.
	PolicyStrict TransitionPolicy = "strict"
	// PolicyAllowCorrection additionally allows Accepted <-> Rejected.
	PolicyAllowCorrection TransitionPolicy = "allow_correction"
)

func ParsePolicy(s string) (TransitionPolicy, error) {
	switch TransitionPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyStrict:
		return PolicyStrict, nil
	case PolicyAllowCorrection:
		return PolicyAllowCorrection, nil
	}
	return "", fmt.Errorf("unknown status policy %q", s)
}

// Transition returns the next status or an error; it never returns Pending.
func (s ApplicationStatus) Transition(to ApplicationStatus, p TransitionPolicy) (ApplicationStatus, error) {
	if !to.Terminal() {
		return s, fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}
	switch {
	case s == StatusPending:
		return to, nil
	case s.Terminal() && p == PolicyAllowCorrection && s != to:
		return to, nil
	}
	return s, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, to)
}

type Application struct {
	ID        string            `bson:"_id,omitempty" json:"id"`
	UserID    string            `bson:"user_id" json:"user_id"`
	JobID     string            `bson:"job_id" json:"job_id"`
	CompanyID string            `bson:"company_id" json:"company_id"` // copiado do job na criação
	Status    ApplicationStatus `bson:"status" json:"status"`
	CreatedAt time.Time         `bson:"created_at" json:"created_at"`
}

// JobSummary is the slice of a job shown next to an application.
type JobSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Location string `json:"location"`
	Category string `json:"category"`
	Level    string `json:"level"`
	Salary   int    `json:"salary"`
}

func (j Job) Summary() *JobSummary {
	return &JobSummary{ID: j.ID, Title: j.Title, Location: j.Location, Category: j.Category, Level: j.Level, Salary: j.Salary}
}

// ApplicantSummary is what a company sees of an applicant.
type ApplicantSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Image  string `json:"image"`
	Resume string `json:"resume"`
}

// ApplicationView is an application with its references resolved. Any of the
// references can be nil when the referenced document no longer exists.
type ApplicationView struct {
	Application
	Job     *JobSummary       `json:"job"`
	Company *CompanySummary   `json:"company,omitempty"`
	User    *ApplicantSummary `json:"user,omitempty"`
}
