package models

import "time"

const (
	EventApplicationCreated       = "application.created"
	EventApplicationStatusChanged = "application.status_changed"
	EventJobVisibilityChanged     = "job.visibility_changed"
	EventJobPosted                = "job.posted"
)

// Event é a notificação publicada no broker e entregue pelo processo ws.
// Recipient é o id do usuário ou da empresa que deve recebê-la; vazio = todos.
type Event struct {
	Type          string            `json:"type"`
	Recipient     string            `json:"recipient,omitempty"`
	JobID         string            `json:"job_id,omitempty"`
	ApplicationID string            `json:"application_id,omitempty"`
	Status        ApplicationStatus `json:"status,omitempty"`
	Visible       *bool             `json:"visible,omitempty"`
	Message       string            `json:"message"`
	At            time.Time         `json:"at"`
}
