// Package webhook processa os eventos de usuário enviados pelo provedor de
// identidade: verifica a assinatura svix, valida o payload contra um JSON
// Schema e espelha o usuário na coleção local.
package webhook

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/qri-io/jsonschema"
	svix "github.com/svix/svix-webhooks/go"

	"github.com/Werneck0live/job-portal/internal/models"
)

//go:embed user_event.schema.json
var userEventSchema []byte

var (
	ErrMissingHeaders = errors.New("missing required webhook headers")
	ErrVerification   = errors.New("webhook verification failed")
	ErrInvalidPayload = errors.New("invalid webhook payload")
	ErrNoSecret       = errors.New("webhook secret is not configured")
)

const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

var requiredHeaders = []string{"svix-id", "svix-timestamp", "svix-signature"}

type Verifier interface {
	Verify(payload []byte, headers http.Header) error
}

type UserStore interface {
	Upsert(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id string) error
}

// NewSvixVerifier exige um segredo; com chave vazia qualquer um assinaria.
func NewSvixVerifier(secret string) (Verifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrNoSecret
	}
	wh, err := svix.NewWebhook(secret)
	if err != nil {
		return nil, fmt.Errorf("svix: %w", err)
	}
	return wh, nil
}

// Disabled recusa toda entrega; usado quando não há segredo configurado.
type Disabled struct{}

func (Disabled) Verify([]byte, http.Header) error { return ErrNoSecret }

type Processor struct {
	verifier Verifier
	users    UserStore
	schema   *jsonschema.Schema
	log      *slog.Logger
}

func NewProcessor(v Verifier, users UserStore, log *slog.Logger) (*Processor, error) {
	if log == nil {
		log = slog.Default()
	}
	if v == nil {
		v = Disabled{}
	}
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(userEventSchema, rs); err != nil {
		return nil, fmt.Errorf("user event schema: %w", err)
	}
	return &Processor{verifier: v, users: users, schema: rs, log: log.With("cmp", "webhook")}, nil
}

type emailAddress struct {
	EmailAddress string `json:"email_address"`
}

type userEvent struct {
	Type string `json:"type"`
	Data struct {
		ID             string         `json:"id"`
		FirstName      string         `json:"first_name"`
		LastName       string         `json:"last_name"`
		ImageURL       string         `json:"image_url"`
		EmailAddresses []emailAddress `json:"email_addresses"`
	} `json:"data"`
}

func (e userEvent) user() *models.User {
	u := &models.User{
		ID:    e.Data.ID,
		Name:  strings.TrimSpace(e.Data.FirstName + " " + e.Data.LastName),
		Image: e.Data.ImageURL,
	}
	if len(e.Data.EmailAddresses) > 0 {
		u.Email = e.Data.EmailAddresses[0].EmailAddress
	}
	return u
}

// Handle processa uma entrega e devolve o tipo do evento. Entregas repetidas
// são seguras: upsert e delete são idempotentes.
func (p *Processor) Handle(ctx context.Context, payload []byte, headers http.Header) (string, error) {
	for _, h := range requiredHeaders {
		if headers.Get(h) == "" {
			return "", ErrMissingHeaders
		}
	}
	if err := p.verifier.Verify(payload, headers); err != nil {
		p.log.Warn("webhook_verification_failed", "err", err, "svix_id", headers.Get("svix-id"))
		return "", fmt.Errorf("%w: %v", ErrVerification, err)
	}

	keyErrs, err := p.schema.ValidateBytes(ctx, payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if len(keyErrs) > 0 {
		return "", fmt.Errorf("%w: %s", ErrInvalidPayload, keyErrs[0].Error())
	}

	var ev userEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	switch ev.Type {
	case EventUserCreated, EventUserUpdated:
		if err := p.users.Upsert(ctx, ev.user()); err != nil {
			return ev.Type, err
		}
	case EventUserDeleted:
		if err := p.users.Delete(ctx, ev.Data.ID); err != nil {
			return ev.Type, err
		}
	default:
		p.log.Info("webhook_event_ignored", "type", ev.Type)
		return ev.Type, nil
	}
	p.log.Info("webhook_event_processed", "type", ev.Type, "user_id", ev.Data.ID)
	return ev.Type, nil
}
