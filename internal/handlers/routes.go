package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Werneck0live/job-portal/internal/utils"
)

// Guard protege rotas de empresa e de usuário (auth.Tokens em produção).
type Guard interface {
	IdentityParser
	RequireCompany(next http.Handler) http.Handler
	RequireUser(next http.Handler) http.Handler
}

// Jobs reúne leitura pública e operações da empresa sobre vagas.
type Jobs interface {
	JobQueries
	CompanyJobs
}

type Deps struct {
	Jobs           Jobs
	Apps           Applications
	Companies      Companies
	Users          Users
	Webhooks       WebhookProcessor
	Guard          Guard
	MaxUploadBytes int64
	RequestTimeout time.Duration
	// Wrap envolve o router inteiro (ex.: Sentry); nil = sem wrapper.
	Wrap func(http.Handler) http.Handler
	Log  *slog.Logger
}

func Health(w http.ResponseWriter, _ *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func NewRouter(d Deps) http.Handler {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	log = log.With("cmp", "http")

	jobs := &JobHandler{Jobs: d.Jobs, Identity: d.Guard, Log: log}
	users := &UserHandler{Users: d.Users, Apps: d.Apps, MaxUploadBytes: d.MaxUploadBytes, Log: log}
	companies := &CompanyHandler{Companies: d.Companies, Jobs: d.Jobs, Apps: d.Apps, MaxUploadBytes: d.MaxUploadBytes, Log: log}
	hooks := &WebhookHandler{Processor: d.Webhooks, Log: log}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", Health).Methods(http.MethodGet)
	r.HandleFunc("/webhooks", hooks.Identity).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(Timeout(d.RequestTimeout))

	api.HandleFunc("/jobs", jobs.List).Methods(http.MethodGet)
	api.HandleFunc("/jobs/{id}", jobs.Get).Methods(http.MethodGet)
	api.HandleFunc("/jobs/{id}/related", jobs.Related).Methods(http.MethodGet)

	u := api.PathPrefix("/users").Subrouter()
	u.Use(d.Guard.RequireUser)
	u.HandleFunc("/user", users.Me).Methods(http.MethodGet)
	u.HandleFunc("/apply", users.Apply).Methods(http.MethodPost)
	u.HandleFunc("/applications", users.Applications).Methods(http.MethodGet)
	u.HandleFunc("/update-resume", users.UpdateResume).Methods(http.MethodPost)

	c := api.PathPrefix("/company").Subrouter()
	c.HandleFunc("/register", companies.Register).Methods(http.MethodPost)
	c.HandleFunc("/login", companies.Login).Methods(http.MethodPost)

	priv := c.NewRoute().Subrouter()
	priv.Use(d.Guard.RequireCompany)
	priv.HandleFunc("/company", companies.Me).Methods(http.MethodGet)
	priv.HandleFunc("/post-job", companies.PostJob).Methods(http.MethodPost)
	priv.HandleFunc("/list-jobs", companies.ListJobs).Methods(http.MethodGet)
	priv.HandleFunc("/applicants", companies.Applicants).Methods(http.MethodGet)
	priv.HandleFunc("/change-status", companies.ChangeStatus).Methods(http.MethodPost)
	priv.HandleFunc("/change-visibility", companies.ChangeVisibility).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		utils.Fail(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		utils.Fail(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	var h http.Handler = r
	if d.Wrap != nil {
		h = d.Wrap(h)
	}
	return LogMiddleware(log)(CORS(Recover(log)(h)))
}
