package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Werneck0live/job-portal/internal/admin"
	"github.com/Werneck0live/job-portal/internal/auth"
	"github.com/Werneck0live/job-portal/internal/blob"
	"github.com/Werneck0live/job-portal/internal/broker"
	"github.com/Werneck0live/job-portal/internal/config"
	"github.com/Werneck0live/job-portal/internal/db"
	"github.com/Werneck0live/job-portal/internal/handlers"
	"github.com/Werneck0live/job-portal/internal/repository"
	"github.com/Werneck0live/job-portal/internal/service"
	"github.com/Werneck0live/job-portal/internal/telemetry"
	"github.com/Werneck0live/job-portal/internal/webhook"
)

var version = "dev"

// cmd/api/main.go
func main() {
	cfgPath := flag.String("config", "", "optional YAML config file")
	task := flag.String("task", "", "admin task: seed | indexes")
	seedPassword := flag.String("seed-password", os.Getenv("SEED_PASSWORD"), "password for seeded companies")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		slog.Error("config_load_error", "err", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("config_invalid", "err", err)
		os.Exit(1)
	}

	// Logger JSON "global" - permite usar slog.Info/slog.Error/Warn em qualquer lugar
	log := config.InitLogger(config.ParseLevel(cfg.LogLevel)).With("svc", "api")
	log.Info("starting", "port", cfg.Port, "mongo_db", cfg.MongoDB, "env", cfg.Env, "version", version)

	sentryOn, err := telemetry.Init(cfg.SentryDSN, cfg.Env, version)
	if err != nil {
		log.Warn("sentry_init_error", "err", err)
	}
	defer telemetry.Flush(2 * time.Second)

	client, err := db.NewMongoClient(cfg.MongoURI)
	if err != nil {
		log.Error("mongo_connect_error", "err", err)
		os.Exit(1)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	database := client.Database(cfg.MongoDB)

	// HOOK: admin job (one-off)
	if *task != "" {
		if err := runTask(*task, database, *seedPassword, log); err != nil {
			log.Error("task_failed", "task", *task, "err", err)
			os.Exit(1)
		}
		log.Info("task_done", "task", *task)
		return // encerra o processo sem subir HTTP
	}

	ictx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	err = repository.EnsureIndexes(ictx, database)
	cancel()
	if err != nil {
		log.Error("mongo_indexes_error", "err", err)
		os.Exit(1)
	}

	// publisher (Rabbit)
	pub, err := broker.NewPublisher(cfg.RabbitURI, cfg.RabbitQueue)
	if err != nil {
		log.Error("rabbitmq_connect_error", "err", err)
		os.Exit(1)
	}
	defer func() { _ = pub.Close() }()

	var blobs blob.Store = blob.Disabled{}
	if cfg.Blob.Bucket != "" {
		s3, err := blob.NewS3(context.Background(), cfg.Blob)
		if err != nil {
			log.Error("blob_init_error", "err", err)
			os.Exit(1)
		}
		blobs = s3
	} else {
		log.Warn("blob_disabled")
	}

	companies := repository.NewCompanyRepository(database)
	jobs := repository.NewJobRepository(database)
	apps := repository.NewApplicationRepository(database)
	users := repository.NewUserRepository(database)

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.IdentityTokenSecret, cfg.TokenDuration)
	if cfg.IdentityTokenSecret == "" {
		log.Warn("identity_tokens_disabled")
	}

	var verifier webhook.Verifier = webhook.Disabled{}
	if strings.TrimSpace(cfg.WebhookSecret) == "" {
		log.Warn("webhook_disabled", "reason", "no webhook secret")
	} else {
		verifier, err = webhook.NewSvixVerifier(cfg.WebhookSecret)
		if err != nil {
			log.Error("webhook_secret_invalid", "err", err)
			os.Exit(1)
		}
	}
	hooks, err := webhook.NewProcessor(verifier, users, log)
	if err != nil {
		log.Error("webhook_init_error", "err", err)
		os.Exit(1)
	}

	deps := handlers.Deps{
		Jobs:           service.NewJobService(jobs, companies, apps, pub, log),
		Apps:           service.NewApplicationService(apps, jobs, users, companies, cfg.Policy(), pub, log),
		Companies:      service.NewCompanyService(companies, blobs, tokens, cfg.MaxUploadBytes, log),
		Users:          service.NewUserService(users, blobs, cfg.MaxUploadBytes, log),
		Webhooks:       hooks,
		Guard:          tokens,
		MaxUploadBytes: cfg.MaxUploadBytes,
		RequestTimeout: cfg.RequestTimeout,
		Log:            log,
	}
	if sentryOn {
		deps.Wrap = telemetry.Middleware
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewRouter(deps),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	// start server
	go func() {
		log.Info("http_listen", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http_server_error", "err", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful_shutdown_error", "err", err)
	}
	log.Info("stopped")
}

func runTask(task string, database *mongo.Database, seedPassword string, log *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	switch task {
	case "indexes":
		return repository.EnsureIndexes(ctx, database)
	case "seed":
		if err := repository.EnsureIndexes(ctx, database); err != nil {
			return err
		}
		return admin.Seed(ctx,
			repository.NewCompanyRepository(database),
			repository.NewJobRepository(database),
			seedPassword, log)
	}
	return errors.New("unknown admin task: " + task)
}
