package telemetry

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
)

// Init liga o Sentry quando há DSN. Sem DSN o SDK fica inerte e
// CaptureException vira no-op.
func Init(dsn, env, release string) (enabled bool, err error) {
	if dsn == "" {
		return false, nil
	}
	err = sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      env,
		Release:          release,
		AttachStacktrace: true,
	})
	return err == nil, err
}

func Flush(timeout time.Duration) { sentry.Flush(timeout) }

// Middleware reporta panics ao Sentry e repropaga para o recover de fora.
func Middleware(next http.Handler) http.Handler {
	return sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle(next)
}

// Capture envia err ao Sentry usando o hub da requisição, se houver.
func Capture(ctx context.Context, err error) {
	if err == nil {
		return
	}
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.CaptureException(err)
		return
	}
	sentry.CaptureException(err)
}

// LogError loga o erro e o reporta ao Sentry.
func LogError(ctx context.Context, log *slog.Logger, msg string, err error, args ...any) {
	log.ErrorContext(ctx, msg, append([]any{"err", err}, args...)...)
	Capture(ctx, err)
}
