package cli

import (
	"errors"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/Belphemur/tlsubs/internal/apperrors"
	"github.com/Belphemur/tlsubs/internal/models"
)

const sentryFlushTimeout = 2 * time.Second

// initErrorReporting enables Sentry when dsn is set. The returned flush
// must run before the process exits.
func initErrorReporting(dsn string) (func(), error) {
	if dsn == "" {
		return func() {}, nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		AttachStacktrace: true,
	}); err != nil {
		return func() {}, err
	}
	return func() { sentry.Flush(sentryFlushTimeout) }, nil
}

// reportFailure sends a failed run to Sentry through hub. Invalid input is
// the user's problem and is not reported. Automation failures are tagged
// with the failing step. It is a no-op when hub has no client.
func reportFailure(hub *sentry.Hub, err error, job models.Job) {
	if err == nil || apperrors.IsValidationError(err) {
		return
	}
	hub.WithScope(func(scope *sentry.Scope) {
		var stepErr *apperrors.ErrStepFailed
		if errors.As(err, &stepErr) {
			scope.SetTag("step", stepErr.Step)
		}
		if job.TargetLang != "" {
			scope.SetTag("target_lang", job.TargetLang)
		}
		hub.CaptureException(err)
	})
}
