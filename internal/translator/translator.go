// Package translator drives the translation service through a browser
// session as an ordered pipeline of named steps.
package translator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/timeout"

	"github.com/Belphemur/tlsubs/internal/apperrors"
	"github.com/Belphemur/tlsubs/internal/automation"
	"github.com/Belphemur/tlsubs/internal/config"
	"github.com/Belphemur/tlsubs/internal/metrics"
	"github.com/Belphemur/tlsubs/internal/models"
)

// Translator runs translation jobs against the service at siteURL
type Translator struct {
	launcher automation.Launcher
	siteURL  string
	timeouts config.Timeouts
}

// run is the mutable state of one Translate call
type run struct {
	job         models.Job
	session     automation.Session
	stagingPath string
	size        int64
}

// New creates a Translator. Zero timeouts are replaced by the defaults.
func New(launcher automation.Launcher, siteURL string, timeouts config.Timeouts) *Translator {
	defaults := config.DefaultTimeouts()
	fill := func(d *time.Duration, fallback time.Duration) {
		if *d <= 0 {
			*d = fallback
		}
	}
	fill(&timeouts.Launch, defaults.Launch)
	fill(&timeouts.Navigate, defaults.Navigate)
	fill(&timeouts.Element, defaults.Element)
	fill(&timeouts.Popup, defaults.Popup)
	fill(&timeouts.Translate, defaults.Translate)
	fill(&timeouts.Download, defaults.Download)

	return &Translator{
		launcher: launcher,
		siteURL:  siteURL,
		timeouts: timeouts,
	}
}

// StepNames returns the pipeline step names in execution order
func (t *Translator) StepNames() []string {
	steps := t.steps()
	names := make([]string, len(steps))
	for i, s := range steps {
		names[i] = s.Name
	}
	return names
}

// Translate uploads job's file, translates it and writes the result to
// job.OutputPath(). The output file only appears once every step has
// succeeded. A failing step is reported as *apperrors.ErrStepFailed.
func (t *Translator) Translate(ctx context.Context, job models.Job) (*models.TranslationResult, error) {
	logger := config.GetLogger()
	start := time.Now()

	logger.Info().
		Str("file", job.InputPath).
		Str("target_lang", job.TargetLang).
		Str("output", job.OutputPath()).
		Msg("Starting translation")

	stagingDir, err := os.MkdirTemp(job.OutputDir, ".tlsubs-*")
	if err != nil {
		metrics.TranslationsTotal.WithLabelValues(metrics.StatusError).Inc()
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(stagingDir)

	r := &run{
		job:         job,
		stagingPath: filepath.Join(stagingDir, job.OutputFileName()),
	}
	defer func() {
		if r.session == nil {
			return
		}
		if err := r.session.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close browser")
		} else {
			logger.Debug().Msg("Browser closed")
		}
	}()

	for _, step := range t.steps() {
		if err := t.runStep(ctx, step, r); err != nil {
			status := metrics.StatusError
			if errors.Is(err, timeout.ErrExceeded) {
				status = metrics.StatusTimeout
			}
			metrics.TranslationsTotal.WithLabelValues(status).Inc()
			return nil, apperrors.NewStepFailedError(step.Name, err)
		}
	}

	result := &models.TranslationResult{
		OutputPath: job.OutputPath(),
		Size:       r.size,
		Duration:   time.Since(start),
	}

	metrics.TranslationsTotal.WithLabelValues(metrics.StatusSuccess).Inc()
	metrics.TranslatedBytes.Set(float64(result.Size))

	logger.Info().
		Str("output", result.OutputPath).
		Int64("size", result.Size).
		Dur("duration", result.Duration).
		Msg("Translation saved")

	return result, nil
}

// runStep executes step under its timeout policy and records its duration.
func (t *Translator) runStep(ctx context.Context, step Step, r *run) error {
	logger := config.GetLogger()
	logger.Debug().Str("step", step.Name).Dur("timeout", step.Timeout).Msg("Running step")

	policy := timeout.New[any](step.Timeout)
	start := time.Now()
	err := failsafe.With[any](policy).
		WithContext(ctx).
		RunWithExecution(func(exec failsafe.Execution[any]) error {
			return step.Run(exec.Context(), r)
		})
	elapsed := time.Since(start)

	status := metrics.StatusSuccess
	switch {
	case err == nil:
	case errors.Is(err, timeout.ErrExceeded):
		status = metrics.StatusTimeout
	default:
		status = metrics.StatusError
	}
	metrics.StepDurationSeconds.WithLabelValues(step.Name, status).Observe(elapsed.Seconds())

	if err != nil {
		logger.Error().Err(err).Str("step", step.Name).Dur("elapsed", elapsed).Msg("Step failed")
		return err
	}

	logger.Info().Str("step", step.Name).Dur("elapsed", elapsed).Msg("Step completed")
	return nil
}
