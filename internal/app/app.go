// Package app wires configuration, kernels and presentation into the
// limbkern command.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/limbkern/internal/calibration"
	"github.com/agbru/limbkern/internal/config"
	apperrors "github.com/agbru/limbkern/internal/errors"
	"github.com/agbru/limbkern/internal/logging"
	"github.com/agbru/limbkern/internal/ui"
	"github.com/rs/zerolog"
)

// errMismatch reports that the fast path and the reference path returned
// different results for the same inputs.
var errMismatch = errors.New("fast and reference paths disagree")

// Application represents the limbkern application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Logger    *logging.ZerologAdapter
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer) (*Application, error) {
	programName := "limbkern"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	if cfg.CalibrationProfile == "" {
		cfg.CalibrationProfile = calibration.DefaultProfilePath()
	}

	logger := newLogger(errWriter, cfg)
	if cfgWithProfile, loaded := calibration.LoadCachedThreshold(cfg, logger); loaded {
		logger.Debug("strassen threshold from calibration profile",
			logging.Int("threshold", cfgWithProfile.StrassenThreshold),
			logging.String("profile", cfg.CalibrationProfile))
		cfg = cfgWithProfile
	} else {
		cfg = config.ApplyAdaptiveThresholds(cfg)
	}

	return &Application{Config: cfg, ErrWriter: errWriter, Logger: logger}, nil
}

// newLogger builds a console logger on w. Verbose enables debug entries;
// quiet keeps only errors.
func newLogger(w io.Writer, cfg config.AppConfig) *logging.ZerologAdapter {
	level := zerolog.WarnLevel
	switch {
	case cfg.Verbose:
		level = zerolog.DebugLevel
	case cfg.Quiet:
		level = zerolog.ErrorLevel
	}
	zl := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: cfg.NoColor, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()
	return logging.NewZerologAdapter(zl)
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor)

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	var err error
	switch a.Config.Mode {
	case config.ModeModPow:
		err = a.runModPow(out)
	case config.ModeMatrix:
		err = a.runMatrix(ctx, out)
	case config.ModeCalibrate:
		err = a.runCalibrate(ctx, out)
	default:
		err = apperrors.NewConfigError("unknown mode %q", a.Config.Mode)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		err = apperrors.TimeoutError{Operation: a.Config.Mode, Limit: a.Config.Timeout}
	}
	return a.handleError(err)
}

// handleError reports err on the error writer and maps it to an exit code.
func (a *Application) handleError(err error) int {
	if err == nil {
		return apperrors.ExitSuccess
	}
	t := ui.GetCurrentTheme()
	fmt.Fprintf(a.ErrWriter, "%s %v\n", t.Paint(t.Error, "Error:"), err)
	return ExitCode(err)
}

// ExitCode maps an error returned by a mode to the process exit code.
func ExitCode(err error) int {
	var cfgErr apperrors.ConfigError
	switch {
	case err == nil:
		return apperrors.ExitSuccess
	case errors.Is(err, errMismatch), errors.Is(err, calibration.ErrPathMismatch):
		return apperrors.ExitErrorMismatch
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return apperrors.ExitErrorCanceled
	case errors.As(err, &cfgErr):
		return apperrors.ExitErrorConfig
	default:
		return apperrors.ExitErrorGeneric
	}
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
