package types

import (
	ierr "github.com/deskhive/deskhive/internal/errors"
)

// LogLevel controls the verbosity of the application logger.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

func (l LogLevel) Validate() error {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return nil
	}
	return ierr.NewErrorf("invalid log level '%s'", l).
		WithHint("Use one of: debug, info, warn, error").
		Mark(ierr.ErrValidation)
}

// RunMode identifies the deployment mode the process runs in.
type RunMode string

const (
	RunModeLocal RunMode = "local"
	RunModeDev   RunMode = "dev"
	RunModeProd  RunMode = "prod"
)

func (m RunMode) Validate() error {
	switch m {
	case RunModeLocal, RunModeDev, RunModeProd:
		return nil
	}
	return ierr.NewErrorf("invalid run mode '%s'", m).
		WithHint("Use one of: local, dev, prod").
		Mark(ierr.ErrValidation)
}
