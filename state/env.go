// Package state defines shared program state.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"

	"bic/config"
	"bic/prefs"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg   *config.Config
	Rpt   *config.Report
	Log   *zap.Logger
	Prefs *prefs.Store

	// set from command line
	Overwrite bool
	Flatten   bool

	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// OpenPrefs opens preference store on first use.
func (e *LocalEnv) OpenPrefs() (*prefs.Store, error) {
	if e.Prefs != nil {
		return e.Prefs, nil
	}
	log := e.Log
	if log != nil {
		log = log.Named("prefs")
	}
	s, err := prefs.Open(e.Cfg.Preferences.Database, log)
	if err != nil {
		return nil, err
	}
	e.Prefs = s
	return s, nil
}

// Close releases resources held by environment.
func (e *LocalEnv) Close() error {
	err := e.Prefs.Close()
	e.Prefs = nil
	return err
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
