// Package logger wraps logrus with context-aware helpers used across the paste service.
package logger

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/roguepikachu/pastebin/pkg/ctxutil"
	"github.com/sirupsen/logrus"
)

// InitLogging configures the logger. It sets the log level from the LOG_LEVEL environment variable if present.
func InitLogging() {
	logrus.Info("....Configuring Logger....")
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "debug" // default if not set
	}
	setLogLevel(logLevel)
	logFormat := os.Getenv("LOG_FORMAT")
	if strings.ToLower(logFormat) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

func setLogLevel(level string) {
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		logrus.Infof("NO/Invalid LOG_LEVEL is provided, defaulting logging level to DEBUG, provided loggingLevel=[%s]", level)
		logrus.SetLevel(logrus.DebugLevel)
		return
	}
	logrus.SetLevel(lvl)
	logrus.Infof("Setting logging level to %s", level)
}

// entry returns a logrus entry carrying the request and client IDs found in ctx.
func entry(ctx context.Context) *logrus.Entry {
	e := logrus.NewEntry(logrus.StandardLogger())
	if ctx == nil {
		return e
	}
	if rid := ctxutil.RequestID(ctx); rid != "" {
		e = e.WithField("request_id", rid)
	}
	if cid := ctxutil.ClientID(ctx); cid != "" {
		e = e.WithField("client_id", cid)
	}
	return e
}

// With returns an entry with the given fields plus any IDs stored in ctx.
func With(ctx context.Context, fields map[string]any) *logrus.Entry {
	return entry(ctx).WithFields(logrus.Fields(fields))
}

// WithField returns an entry with a single field plus any IDs stored in ctx.
func WithField(ctx context.Context, key string, value any) *logrus.Entry {
	return entry(ctx).WithField(key, value)
}

// Sprintf is fmt.Sprintf, exported so callers building log fields need not import fmt.
func Sprintf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

func Info(ctx context.Context, msg string, args ...any) {
	entry(ctx).Infof(msg, args...)
}

func Debug(ctx context.Context, msg string, args ...any) {
	entry(ctx).Debugf(msg, args...)
}

func Error(ctx context.Context, msg string, args ...any) {
	entry(ctx).Errorf(msg, args...)
}

func Trace(ctx context.Context, msg string, args ...any) {
	entry(ctx).Tracef(msg, args...)
}

func Warn(ctx context.Context, msg string, args ...any) {
	entry(ctx).Warnf(msg, args...)
}

func Fatal(ctx context.Context, msg string, args ...any) {
	entry(ctx).Fatalf(msg, args...)
}
