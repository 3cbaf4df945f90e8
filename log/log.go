// Package log configures the application logger: logrus for local output,
// with errors and warnings forwarded to Sentry when SENTRY_DSN is set.
package log

import (
	"os"

	"github.com/gobuffalo/buffalo"
	"github.com/sirupsen/logrus"

	"github.com/silinternational/prudence-api/domain"
)

var logger = logrus.New()

func init() {
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	if domain.Env.GoEnv == domain.EnvDevelopment {
		logger.SetFormatter(&logrus.TextFormatter{})
		logger.SetLevel(logrus.DebugLevel)
	}

	if hook := NewSentryHook(domain.Env.GoEnv, commit()); hook != nil {
		logger.AddHook(hook)
	}
}

func commit() string {
	return os.Getenv("GIT_COMMIT_HASH")
}

// Error logs a message at error level, with any extras attached as fields
func Error(c buffalo.Context, msg string, extras map[string]interface{}) {
	entry(c, extras).Error(msg)
}

// Warn logs a message at warning level, with any extras attached as fields
func Warn(c buffalo.Context, msg string, extras map[string]interface{}) {
	entry(c, extras).Warn(msg)
}

// Info logs a message at info level, with any extras attached as fields
func Info(c buffalo.Context, msg string, extras map[string]interface{}) {
	entry(c, extras).Info(msg)
}

// Errorf logs a formatted message at error level without request context
func Errorf(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}

// Warnf logs a formatted message at warning level without request context
func Warnf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

// Infof logs a formatted message at info level without request context
func Infof(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Fatalf logs a formatted message and exits
func Fatalf(format string, args ...interface{}) {
	logger.Fatalf(format, args...)
}

func entry(c buffalo.Context, extras map[string]interface{}) *logrus.Entry {
	fields := logrus.Fields{}
	for k, v := range extras {
		fields[k] = v
	}
	e := logger.WithFields(fields)
	e.Context = c
	return e
}
