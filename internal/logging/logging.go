// Package logging builds the process logger and error reporting client.
package logging

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"github.com/fitturk/backend/config"
)

// New returns a JSON logger in production and a console logger elsewhere.
func New(env config.Environment) (*zap.Logger, error) {
	if env == config.Production {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// InitSentry enables error reporting when dsn is set. The returned flush
// must run before the process exits.
func InitSentry(dsn string, env config.Environment) (func(), error) {
	if dsn == "" {
		return func() {}, nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      string(env),
		AttachStacktrace: true,
		// profile and chat payloads are health data
		SendDefaultPII: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sentry: %w", err)
	}
	return func() { sentry.Flush(2 * time.Second) }, nil
}
