// Package logger constructs the zap logger injected through the
// application. There is deliberately no package-level logger; every
// component receives its own *zap.Logger.
package logger

import "go.uber.org/zap"

// New returns a development logger for env "dev"/"test" and a
// production JSON logger otherwise.
func New(env string) (*zap.Logger, error) {
	if env == "dev" || env == "test" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
