// Package environment carries the deployment mode (development, staging,
// production) through request contexts so middleware, error rendering and
// cookie policy can branch on it without extra plumbing.
package environment

import (
	"context"
	"log/slog"
	"strings"
)

// Environment is the deployment mode of the running process.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Parse normalizes a raw mode string. Unrecognized values resolve to
// Production so a misconfigured deployment fails closed: secure cookies
// on, error details redacted.
func Parse(raw string) Environment {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "development", "dev", "local":
		return Development
	case "staging", "stage":
		return Staging
	default:
		return Production
	}
}

// IsDevelopment reports whether e is the development mode.
func (e Environment) IsDevelopment() bool { return e == Development }

// IsProduction reports whether e is the production mode.
func (e Environment) IsProduction() bool { return e == Production }

func (e Environment) String() string { return string(e) }

type contextKey struct{}

// WithContext attaches the environment to ctx.
func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, contextKey{}, env)
}

// FromContext returns the environment stored in ctx. A context without
// one resolves to Production, mirroring Parse's fail-closed default.
func FromContext(ctx context.Context) Environment {
	if ctx == nil {
		return Production
	}
	if env, ok := ctx.Value(contextKey{}).(Environment); ok {
		return env
	}
	return Production
}

// LoggerExtractor injects the environment as an "env" attribute on every
// log record whose context carries one.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if ctx == nil {
			return slog.Attr{}, false
		}
		if env, ok := ctx.Value(contextKey{}).(Environment); ok {
			return slog.String("env", string(env)), true
		}
		return slog.Attr{}, false
	}
}
