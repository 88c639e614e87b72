// Package logging provides the structured logger constructors used by a
// Keyspace's diagnostic hooks (Nop is the default when no Logger is
// configured); cmd/keyspacectl logs with the standard library. It wraps
// go.uber.org/zap the same way Voskan-arena-cache's pkg/config.go threads
// a *zap.Logger through its configuration: a thin field, never a package
// global, so multiple independent components can run with different
// loggers (or none).
package logging

import "go.uber.org/zap"

// New builds a production zap.Logger (JSON encoding, info level) suitable
// for a long-running CLI invocation. Callers that already have a logger
// should pass it directly instead of calling New.
func New() (*zap.Logger, error) {
	return zap.NewProduction()
}

// Nop returns a logger that discards everything, used when no Logger is
// configured.
func Nop() *zap.Logger { return zap.NewNop() }
