// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"oppscore_backend/platform/config"
	"oppscore_backend/platform/logger"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.HTTPConfig
	config.RateLimitConfig
}

// TableStatus exposes minimal lookup index state for health checks.
type TableStatus interface {
	Loaded() bool
	Len() int
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration (HTTP and rate limit settings only).
	Config RouterConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Table is used for readiness/health checks (lookup table state).
	Table TableStatus
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
