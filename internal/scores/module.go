// Package scores provides the opportunity score bounded context module.
// This file defines the module that encapsulates all scores setup.
package scores

import (
	apphttp "oppscore_backend/internal/http"
	"oppscore_backend/internal/scores/domain"
	"oppscore_backend/internal/scores/handler"
	"oppscore_backend/internal/scores/service"
	"oppscore_backend/platform/logger"
	"oppscore_backend/platform/validator"
)

// Module is the scores bounded context module.
type Module struct {
	service *service.Service
	handler *handler.Handler
}

// NewModule creates and initializes the scores module over an already built
// lookup index.
func NewModule(index *domain.Index, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(index, log)
	h := handler.New(svc, val)
	return &Module{service: svc, handler: h}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "scores"
}

// RegisterRoutes mounts the scores REST routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/scores"))
}

// Service returns the scores service for the MCP transport module.
func (m *Module) Service() *service.Service {
	return m.service
}

var _ apphttp.Module = (*Module)(nil)
