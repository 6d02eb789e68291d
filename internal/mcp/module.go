package mcp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apphttp "oppscore_backend/internal/http"
	"oppscore_backend/internal/scores/service"
	"oppscore_backend/platform/logger"
	"oppscore_backend/platform/validator"
)

// Module is the MCP transport module.
type Module struct {
	server *Server
}

// NewModule creates the MCP module over the scores service.
func NewModule(svc *service.Service, val *validator.Validator, log *logger.Logger) *Module {
	return &Module{server: NewServer(svc, val, log)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "mcp"
}

// RegisterRoutes mounts the MCP endpoint at the engine root.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Engine.POST("/mcp", m.server.Handle)
	// server-initiated streams are not supported
	ctx.Engine.GET("/mcp", func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "use POST for MCP requests"})
	})
}

var _ apphttp.Module = (*Module)(nil)
