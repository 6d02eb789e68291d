// Package handler exposes the scores REST endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"oppscore_backend/internal/scores/service"
	"oppscore_backend/internal/scores/transport"
	"oppscore_backend/platform/httpkit"
	"oppscore_backend/platform/validator"
)

// Handler handles HTTP requests for scores.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new scores handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes mounts the scores endpoints on the given group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("", h.GetScore)
	group.GET("/states", h.ListStates)
	group.GET("/corp-types", h.ListCorpTypes)
	group.GET("/emp-sizes", h.ListEmpSizes)
	group.POST("/compare", h.CompareStates)
	group.GET("/top", h.TopStates)
}

// GetScore retrieves the score for one combination.
// GET /api/v1/scores?state=&corp_type=&emp_size=
func (h *Handler) GetScore(c *gin.Context) {
	var req transport.GetScoreRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.GetScore(req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListStates retrieves the available states.
// GET /api/v1/scores/states
func (h *Handler) ListStates(c *gin.Context) {
	result, err := h.svc.ListStates()
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListCorpTypes retrieves the available corporation types.
// GET /api/v1/scores/corp-types
func (h *Handler) ListCorpTypes(c *gin.Context) {
	result, err := h.svc.ListCorpTypes()
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListEmpSizes retrieves the available employee size categories.
// GET /api/v1/scores/emp-sizes
func (h *Handler) ListEmpSizes(c *gin.Context) {
	result, err := h.svc.ListEmpSizes()
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CompareStates compares scores across states for one profile.
// POST /api/v1/scores/compare
func (h *Handler) CompareStates(c *gin.Context) {
	var req transport.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.CompareStates(req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// TopStates retrieves the best states for one profile.
// GET /api/v1/scores/top?corp_type=&emp_size=&n=
func (h *Handler) TopStates(c *gin.Context) {
	var req transport.TopStatesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.TopStates(req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
