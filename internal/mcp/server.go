package mcp

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"oppscore_backend/internal/scores/service"
	"oppscore_backend/internal/scores/transport"
	"oppscore_backend/platform/apperr"
	"oppscore_backend/platform/logger"
	"oppscore_backend/platform/validator"
)

// Server dispatches JSON-RPC requests on the MCP endpoint into the scores
// service.
type Server struct {
	svc *service.Service
	val *validator.Validator
	log *logger.Logger
}

// NewServer creates the MCP protocol server.
func NewServer(svc *service.Service, val *validator.Validator, log *logger.Logger) *Server {
	return &Server{svc: svc, val: val, log: log}
}

// Handle processes one JSON-RPC message on POST /mcp.
func (s *Server) Handle(c *gin.Context) {
	var req rpcRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		c.JSON(http.StatusOK, errorResponse(nil, codeParseError, "parse error"))
		return
	}
	if req.JSONRPC != "2.0" || req.Method == "" {
		c.JSON(http.StatusOK, errorResponse(req.ID, codeInvalidRequest, "invalid request"))
		return
	}

	// Notifications get no response body.
	if req.isNotification() {
		c.Status(http.StatusAccepted)
		return
	}

	switch req.Method {
	case "initialize":
		c.JSON(http.StatusOK, resultResponse(req.ID, gin.H{
			"protocolVersion": protocolVersion,
			"capabilities":    gin.H{"tools": gin.H{"listChanged": false}},
			"serverInfo":      gin.H{"name": "business-opportunity-score", "version": "1.0.0"},
			"instructions":    serverInstructions,
		}))
	case "ping":
		c.JSON(http.StatusOK, resultResponse(req.ID, gin.H{}))
	case "tools/list":
		c.JSON(http.StatusOK, resultResponse(req.ID, gin.H{"tools": toolCatalog}))
	case "tools/call":
		c.JSON(http.StatusOK, s.handleToolCall(req))
	default:
		c.JSON(http.StatusOK, errorResponse(req.ID, codeMethodNotFound, "method not found: "+req.Method))
	}
}

func (s *Server) handleToolCall(req rpcRequest) rpcResponse {
	var params callParams
	if err := json.Unmarshal(req.Params, &params); err != nil || params.Name == "" {
		return errorResponse(req.ID, codeInvalidParams, "tools/call requires a tool name")
	}

	start := time.Now()
	payload, rpcErr := s.invoke(params.Name, params.Arguments)
	latency := float64(time.Since(start).Milliseconds())

	if rpcErr != nil {
		s.log.ToolCall(params.Name, "protocol_error", latency)
		return rpcResponse{JSONRPC: "2.0", ID: req.ID, Error: rpcErr}
	}

	text, err := json.Marshal(payload)
	if err != nil {
		s.log.ToolCall(params.Name, "encode_error", latency)
		return errorResponse(req.ID, codeInternalError, "failed to encode tool result")
	}

	s.log.ToolCall(params.Name, "ok", latency)
	return resultResponse(req.ID, toolResult{
		Content:           []contentBlock{{Type: "text", Text: string(text)}},
		StructuredContent: payload,
		IsError:           false,
	})
}

// invoke runs one tool. Domain conditions come back as payloads carrying the
// guidance fields; only protocol misuse produces an *rpcError.
func (s *Server) invoke(name string, args json.RawMessage) (interface{}, *rpcError) {
	switch name {
	case "get_opportunity_score":
		var req transport.GetScoreRequest
		if rpcErr := s.decodeArgs(args, &req); rpcErr != nil {
			return nil, rpcErr
		}
		result, err := s.svc.GetScore(req)
		if err != nil {
			return domainPayload(err)
		}
		return result, nil

	case "list_states":
		result, err := s.svc.ListStates()
		if err != nil {
			return domainPayload(err)
		}
		return result, nil

	case "list_corp_types":
		result, err := s.svc.ListCorpTypes()
		if err != nil {
			return domainPayload(err)
		}
		return result, nil

	case "list_emp_sizes":
		result, err := s.svc.ListEmpSizes()
		if err != nil {
			return domainPayload(err)
		}
		return result, nil

	case "compare_states":
		var req transport.CompareRequest
		if rpcErr := s.decodeArgs(args, &req); rpcErr != nil {
			return nil, rpcErr
		}
		result, err := s.svc.CompareStates(req)
		if err != nil {
			return domainPayload(err)
		}
		return result, nil

	case "top_states":
		var req transport.TopStatesRequest
		if rpcErr := s.decodeArgs(args, &req); rpcErr != nil {
			return nil, rpcErr
		}
		result, err := s.svc.TopStates(req)
		if err != nil {
			return domainPayload(err)
		}
		return result, nil
	}

	return nil, &rpcError{Code: codeInvalidParams, Message: "unknown tool: " + name}
}

func (s *Server) decodeArgs(args json.RawMessage, target interface{}) *rpcError {
	if len(args) > 0 {
		if err := json.Unmarshal(args, target); err != nil {
			return &rpcError{Code: codeInvalidParams, Message: "invalid tool arguments"}
		}
	}
	if err := s.val.Struct(target); err != nil {
		return &rpcError{Code: codeInvalidParams, Message: "invalid tool arguments", Data: err.Error()}
	}
	return nil
}

// domainPayload turns a typed domain error into the tool's guidance payload.
// Anything untyped is a protocol-level internal error.
func domainPayload(err error) (interface{}, *rpcError) {
	domainErr, ok := err.(*apperr.Error)
	if !ok {
		return nil, &rpcError{Code: codeInternalError, Message: err.Error()}
	}

	switch domainErr.Kind {
	case apperr.KindNotFound:
		payload := gin.H{"error": domainErr.Message}
		if details, ok := domainErr.Details.(transport.NotFoundDetails); ok {
			payload["suggestions"] = details.Suggestions
			payload["provided"] = details.Provided
		}
		return payload, nil
	case apperr.KindUnavailable:
		return gin.H{
			"error": domainErr.Message,
			"hint":  "Provide the score table export and restart the service",
		}, nil
	case apperr.KindValidation, apperr.KindBadRequest:
		return nil, &rpcError{Code: codeInvalidParams, Message: domainErr.Message}
	}
	return nil, &rpcError{Code: codeInternalError, Message: domainErr.Message}
}
