// Package handler exposes the administrative lead endpoints.
package handler

import (
	"net/http"

	"leadqualify_backend/internal/leads/service"
	"leadqualify_backend/internal/leads/transport"
	"leadqualify_backend/platform/httpkit"
	"leadqualify_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	errInvalidRequest = "invalid request body"
	errValidation     = "validation error"
)

// Handler handles admin lead HTTP requests.
type Handler struct {
	service *service.Service
	val     *validator.Validator
}

// New creates a new leads handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{service: svc, val: val}
}

// RegisterRoutes mounts the admin lead routes on the provided group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("", h.HandleCreate)
	group.GET("", h.HandleList)
	group.GET("/:phone", h.HandleGet)
	group.GET("/:phone/messages", h.HandleMessages)
	group.PATCH("/:phone/notes", h.HandlePatchNotes)
	group.POST("/:phone/reply", h.HandleAgentReply)
}

// HandleCreate registers a lead manually.
// POST /api/v1/admin/leads
func (h *Handler) HandleCreate(c *gin.Context) {
	var req transport.CreateLeadRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, resp)
}

// HandleList lists all leads.
// GET /api/v1/admin/leads
func (h *Handler) HandleList(c *gin.Context) {
	leads, err := h.service.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, leads)
}

// HandleGet returns one lead.
// GET /api/v1/admin/leads/:phone
func (h *Handler) HandleGet(c *gin.Context) {
	resp, err := h.service.Get(c.Request.Context(), c.Param("phone"))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}

// HandleMessages returns the conversation history for a lead.
// GET /api/v1/admin/leads/:phone/messages
func (h *Handler) HandleMessages(c *gin.Context) {
	messages, err := h.service.Messages(c.Request.Context(), c.Param("phone"))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, messages)
}

// HandlePatchNotes sets the agent notes on a lead.
// PATCH /api/v1/admin/leads/:phone/notes
func (h *Handler) HandlePatchNotes(c *gin.Context) {
	var req transport.PatchNotesRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	if err := h.service.PatchNotes(c.Request.Context(), c.Param("phone"), req); httpkit.HandleError(c, err) {
		return
	}

	c.Status(http.StatusNoContent)
}

// HandleAgentReply sends a human reply to a lead.
// POST /api/v1/admin/leads/:phone/reply
func (h *Handler) HandleAgentReply(c *gin.Context) {
	var req transport.AgentReplyRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	if err := h.service.AgentReply(c.Request.Context(), c.Param("phone"), req); httpkit.HandleError(c, err) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "reply sent"})
}

func (h *Handler) bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, errInvalidRequest, err.Error())
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, errValidation, err.Error())
		return false
	}
	return true
}
