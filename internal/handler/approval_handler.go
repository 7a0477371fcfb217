package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Alkan41/yakit-takip-api/internal/dto"
	"github.com/Alkan41/yakit-takip-api/internal/middleware"
	"github.com/Alkan41/yakit-takip-api/internal/models"
	"github.com/Alkan41/yakit-takip-api/internal/service"
	"github.com/Alkan41/yakit-takip-api/pkg/response"
)

// ApprovalHandler serves the edit approval workflow.
type ApprovalHandler struct {
	approvals service.ApprovalService
}

// NewApprovalHandler builds the approval handler.
func NewApprovalHandler(approvals service.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{approvals: approvals}
}

// ListEditRequests godoc
// @Summary List pending edit requests
// @Tags approvals
// @Produce json
// @Success 200 {object} response.Envelope{data=[]models.ApprovalRequest}
// @Router /approvals [get]
func (h *ApprovalHandler) ListEditRequests(c *gin.Context) {
	requests, err := h.approvals.ListEditRequests(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, requests)
}

// SubmitEditRequest godoc
// @Summary Submit an edit request for approval
// @Tags approvals
// @Accept json
// @Produce json
// @Param request body dto.SubmitEditRequest true "Edit request"
// @Success 201 {object} response.Envelope{data=models.ApprovalRequest}
// @Failure 400 {object} response.Envelope "No effective changes"
// @Router /approvals [post]
func (h *ApprovalHandler) SubmitEditRequest(c *gin.Context) {
	var req dto.SubmitEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}
	created, err := h.approvals.SubmitEditRequest(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Approve godoc
// @Summary Approve an edit request
// @Tags approvals
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} response.Envelope{data=dto.ResolveOutcome}
// @Failure 410 {object} response.Envelope "Original record no longer exists"
// @Router /approvals/{id}/approve [post]
func (h *ApprovalHandler) Approve(c *gin.Context) {
	outcome, err := h.approvals.ApproveEditRequest(c.Request.Context(), c.Param("id"), middleware.ActorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, outcome)
}

// Reject godoc
// @Summary Reject an edit request
// @Tags approvals
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} response.Envelope{data=dto.ResolveOutcome}
// @Router /approvals/{id}/reject [post]
func (h *ApprovalHandler) Reject(c *gin.Context) {
	outcome, err := h.approvals.RejectEditRequest(c.Request.Context(), c.Param("id"), middleware.ActorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, outcome)
}

// ListPersonnelRequests godoc
// @Summary List pending personnel requests
// @Tags approvals
// @Produce json
// @Success 200 {object} response.Envelope{data=[]models.PersonnelApprovalRequest}
// @Router /personnel-approvals [get]
func (h *ApprovalHandler) ListPersonnelRequests(c *gin.Context) {
	requests, err := h.approvals.ListPersonnelRequests(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, requests)
}

// SubmitPersonnelRequest godoc
// @Summary Request adding a person to the roster
// @Tags approvals
// @Accept json
// @Produce json
// @Param request body models.PersonnelApprovalRequest true "Personnel request"
// @Success 201 {object} response.Envelope{data=models.PersonnelApprovalRequest}
// @Router /personnel-approvals [post]
func (h *ApprovalHandler) SubmitPersonnelRequest(c *gin.Context) {
	var req models.PersonnelApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}
	created, err := h.approvals.SubmitPersonnelRequest(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// ApprovePersonnel godoc
// @Summary Approve a personnel request
// @Tags approvals
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} response.Envelope{data=dto.PersonnelResolveOutcome}
// @Router /personnel-approvals/{id}/approve [post]
func (h *ApprovalHandler) ApprovePersonnel(c *gin.Context) {
	outcome, err := h.approvals.ApprovePersonnelRequest(c.Request.Context(), c.Param("id"), middleware.ActorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, outcome)
}

// RejectPersonnel godoc
// @Summary Reject a personnel request
// @Tags approvals
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} response.Envelope{data=dto.PersonnelResolveOutcome}
// @Router /personnel-approvals/{id}/reject [post]
func (h *ApprovalHandler) RejectPersonnel(c *gin.Context) {
	outcome, err := h.approvals.RejectPersonnelRequest(c.Request.Context(), c.Param("id"), middleware.ActorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, outcome)
}
