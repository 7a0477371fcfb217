package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Alkan41/yakit-takip-api/internal/dto"
	"github.com/Alkan41/yakit-takip-api/internal/middleware"
	"github.com/Alkan41/yakit-takip-api/internal/service"
	"github.com/Alkan41/yakit-takip-api/pkg/response"
)

// ReferenceHandler serves the admin panel snapshot and reference sheet
// maintenance.
type ReferenceHandler struct {
	refs service.ReferenceService
}

// NewReferenceHandler builds the reference handler.
func NewReferenceHandler(refs service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{refs: refs}
}

// Panel godoc
// @Summary Admin panel bootstrap snapshot
// @Tags references
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.PanelData}
// @Router /panel [get]
func (h *ReferenceHandler) Panel(c *gin.Context) {
	panel, err := h.refs.PanelData(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, panel)
}

// BulkUpdate godoc
// @Summary Rewrite reference sheets
// @Tags references
// @Accept json
// @Produce json
// @Param payload body dto.BulkUpdatePayload true "Datasets to rewrite"
// @Success 200 {object} response.Envelope
// @Router /references [put]
func (h *ReferenceHandler) BulkUpdate(c *gin.Context) {
	var payload dto.BulkUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, bindingError(err))
		return
	}
	if err := h.refs.BulkUpdate(c.Request.Context(), payload, middleware.ActorFrom(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": service.MsgBulkUpdateDone})
}

// AddAdmin godoc
// @Summary Add an admin account
// @Tags references
// @Accept json
// @Produce json
// @Param admin body dto.AdminUpsert true "New admin"
// @Success 201 {object} response.Envelope{data=models.AdminInfo}
// @Failure 409 {object} response.Envelope
// @Router /admins [post]
func (h *ReferenceHandler) AddAdmin(c *gin.Context) {
	var admin dto.AdminUpsert
	if err := c.ShouldBindJSON(&admin); err != nil {
		response.Error(c, bindingError(err))
		return
	}
	info, err := h.refs.AddAdmin(c.Request.Context(), admin, middleware.ActorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, info)
}

// DeleteAdmin godoc
// @Summary Delete an admin account
// @Tags references
// @Produce json
// @Param id path string true "Admin ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admins/{id} [delete]
func (h *ReferenceHandler) DeleteAdmin(c *gin.Context) {
	if err := h.refs.DeleteAdmin(c.Request.Context(), c.Param("id"), middleware.ActorFrom(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": c.Param("id")})
}
