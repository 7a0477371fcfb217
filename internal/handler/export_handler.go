package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Alkan41/yakit-takip-api/internal/dto"
	"github.com/Alkan41/yakit-takip-api/internal/service"
	apperrors "github.com/Alkan41/yakit-takip-api/pkg/errors"
	"github.com/Alkan41/yakit-takip-api/pkg/response"
)

// ExportHandler serves record downloads.
type ExportHandler struct {
	exports service.ExportService
}

// NewExportHandler builds the export handler.
func NewExportHandler(exports service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Records godoc
// @Summary Export fuel records as csv, xlsx or pdf
// @Tags exports
// @Produce octet-stream
// @Param format query string true "csv, xlsx or pdf"
// @Param recordType query string false "Record kind filter"
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /exports/records [get]
func (h *ExportHandler) Records(c *gin.Context) {
	var filter dto.RecordFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, "invalid export filter"))
		return
	}
	format := c.DefaultQuery("format", service.FormatCSV)

	file, err := h.exports.ExportRecords(c.Request.Context(), format, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
