package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Alkan41/yakit-takip-api/internal/dto"
	"github.com/Alkan41/yakit-takip-api/internal/middleware"
	"github.com/Alkan41/yakit-takip-api/internal/models"
	"github.com/Alkan41/yakit-takip-api/internal/service"
	apperrors "github.com/Alkan41/yakit-takip-api/pkg/errors"
	"github.com/Alkan41/yakit-takip-api/pkg/response"
)

// RecordHandler serves fuel record entry and search.
type RecordHandler struct {
	records service.RecordService
}

// NewRecordHandler builds the record handler.
func NewRecordHandler(records service.RecordService) *RecordHandler {
	return &RecordHandler{records: records}
}

// List godoc
// @Summary List all fuel records
// @Tags records
// @Produce json
// @Success 200 {object} response.Envelope{data=[]models.FuelRecord}
// @Router /records [get]
func (h *RecordHandler) List(c *gin.Context) {
	records, err := h.records.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, records)
}

// Search godoc
// @Summary Search fuel records
// @Tags records
// @Produce json
// @Param recordType query string false "Record kind"
// @Param personnelName query string false "Personnel name"
// @Param startDate query string false "Inclusive start day"
// @Param endDate query string false "Inclusive end day"
// @Success 200 {object} response.Envelope{data=[]models.FuelRecord}
// @Router /records/search [get]
func (h *RecordHandler) Search(c *gin.Context) {
	var filter dto.RecordFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, "invalid search filter"))
		return
	}
	records, err := h.records.Search(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, records)
}

// Create godoc
// @Summary Add a fuel record
// @Tags records
// @Accept json
// @Produce json
// @Param record body models.FuelRecord true "Fuel record"
// @Success 201 {object} response.Envelope{data=models.FuelRecord}
// @Failure 400 {object} response.Envelope
// @Router /records [post]
func (h *RecordHandler) Create(c *gin.Context) {
	var rec models.FuelRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		response.Error(c, bindingError(err))
		return
	}
	added, err := h.records.Add(c.Request.Context(), rec, middleware.ActorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, added)
}

// Import godoc
// @Summary Import fuel records from parsed spreadsheet rows
// @Tags records
// @Accept json
// @Produce json
// @Param rows body dto.ImportRecordsRequest true "Sheet rows"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /records/import [post]
func (h *RecordHandler) Import(c *gin.Context) {
	var req dto.ImportRecordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}
	count, err := h.records.Import(c.Request.Context(), req.Rows, middleware.ActorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"imported": count})
}

// BulkReplace godoc
// @Summary Replace the whole fuel record sheet
// @Tags records
// @Accept json
// @Produce json
// @Param records body []models.FuelRecord true "Full record set"
// @Success 200 {object} response.Envelope
// @Router /records [put]
func (h *RecordHandler) BulkReplace(c *gin.Context) {
	var records []models.FuelRecord
	if err := c.ShouldBindJSON(&records); err != nil {
		response.Error(c, bindingError(err))
		return
	}
	if err := h.records.BulkReplace(c.Request.Context(), records, middleware.ActorFrom(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"replaced": len(records)})
}
