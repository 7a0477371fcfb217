// Package handler wires HTTP routes onto the services. Two surfaces live
// here: the legacy single-endpoint RPC the deployed frontend speaks, and the
// REST routes that replace it.
package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Alkan41/yakit-takip-api/internal/dto"
	"github.com/Alkan41/yakit-takip-api/internal/middleware"
	"github.com/Alkan41/yakit-takip-api/internal/models"
	"github.com/Alkan41/yakit-takip-api/internal/service"
	apperrors "github.com/Alkan41/yakit-takip-api/pkg/errors"
)

// Legacy messages for actions handled outside the approval service.
const (
	msgRecordAdded = "Kayıt başarıyla eklendi."
	msgStaleRecord = "Güncellenecek orijinal yakıt kaydı bulunamadı. Talep iptal edildi."
	msgStoreBusy   = "Sistem şu anda meşgul, lütfen tekrar deneyin."
)

// RPCHandler serves the legacy action envelope on a single POST route. All
// responses go out with HTTP 200; the envelope carries the outcome, exactly
// as the old backend behaved.
type RPCHandler struct {
	records   service.RecordService
	approvals service.ApprovalService
	refs      service.ReferenceService
	log       *zap.Logger
}

// NewRPCHandler builds the legacy RPC handler.
func NewRPCHandler(
	records service.RecordService,
	approvals service.ApprovalService,
	refs service.ReferenceService,
	log *zap.Logger,
) *RPCHandler {
	return &RPCHandler{records: records, approvals: approvals, refs: refs, log: log}
}

// Handle dispatches one RPC envelope.
func (h *RPCHandler) Handle(c *gin.Context) {
	var req dto.RPCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, dto.RPCError("Sunucuya geçersiz bir istek gönderildi. İstek gövdesi boş."))
		return
	}

	resp := h.dispatch(c, req)
	c.JSON(http.StatusOK, resp)
}

func (h *RPCHandler) dispatch(c *gin.Context, req dto.RPCRequest) dto.RPCResponse {
	ctx := c.Request.Context()
	actor := middleware.ActorFrom(c)

	switch req.Action {
	case dto.ActionGetAdminPanelData:
		panel, err := h.refs.PanelData(ctx)
		if err != nil {
			return h.errorResponse(req.Action, err)
		}
		return dto.RPCSuccess("", panel)

	case dto.ActionGetApprovalRequests:
		requests, err := h.approvals.ListEditRequests(ctx)
		if err != nil {
			return h.errorResponse(req.Action, err)
		}
		return dto.RPCSuccess("", requests)

	case dto.ActionGetPersonnelApprovalRequests:
		requests, err := h.approvals.ListPersonnelRequests(ctx)
		if err != nil {
			return h.errorResponse(req.Action, err)
		}
		return dto.RPCSuccess("", requests)

	case dto.ActionAddRecord:
		var row dto.RowObject
		if err := unmarshalPayload(req.Payload, &row); err != nil {
			return h.errorResponse(req.Action, err)
		}
		if _, err := h.records.AddFromRow(ctx, row, actor); err != nil {
			return h.errorResponse(req.Action, err)
		}
		return dto.RPCSuccess(msgRecordAdded, nil)

	case dto.ActionAddPersonnelRequest:
		var preq models.PersonnelApprovalRequest
		if err := unmarshalPayload(req.Payload, &preq); err != nil {
			return h.errorResponse(req.Action, err)
		}
		if _, err := h.approvals.SubmitPersonnelRequest(ctx, preq); err != nil {
			return h.errorResponse(req.Action, err)
		}
		return dto.RPCSuccess(service.MsgPersonnelRequestAccepted, nil)

	case dto.ActionAddApprovalRequest:
		var submit dto.SubmitEditRequest
		if err := unmarshalPayload(req.Payload, &submit); err != nil {
			return h.errorResponse(req.Action, err)
		}
		if _, err := h.approvals.SubmitEditRequest(ctx, submit); err != nil {
			return h.errorResponse(req.Action, err)
		}
		return dto.RPCSuccess(service.MsgEditRequestSubmitted, nil)

	case dto.ActionBulkUpdate:
		var payload dto.BulkUpdatePayload
		if err := unmarshalPayload(req.Payload, &payload); err != nil {
			return h.errorResponse(req.Action, err)
		}
		if err := h.refs.BulkUpdate(ctx, payload, actor); err != nil {
			return h.errorResponse(req.Action, err)
		}
		return dto.RPCSuccess(service.MsgBulkUpdateDone, nil)

	case dto.ActionApproveRequest:
		var payload dto.ResolveRequestPayload
		if err := unmarshalPayload(req.Payload, &payload); err != nil {
			return h.errorResponse(req.Action, err)
		}
		outcome, err := h.approvals.ApproveEditRequest(ctx, payload.RequestID, actor)
		if err != nil {
			return h.errorResponse(req.Action, err)
		}
		if outcome.AlreadyProcessed {
			// The legacy backend reported this inside a success envelope
			// with the success flag lowered.
			resp := dto.RPCSuccess(outcome.Message, outcome.Snapshot)
			resp.Success = false
			return resp
		}
		return dto.RPCSuccess(outcome.Message, outcome.Snapshot)

	case dto.ActionRejectRequest:
		var payload dto.ResolveRequestPayload
		if err := unmarshalPayload(req.Payload, &payload); err != nil {
			return h.errorResponse(req.Action, err)
		}
		outcome, err := h.approvals.RejectEditRequest(ctx, payload.RequestID, actor)
		if err != nil {
			return h.errorResponse(req.Action, err)
		}
		return dto.RPCSuccess(outcome.Message, outcome.Snapshot)

	case dto.ActionApprovePersonnelRequest:
		var payload dto.ResolveRequestPayload
		if err := unmarshalPayload(req.Payload, &payload); err != nil {
			return h.errorResponse(req.Action, err)
		}
		outcome, err := h.approvals.ApprovePersonnelRequest(ctx, payload.RequestID, actor)
		if err != nil {
			return h.errorResponse(req.Action, err)
		}
		return dto.RPCSuccess(outcome.Message, outcome.Snapshot)

	case dto.ActionRejectPersonnelRequest:
		var payload dto.ResolveRequestPayload
		if err := unmarshalPayload(req.Payload, &payload); err != nil {
			return h.errorResponse(req.Action, err)
		}
		outcome, err := h.approvals.RejectPersonnelRequest(ctx, payload.RequestID, actor)
		if err != nil {
			return h.errorResponse(req.Action, err)
		}
		return dto.RPCSuccess(outcome.Message, outcome.Snapshot)

	default:
		return dto.RPCError(fmt.Sprintf("Bilinmeyen eylem (Unknown action): %s", req.Action))
	}
}

func (h *RPCHandler) errorResponse(action string, err error) dto.RPCResponse {
	h.log.Warn("rpc action failed", zap.String("action", action), zap.Error(err))
	switch {
	case apperrors.Is(err, apperrors.ErrStaleRecord):
		return dto.RPCError(msgStaleRecord)
	case apperrors.Is(err, apperrors.ErrLockBusy):
		return dto.RPCError(msgStoreBusy)
	default:
		return dto.RPCError(apperrors.FromError(err).Message)
	}
}

func unmarshalPayload(payload json.RawMessage, dest interface{}) error {
	if len(payload) == 0 {
		return apperrors.New(apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, "eksik istek verisi (payload)")
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, "istek verisi çözümlenemedi")
	}
	return nil
}
