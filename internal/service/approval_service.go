package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Alkan41/yakit-takip-api/internal/diff"
	"github.com/Alkan41/yakit-takip-api/internal/dto"
	"github.com/Alkan41/yakit-takip-api/internal/match"
	"github.com/Alkan41/yakit-takip-api/internal/models"
	"github.com/Alkan41/yakit-takip-api/internal/repository"
	apperrors "github.com/Alkan41/yakit-takip-api/pkg/errors"
	"github.com/Alkan41/yakit-takip-api/pkg/gate"
)

// User-facing resolution messages, kept verbatim from the legacy backend so
// the frontend's toasts read the same.
const (
	MsgEditRequestSubmitted     = "Onay talebi başarıyla eklendi."
	MsgEditRequestApproved      = "Talep onaylandı ve kayıt başarıyla güncellendi."
	MsgEditRequestRejected      = "Talep reddedildi."
	MsgEditRequestProcessed     = "Talep zaten işlenmiş veya bulunamadı. Veriler yenileniyor."
	MsgPersonnelApproved        = "Personel onaylandı ve listeye eklendi."
	MsgPersonnelRejected        = "Personel talebi reddedildi."
	MsgPersonnelAlreadyHandled  = "Personel talebi zaten işlenmiş."
	MsgPersonnelRequestAccepted = "Personel talebi başarıyla eklendi."
)

// ApprovalService runs the edit approval workflow: submission, approval with
// record matching and merge, rejection, and the personnel variant.
type ApprovalService interface {
	ListEditRequests(ctx context.Context) ([]models.ApprovalRequest, error)
	ListPersonnelRequests(ctx context.Context) ([]models.PersonnelApprovalRequest, error)

	SubmitEditRequest(ctx context.Context, req dto.SubmitEditRequest) (models.ApprovalRequest, error)
	SubmitPersonnelRequest(ctx context.Context, req models.PersonnelApprovalRequest) (models.PersonnelApprovalRequest, error)

	ApproveEditRequest(ctx context.Context, requestID, actor string) (dto.ResolveOutcome, error)
	RejectEditRequest(ctx context.Context, requestID, actor string) (dto.ResolveOutcome, error)
	ApprovePersonnelRequest(ctx context.Context, requestID, actor string) (dto.PersonnelResolveOutcome, error)
	RejectPersonnelRequest(ctx context.Context, requestID, actor string) (dto.PersonnelResolveOutcome, error)
}

type approvalService struct {
	records   repository.RecordRepository
	approvals repository.ApprovalRepository
	refs      repository.ReferenceRepository
	gate      gate.Gate
	audit     repository.AuditRepository
	cache     repository.CacheRepository
	metrics   *MetricsService
	log       *zap.Logger
}

// NewApprovalService wires the approval workflow service.
func NewApprovalService(
	records repository.RecordRepository,
	approvals repository.ApprovalRepository,
	refs repository.ReferenceRepository,
	g gate.Gate,
	audit repository.AuditRepository,
	cache repository.CacheRepository,
	metrics *MetricsService,
	log *zap.Logger,
) ApprovalService {
	return &approvalService{
		records: records, approvals: approvals, refs: refs, gate: g,
		audit: audit, cache: cache, metrics: metrics, log: log,
	}
}

func (s *approvalService) ListEditRequests(ctx context.Context) ([]models.ApprovalRequest, error) {
	return s.approvals.ListEditRequests(ctx)
}

func (s *approvalService) ListPersonnelRequests(ctx context.Context) ([]models.PersonnelApprovalRequest, error) {
	return s.approvals.ListPersonnelRequests(ctx)
}

// SubmitEditRequest validates and stores a pending edit. The change set is
// recomputed server side against the submitted snapshot, so cosmetic
// formatting differences never become a pending request.
func (s *approvalService) SubmitEditRequest(ctx context.Context, req dto.SubmitEditRequest) (models.ApprovalRequest, error) {
	if err := req.OriginalRecord.Validate(); err != nil {
		return models.ApprovalRequest{}, apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, err.Error())
	}

	merged := req.OriginalRecord.ApplyChanges(req.RequestedChanges)
	effective := diff.Changes(req.OriginalRecord, merged)
	if len(effective) == 0 {
		return models.ApprovalRequest{}, apperrors.ErrNoChanges
	}

	request := models.ApprovalRequest{
		ID:               req.ID,
		OriginalRecord:   req.OriginalRecord,
		RequestedChanges: effective,
		RequesterName:    req.RequesterName,
		Timestamp:        req.Timestamp,
	}
	if request.ID == "" {
		request.ID = "edit-req-" + uuid.NewString()
	}
	if request.Timestamp == "" {
		request.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	release, err := s.acquireGate(ctx)
	if err != nil {
		return models.ApprovalRequest{}, err
	}
	defer release()

	if err := s.approvals.AppendEditRequest(ctx, request); err != nil {
		return models.ApprovalRequest{}, err
	}

	s.metrics.EditRequestSubmitted()
	emitAudit(ctx, s.audit, s.log, models.AuditEditRequested, request.RequesterName,
		request.OriginalRecord.RecordNo, changedFieldNames(effective))
	return request, nil
}

func (s *approvalService) SubmitPersonnelRequest(ctx context.Context, req models.PersonnelApprovalRequest) (models.PersonnelApprovalRequest, error) {
	if req.Name == "" || req.Job == "" {
		return models.PersonnelApprovalRequest{}, apperrors.New(
			apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, "ad ve meslek zorunludur")
	}
	if req.ID == "" {
		req.ID = "personnel-req-" + uuid.NewString()
	}
	if req.Timestamp == "" {
		req.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	release, err := s.acquireGate(ctx)
	if err != nil {
		return models.PersonnelApprovalRequest{}, err
	}
	defer release()

	if err := s.approvals.AppendPersonnelRequest(ctx, req); err != nil {
		return models.PersonnelApprovalRequest{}, err
	}
	return req, nil
}

// ApproveEditRequest applies a pending edit to the live record. The request
// is looked up fresh; a request resolved by another admin in the meantime is
// reported as already processed, not as a failure. A missing live record is
// fatal for the request: it is discarded and the caller gets an error.
func (s *approvalService) ApproveEditRequest(ctx context.Context, requestID, actor string) (dto.ResolveOutcome, error) {
	release, err := s.acquireGate(ctx)
	if err != nil {
		return dto.ResolveOutcome{}, err
	}
	defer release()

	req, requestRow, found, err := s.approvals.FindEditRequest(ctx, requestID)
	if err != nil {
		return dto.ResolveOutcome{}, err
	}
	if !found {
		s.metrics.ApprovalResolved(OutcomeAlreadyProcessed)
		return s.alreadyProcessedOutcome(ctx)
	}

	records, err := s.records.List(ctx)
	if err != nil {
		return dto.ResolveOutcome{}, err
	}

	live, ok := match.Find(req.OriginalRecord, records)
	if !ok {
		// The record was deleted or never persisted. The request cannot be
		// reconciled, so it is dropped before the error propagates.
		if err := s.approvals.DeleteEditRequest(ctx, requestRow); err != nil {
			return dto.ResolveOutcome{}, err
		}
		s.metrics.ApprovalResolved(OutcomeStaleRecord)
		emitAudit(ctx, s.audit, s.log, models.AuditEditRejected, actor, req.OriginalRecord.RecordNo, "stale record")
		return dto.ResolveOutcome{}, apperrors.ErrStaleRecord
	}

	merged := live.ApplyChanges(req.RequestedChanges)
	if err := s.records.Update(ctx, merged); err != nil {
		return dto.ResolveOutcome{}, err
	}
	if err := s.approvals.DeleteEditRequest(ctx, requestRow); err != nil {
		return dto.ResolveOutcome{}, err
	}

	s.metrics.ApprovalResolved(OutcomeApproved)
	emitAudit(ctx, s.audit, s.log, models.AuditEditApproved, actor, live.RecordNo, changedFieldNames(req.RequestedChanges))
	invalidatePanelCache(ctx, s.cache, s.log)

	snapshot, err := s.approvalSnapshot(ctx)
	if err != nil {
		return dto.ResolveOutcome{}, err
	}
	return dto.ResolveOutcome{Message: MsgEditRequestApproved, Snapshot: snapshot}, nil
}

// RejectEditRequest drops a pending edit without touching the record.
// Rejecting an already resolved request is a no-op.
func (s *approvalService) RejectEditRequest(ctx context.Context, requestID, actor string) (dto.ResolveOutcome, error) {
	release, err := s.acquireGate(ctx)
	if err != nil {
		return dto.ResolveOutcome{}, err
	}
	defer release()

	req, requestRow, found, err := s.approvals.FindEditRequest(ctx, requestID)
	if err != nil {
		return dto.ResolveOutcome{}, err
	}
	if found {
		if err := s.approvals.DeleteEditRequest(ctx, requestRow); err != nil {
			return dto.ResolveOutcome{}, err
		}
		s.metrics.ApprovalResolved(OutcomeRejected)
		emitAudit(ctx, s.audit, s.log, models.AuditEditRejected, actor, req.OriginalRecord.RecordNo, "")
		invalidatePanelCache(ctx, s.cache, s.log)
	} else {
		s.metrics.ApprovalResolved(OutcomeAlreadyProcessed)
	}

	snapshot, err := s.approvalSnapshot(ctx)
	if err != nil {
		return dto.ResolveOutcome{}, err
	}
	return dto.ResolveOutcome{
		AlreadyProcessed: !found,
		Message:          MsgEditRequestRejected,
		Snapshot:         snapshot,
	}, nil
}

func (s *approvalService) ApprovePersonnelRequest(ctx context.Context, requestID, actor string) (dto.PersonnelResolveOutcome, error) {
	release, err := s.acquireGate(ctx)
	if err != nil {
		return dto.PersonnelResolveOutcome{}, err
	}
	defer release()

	req, requestRow, found, err := s.approvals.FindPersonnelRequest(ctx, requestID)
	if err != nil {
		return dto.PersonnelResolveOutcome{}, err
	}
	if !found {
		snapshot, err := s.personnelSnapshot(ctx)
		if err != nil {
			return dto.PersonnelResolveOutcome{}, err
		}
		return dto.PersonnelResolveOutcome{
			AlreadyProcessed: true,
			Message:          MsgPersonnelAlreadyHandled,
			Snapshot:         snapshot,
		}, nil
	}

	person := models.Personnel{ID: req.ID, Name: req.Name, Job: req.Job}
	if person.ID == "" {
		person.ID = fmt.Sprintf("p%d", time.Now().UnixMilli())
	}
	if err := s.refs.AppendPersonnel(ctx, person); err != nil {
		return dto.PersonnelResolveOutcome{}, err
	}
	if err := s.approvals.DeletePersonnelRequest(ctx, requestRow); err != nil {
		return dto.PersonnelResolveOutcome{}, err
	}

	emitAudit(ctx, s.audit, s.log, models.AuditPersonnelApproved, actor, person.Name, person.Job)
	invalidatePanelCache(ctx, s.cache, s.log)

	snapshot, err := s.personnelSnapshot(ctx)
	if err != nil {
		return dto.PersonnelResolveOutcome{}, err
	}
	return dto.PersonnelResolveOutcome{Message: MsgPersonnelApproved, Snapshot: snapshot}, nil
}

func (s *approvalService) RejectPersonnelRequest(ctx context.Context, requestID, actor string) (dto.PersonnelResolveOutcome, error) {
	release, err := s.acquireGate(ctx)
	if err != nil {
		return dto.PersonnelResolveOutcome{}, err
	}
	defer release()

	req, requestRow, found, err := s.approvals.FindPersonnelRequest(ctx, requestID)
	if err != nil {
		return dto.PersonnelResolveOutcome{}, err
	}
	if found {
		if err := s.approvals.DeletePersonnelRequest(ctx, requestRow); err != nil {
			return dto.PersonnelResolveOutcome{}, err
		}
		emitAudit(ctx, s.audit, s.log, models.AuditPersonnelRejected, actor, req.Name, req.Job)
	}

	snapshot, err := s.personnelSnapshot(ctx)
	if err != nil {
		return dto.PersonnelResolveOutcome{}, err
	}
	return dto.PersonnelResolveOutcome{
		AlreadyProcessed: !found,
		Message:          MsgPersonnelRejected,
		Snapshot:         snapshot,
	}, nil
}

func (s *approvalService) alreadyProcessedOutcome(ctx context.Context) (dto.ResolveOutcome, error) {
	snapshot, err := s.approvalSnapshot(ctx)
	if err != nil {
		return dto.ResolveOutcome{}, err
	}
	return dto.ResolveOutcome{
		AlreadyProcessed: true,
		Message:          MsgEditRequestProcessed,
		Snapshot:         snapshot,
	}, nil
}

func (s *approvalService) approvalSnapshot(ctx context.Context) (dto.ApprovalSnapshot, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return dto.ApprovalSnapshot{}, err
	}
	requests, err := s.approvals.ListEditRequests(ctx)
	if err != nil {
		return dto.ApprovalSnapshot{}, err
	}
	return dto.ApprovalSnapshot{FuelRecords: records, ApprovalRequests: requests}, nil
}

func (s *approvalService) personnelSnapshot(ctx context.Context) (dto.PersonnelSnapshot, error) {
	personnel, err := s.refs.ListPersonnel(ctx)
	if err != nil {
		return dto.PersonnelSnapshot{}, err
	}
	requests, err := s.approvals.ListPersonnelRequests(ctx)
	if err != nil {
		return dto.PersonnelSnapshot{}, err
	}
	return dto.PersonnelSnapshot{PersonnelList: personnel, PersonnelApprovalRequests: requests}, nil
}

func (s *approvalService) acquireGate(ctx context.Context) (gate.Release, error) {
	release, err := s.gate.Acquire(ctx)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrLockBusy) {
			s.metrics.GateTimeout()
		}
		return nil, err
	}
	return release, nil
}

func changedFieldNames(changes models.ChangeSet) string {
	names := make([]string, 0, len(changes))
	for field := range changes {
		names = append(names, field)
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}
