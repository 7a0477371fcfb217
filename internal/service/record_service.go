package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Alkan41/yakit-takip-api/internal/dto"
	"github.com/Alkan41/yakit-takip-api/internal/models"
	"github.com/Alkan41/yakit-takip-api/internal/repository"
	apperrors "github.com/Alkan41/yakit-takip-api/pkg/errors"
	"github.com/Alkan41/yakit-takip-api/pkg/gate"
)

// RecordService owns fuel record entry, search and bulk maintenance.
type RecordService interface {
	List(ctx context.Context) ([]models.FuelRecord, error)
	Search(ctx context.Context, filter dto.RecordFilter) ([]models.FuelRecord, error)
	Add(ctx context.Context, rec models.FuelRecord, actor string) (models.FuelRecord, error)
	AddFromRow(ctx context.Context, row dto.RowObject, actor string) (models.FuelRecord, error)
	Import(ctx context.Context, rows []dto.RowObject, actor string) (int, error)
	BulkReplace(ctx context.Context, records []models.FuelRecord, actor string) error
}

type recordService struct {
	records repository.RecordRepository
	refs    repository.ReferenceRepository
	gate    gate.Gate
	audit   repository.AuditRepository
	cache   repository.CacheRepository
	metrics *MetricsService
	log     *zap.Logger
}

// NewRecordService wires the record service.
func NewRecordService(
	records repository.RecordRepository,
	refs repository.ReferenceRepository,
	g gate.Gate,
	audit repository.AuditRepository,
	cache repository.CacheRepository,
	metrics *MetricsService,
	log *zap.Logger,
) RecordService {
	return &recordService{
		records: records, refs: refs, gate: g,
		audit: audit, cache: cache, metrics: metrics, log: log,
	}
}

func (s *recordService) List(ctx context.Context) ([]models.FuelRecord, error) {
	return s.records.List(ctx)
}

func (s *recordService) Search(ctx context.Context, filter dto.RecordFilter) ([]models.FuelRecord, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]models.FuelRecord, 0, len(records))
	for _, rec := range records {
		if matchesFilter(rec, filter) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

func (s *recordService) Add(ctx context.Context, rec models.FuelRecord, actor string) (models.FuelRecord, error) {
	if err := s.validateNewRecord(ctx, rec); err != nil {
		return models.FuelRecord{}, err
	}
	if rec.RecordNo == "" {
		rec.RecordNo = models.NewRecordNumber(time.Now())
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	release, err := s.acquireGate(ctx)
	if err != nil {
		return models.FuelRecord{}, err
	}
	defer release()

	if err := s.records.Append(ctx, rec); err != nil {
		return models.FuelRecord{}, err
	}

	s.metrics.RecordCreated()
	emitAudit(ctx, s.audit, s.log, models.AuditRecordAdded, actor, rec.RecordNo, string(rec.Kind))
	invalidatePanelCache(ctx, s.cache, s.log)
	return rec, nil
}

// AddFromRow accepts a legacy payload keyed by sheet column headers.
func (s *recordService) AddFromRow(ctx context.Context, row dto.RowObject, actor string) (models.FuelRecord, error) {
	rec, err := models.FuelRecordFromSheetRow(row)
	if err != nil {
		return models.FuelRecord{}, apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, err.Error())
	}
	return s.Add(ctx, rec, actor)
}

// Import appends rows parsed out of an uploaded Excel file. Unreadable rows
// abort the import before anything is written, so a bad file never lands
// half way.
func (s *recordService) Import(ctx context.Context, rows []dto.RowObject, actor string) (int, error) {
	records := make([]models.FuelRecord, 0, len(rows))
	for i, row := range rows {
		rec, err := models.FuelRecordFromSheetRow(row)
		if err != nil {
			return 0, apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status,
				fmt.Sprintf("row %d: %v", i+1, err))
		}
		if rec.RecordNo == "" {
			rec.RecordNo = models.NewRecordNumber(time.Now())
		}
		records = append(records, rec)
	}

	release, err := s.acquireGate(ctx)
	if err != nil {
		return 0, err
	}
	defer release()

	if err := s.records.AppendMany(ctx, records); err != nil {
		return 0, err
	}

	s.metrics.RecordsImported(len(records))
	emitAudit(ctx, s.audit, s.log, models.AuditRecordsImported, actor, fmt.Sprintf("%d records", len(records)), "")
	invalidatePanelCache(ctx, s.cache, s.log)
	return len(records), nil
}

// BulkReplace rewrites the whole fuel records sheet, used by the admin
// panel's bulk maintenance.
func (s *recordService) BulkReplace(ctx context.Context, records []models.FuelRecord, actor string) error {
	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			return apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, err.Error())
		}
	}

	release, err := s.acquireGate(ctx)
	if err != nil {
		return err
	}
	defer release()

	if err := s.records.ReplaceAll(ctx, records); err != nil {
		return err
	}

	emitAudit(ctx, s.audit, s.log, models.AuditReferenceUpdated, actor, "fuelRecords", fmt.Sprintf("%d rows", len(records)))
	invalidatePanelCache(ctx, s.cache, s.log)
	return nil
}

func (s *recordService) acquireGate(ctx context.Context) (gate.Release, error) {
	release, err := s.gate.Acquire(ctx)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrLockBusy) {
			s.metrics.GateTimeout()
		}
		return nil, err
	}
	return release, nil
}

// validateNewRecord enforces the entry rules the form promises: a positive
// amount, the kind's own required fields, and a card number at military
// airports.
func (s *recordService) validateNewRecord(ctx context.Context, rec models.FuelRecord) error {
	if err := rec.Validate(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, err.Error())
	}
	if !rec.FuelAmount.IsPositive() {
		return validationError("yakıt miktarı sıfırdan büyük olmalıdır")
	}
	switch rec.Kind {
	case models.KindAircraftRefuel:
		if rec.Refuel.PersonnelName == "" {
			return validationError("personel adı zorunludur")
		}
		if rec.Refuel.TailNumber == "" {
			return validationError("kuyruk numarası zorunludur")
		}
		if rec.Refuel.Location == "" {
			return validationError("ikmal konumu zorunludur")
		}
		military, err := s.isMilitaryAirport(ctx, rec.Refuel.Location)
		if err != nil {
			return err
		}
		if military && rec.Refuel.CardNumber == "" {
			return validationError("askeri hava limanında kart numarası zorunludur")
		}
	case models.KindTankerFill:
		if rec.Fill.TankerPlate == "" {
			return validationError("tanker plakası zorunludur")
		}
		if rec.Fill.Airport == "" {
			return validationError("hava limanı zorunludur")
		}
	case models.KindTankerTransfer:
		if rec.Transfer.FillingPlate == "" || rec.Transfer.ReceivingPlate == "" {
			return validationError("veren ve alan tanker plakaları zorunludur")
		}
		if rec.Transfer.FillingPlate == rec.Transfer.ReceivingPlate {
			return validationError("veren ve alan tanker aynı olamaz")
		}
	}
	return nil
}

func (s *recordService) isMilitaryAirport(ctx context.Context, name string) (bool, error) {
	airports, err := s.refs.ListAirports(ctx)
	if err != nil {
		return false, err
	}
	for _, airport := range airports {
		if airport.Name == name {
			return airport.Type == models.AirportTypeMilitary, nil
		}
	}
	return false, nil
}

func validationError(message string) error {
	return apperrors.New(apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, message)
}

func matchesFilter(rec models.FuelRecord, filter dto.RecordFilter) bool {
	if filter.RecordNo != "" && !strings.Contains(rec.RecordNo, filter.RecordNo) {
		return false
	}
	if filter.Kind != "" && string(rec.Kind) != filter.Kind {
		return false
	}
	if filter.PersonnelName != "" && rec.DisplayName() != filter.PersonnelName {
		return false
	}
	if filter.Location != "" && rec.Location() != filter.Location {
		return false
	}
	if filter.ReceiptNo != "" && rec.ReceiptNo != filter.ReceiptNo {
		return false
	}
	if filter.TailNumber != "" {
		if rec.Refuel == nil || rec.Refuel.TailNumber != filter.TailNumber {
			return false
		}
	}
	if filter.TankerPlate != "" {
		if rec.Fill == nil || rec.Fill.TankerPlate != filter.TankerPlate {
			return false
		}
	}
	if filter.ReceivingPlate != "" {
		if rec.Transfer == nil || rec.Transfer.ReceivingPlate != filter.ReceivingPlate {
			return false
		}
	}
	if filter.FillingPlate != "" {
		if rec.Transfer == nil || rec.Transfer.FillingPlate != filter.FillingPlate {
			return false
		}
	}
	return withinDateRange(rec.Date, filter.StartDate, filter.EndDate)
}

func withinDateRange(date, start, end string) bool {
	day, ok := models.ParseSheetDate(date)
	if !ok {
		return false
	}
	if start != "" {
		if from, ok := models.ParseSheetDate(start); ok && day < from {
			return false
		}
	}
	if end != "" {
		if to, ok := models.ParseSheetDate(end); ok && day > to {
			return false
		}
	}
	return true
}
