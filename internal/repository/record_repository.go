package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Alkan41/yakit-takip-api/internal/models"
	"github.com/Alkan41/yakit-takip-api/pkg/workbook"
)

// RecordRepository reads and writes the fuel records sheet.
type RecordRepository interface {
	List(ctx context.Context) ([]models.FuelRecord, error)
	Append(ctx context.Context, rec models.FuelRecord) error
	AppendMany(ctx context.Context, recs []models.FuelRecord) error
	Update(ctx context.Context, rec models.FuelRecord) error
	ReplaceAll(ctx context.Context, recs []models.FuelRecord) error
}

type recordRepository struct {
	wb  *workbook.Workbook
	log *zap.Logger
}

// NewRecordRepository builds the sheet-backed record repository.
func NewRecordRepository(wb *workbook.Workbook, log *zap.Logger) RecordRepository {
	return &recordRepository{wb: wb, log: log}
}

// List returns all parseable fuel records in sheet order. Rows with an
// unknown kind or unusable date are skipped with a warning rather than
// failing the whole read, since legacy sheets carry hand-entered rows.
func (r *recordRepository) List(ctx context.Context) ([]models.FuelRecord, error) {
	rows, err := r.wb.Rows(SheetFuelRecords)
	if err != nil {
		return nil, fmt.Errorf("list fuel records: %w", err)
	}
	records := make([]models.FuelRecord, 0, len(rows))
	for i, row := range rows {
		rec, err := models.FuelRecordFromSheetRow(row)
		if err != nil {
			r.log.Warn("skipping unreadable fuel record row",
				zap.Int("row", i+workbook.FirstDataRow),
				zap.Error(err))
			continue
		}
		rec.SheetRow = i + workbook.FirstDataRow
		records = append(records, rec)
	}
	return records, nil
}

// Append adds one record at the bottom of the sheet.
func (r *recordRepository) Append(ctx context.Context, rec models.FuelRecord) error {
	if err := r.wb.Append(SheetFuelRecords, models.FuelRecordColumns(), rec.ToSheetRow()); err != nil {
		return fmt.Errorf("append fuel record %s: %w", rec.RecordNo, err)
	}
	return nil
}

// AppendMany adds imported records in order.
func (r *recordRepository) AppendMany(ctx context.Context, recs []models.FuelRecord) error {
	for _, rec := range recs {
		if err := r.Append(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

// ReplaceAll rewrites the whole sheet with the given records.
func (r *recordRepository) ReplaceAll(ctx context.Context, recs []models.FuelRecord) error {
	rows := make([]workbook.Row, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, rec.ToSheetRow())
	}
	if err := r.wb.ReplaceAll(SheetFuelRecords, models.FuelRecordColumns(), rows); err != nil {
		return fmt.Errorf("replace fuel records: %w", err)
	}
	return nil
}

// Update rewrites the record's own sheet row in place. The record must have
// been loaded through List so SheetRow is set.
func (r *recordRepository) Update(ctx context.Context, rec models.FuelRecord) error {
	if rec.SheetRow < workbook.FirstDataRow {
		return fmt.Errorf("record %s has no sheet row", rec.RecordNo)
	}
	if err := r.wb.UpdateRow(SheetFuelRecords, rec.SheetRow, rec.ToSheetRow()); err != nil {
		return fmt.Errorf("update fuel record %s: %w", rec.RecordNo, err)
	}
	return nil
}
