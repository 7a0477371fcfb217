// Package match locates a fuel record in the live store. Record numbers are
// trusted only when durable; otherwise a tolerant comparison of date, receipt
// and personnel name stands in, because legacy rows predate durable numbers
// and sheet dates drift by timezone.
package match

import (
	"github.com/Alkan41/yakit-takip-api/internal/models"
)

// DateTolerance is the maximum distance between two event timestamps that
// still counts as the same day. The comparison is strict: exactly 24h apart
// is a different event.
const DateTolerance = 24 * 60 * 60 * 1000 // milliseconds

// Find returns the live record matching target, preferring the durable
// record number and falling back to the tolerant triple of date, receipt
// number and personnel name.
func Find(target models.FuelRecord, records []models.FuelRecord) (models.FuelRecord, bool) {
	if !models.IsPlaceholderRecordNo(target.RecordNo) {
		for _, rec := range records {
			if rec.RecordNo == target.RecordNo {
				return rec, true
			}
		}
	}
	return findByFallback(target, records)
}

func findByFallback(target models.FuelRecord, records []models.FuelRecord) (models.FuelRecord, bool) {
	targetTime, ok := models.ParseSheetTime(target.Date)
	if !ok {
		return models.FuelRecord{}, false
	}
	targetName := target.DisplayName()
	for _, rec := range records {
		recTime, ok := models.ParseSheetTime(rec.Date)
		if !ok {
			continue
		}
		deltaMillis := targetTime.Sub(recTime).Milliseconds()
		if deltaMillis < 0 {
			deltaMillis = -deltaMillis
		}
		if deltaMillis >= DateTolerance {
			continue
		}
		if rec.ReceiptNo != target.ReceiptNo {
			continue
		}
		if rec.DisplayName() != targetName {
			continue
		}
		return rec, true
	}
	return models.FuelRecord{}, false
}
