package diff

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alkan41/yakit-takip-api/internal/models"
)

func refuel(date, receipt, amount, name string) models.FuelRecord {
	return models.FuelRecord{
		RecordNo:   "FR-1",
		Date:       date,
		ReceiptNo:  receipt,
		FuelAmount: models.ParseFuelAmount(amount),
		Kind:       models.KindAircraftRefuel,
		Refuel:     &models.AircraftRefuel{PersonnelName: name, TailNumber: "TC-ABC"},
	}
}

func TestIdenticalRecordsProduceEmptyChangeSet(t *testing.T) {
	rec := refuel("2024-01-01", "M-1", "120.5", "Ali Kaya")
	assert.Empty(t, Changes(rec, rec))
}

func TestDateFormattingDriftIsNotAChange(t *testing.T) {
	original := refuel("2024-01-01", "M-1", "120.5", "Ali Kaya")
	edited := refuel("2024-01-01T10:30:00Z", "M-1", "120.5", "Ali Kaya")

	assert.Empty(t, Changes(original, edited))
}

func TestAmountFormattingDriftIsNotAChange(t *testing.T) {
	original := refuel("2024-01-01", "M-1", "120.50", "Ali Kaya")
	edited := refuel("2024-01-01", "M-1", "120,5", "Ali Kaya")

	assert.Empty(t, Changes(original, edited))
}

func TestChangedFieldsAreReported(t *testing.T) {
	original := refuel("2024-01-01", "M-1", "120.5", "Ali Kaya")
	edited := refuel("2024-01-02", "M-2", "130", "Ali Kaya")
	edited.Refuel.TailNumber = "TC-XYZ"

	changes := Changes(original, edited)
	require.Len(t, changes, 3)
	assert.Equal(t, "2024-01-02", changes[models.FieldDate])
	assert.Equal(t, "M-2", changes[models.FieldReceiptNo])
	assert.Equal(t, "TC-XYZ", changes[models.FieldTailNumber])
}

func TestAmountChangeUsesDecimalComparison(t *testing.T) {
	original := refuel("2024-01-01", "M-1", "120.5", "Ali Kaya")
	edited := refuel("2024-01-01", "M-1", "120.51", "Ali Kaya")

	changes := Changes(original, edited)
	require.Len(t, changes, 1)
	assert.True(t, decimal.RequireFromString("120.51").Equal(models.ParseFuelAmount(changes[models.FieldFuelAmount])))
}

func TestIdentityFieldsAreNeverPartOfTheDiff(t *testing.T) {
	original := refuel("2024-01-01", "M-1", "120.5", "Ali Kaya")
	edited := refuel("2024-01-01", "M-1", "120.5", "Ali Kaya")
	edited.RecordNo = "FR-999"

	assert.Empty(t, Changes(original, edited))
}

func TestTransferDerivedLocationIsSkipped(t *testing.T) {
	original := models.FuelRecord{
		RecordNo: "FR-2", Date: "2024-01-01", ReceiptNo: "M-1",
		Kind:     models.KindTankerTransfer,
		Transfer: &models.TankerTransfer{FillingPlate: "06 A 1", ReceivingPlate: "06 B 2"},
	}
	edited := models.FuelRecord{
		RecordNo: "FR-2", Date: "2024-01-01", ReceiptNo: "M-1",
		Kind:     models.KindTankerTransfer,
		Transfer: &models.TankerTransfer{FillingPlate: "06 A 1", ReceivingPlate: "06 C 3"},
	}

	changes := Changes(original, edited)
	require.Len(t, changes, 1)
	assert.Equal(t, "06 C 3", changes[models.FieldReceivingPlate])
}
