package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alkan41/yakit-takip-api/internal/dto"
	"github.com/Alkan41/yakit-takip-api/internal/models"
	apperrors "github.com/Alkan41/yakit-takip-api/pkg/errors"
)

func validRefuel() models.FuelRecord {
	return models.FuelRecord{
		Date:       "2024-01-01",
		ReceiptNo:  "M-1",
		FuelAmount: models.ParseFuelAmount("120.5"),
		Kind:       models.KindAircraftRefuel,
		Refuel: &models.AircraftRefuel{
			PersonnelName: "Ali Kaya", JobTitle: "Pilot",
			TailNumber: "TC-ABC", Location: "Konya Havalimanı",
		},
	}
}

func TestAddAssignsPlaceholderRecordNumber(t *testing.T) {
	f := newFixture(t)

	added, err := f.record.Add(context.Background(), validRefuel(), "entry")
	require.NoError(t, err)
	assert.True(t, models.IsPlaceholderRecordNo(added.RecordNo))
	assert.NotEmpty(t, added.ID)

	records, err := f.record.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestAddRejectsZeroFuelAmount(t *testing.T) {
	f := newFixture(t)

	rec := validRefuel()
	rec.FuelAmount = models.ParseFuelAmount("0")
	_, err := f.record.Add(context.Background(), rec, "entry")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestAddRequiresCardNumberAtMilitaryAirport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.refs.ReplaceAirports(ctx, []models.Airport{
		{ID: "kya", Name: "Konya Havalimanı", Type: "Askeri"},
		{ID: "ada", Name: "Adana Şakirpaşa Havalimanı (ADA)", Type: "Sivil"},
	}))

	rec := validRefuel()
	_, err := f.record.Add(ctx, rec, "entry")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	rec.Refuel.CardNumber = "K-42"
	_, err = f.record.Add(ctx, rec, "entry")
	assert.NoError(t, err)

	civil := validRefuel()
	civil.Refuel.Location = "Adana Şakirpaşa Havalimanı (ADA)"
	_, err = f.record.Add(ctx, civil, "entry")
	assert.NoError(t, err, "civil airport needs no card number")
}

func TestAddRejectsTransferBetweenSameTanker(t *testing.T) {
	f := newFixture(t)

	rec := models.FuelRecord{
		Date:       "2024-01-01",
		ReceiptNo:  "M-1",
		FuelAmount: models.ParseFuelAmount("500"),
		Kind:       models.KindTankerTransfer,
		Transfer:   &models.TankerTransfer{FillingPlate: "06 A 1", ReceivingPlate: "06 A 1"},
	}
	_, err := f.record.Add(context.Background(), rec, "entry")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestAddFromRowAcceptsLegacySheetPayload(t *testing.T) {
	f := newFixture(t)

	row := dto.RowObject{
		models.ColDate:            "05.01.2024",
		models.ColKind:            "Tanker Dolum",
		models.ColReceiptNo:       "M-3",
		models.ColFuelAmount:      "5000",
		models.ColFillTankerPlate: "06 ABC 1",
		models.ColFillAirport:     "Konya Havalimanı",
	}
	added, err := f.record.AddFromRow(context.Background(), row, "entry")
	require.NoError(t, err)
	assert.Equal(t, models.KindTankerFill, added.Kind)
	assert.Equal(t, "2024-01-05", added.Date)
}

func TestImportAbortsOnFirstBadRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rows := []dto.RowObject{
		{
			models.ColDate: "2024-01-01", models.ColKind: "Tanker Dolum",
			models.ColReceiptNo: "M-1", models.ColFuelAmount: "100",
			models.ColFillTankerPlate: "06 A 1", models.ColFillAirport: "Konya",
		},
		{models.ColDate: "garbage", models.ColKind: "Tanker Dolum"},
	}
	_, err := f.record.Import(ctx, rows, "admin")
	require.Error(t, err)

	records, err := f.record.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records, "nothing written on a bad file")
}

func TestImportAppendsAllRows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rows := []dto.RowObject{
		{
			models.ColDate: "2024-01-01", models.ColKind: "Tanker Dolum",
			models.ColReceiptNo: "M-1", models.ColFuelAmount: "100",
			models.ColFillTankerPlate: "06 A 1", models.ColFillAirport: "Konya",
		},
		{
			models.ColDate: "2024-01-02", models.ColKind: "Hava Aracı İkmal",
			models.ColReceiptNo: "M-2", models.ColFuelAmount: "200",
			models.ColPersonnelName: "Ali Kaya", models.ColTailNumber: "TC-ABC",
		},
	}
	count, err := f.record.Import(ctx, rows, "admin")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	records, err := f.record.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, rec := range records {
		assert.NotEmpty(t, rec.RecordNo)
	}
}

func TestSearchFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	storedRefuel(t, f, "FR-1", "2024-01-01", "M-1", "Ali Kaya")
	storedRefuel(t, f, "FR-2", "2024-02-01", "M-2", "Ayşe Demir")
	require.NoError(t, f.records.Append(ctx, models.FuelRecord{
		RecordNo: "FR-3", Date: "2024-03-01", ReceiptNo: "M-3",
		FuelAmount: models.ParseFuelAmount("5000"),
		Kind:       models.KindTankerFill,
		Fill:       &models.TankerFill{TankerPlate: "06 ABC 1", Airport: "Konya"},
	}))

	byKind, err := f.record.Search(ctx, dto.RecordFilter{Kind: string(models.KindTankerFill)})
	require.NoError(t, err)
	require.Len(t, byKind, 1)
	assert.Equal(t, "FR-3", byKind[0].RecordNo)

	byName, err := f.record.Search(ctx, dto.RecordFilter{PersonnelName: "Ali Kaya"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "FR-1", byName[0].RecordNo)

	byRange, err := f.record.Search(ctx, dto.RecordFilter{StartDate: "2024-01-15", EndDate: "2024-02-15"})
	require.NoError(t, err)
	require.Len(t, byRange, 1)
	assert.Equal(t, "FR-2", byRange[0].RecordNo)

	byPlate, err := f.record.Search(ctx, dto.RecordFilter{TankerPlate: "06 ABC 1"})
	require.NoError(t, err)
	require.Len(t, byPlate, 1)

	byNumber, err := f.record.Search(ctx, dto.RecordFilter{RecordNo: "R-2"})
	require.NoError(t, err)
	require.Len(t, byNumber, 1)
	assert.Equal(t, "FR-2", byNumber[0].RecordNo)

	all, err := f.record.Search(ctx, dto.RecordFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestBulkReplaceRewritesStore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	storedRefuel(t, f, "FR-1", "2024-01-01", "M-1", "Ali Kaya")

	replacement := validRefuel()
	replacement.RecordNo = "FR-NEW"
	require.NoError(t, f.record.BulkReplace(ctx, []models.FuelRecord{replacement}, "admin"))

	records, err := f.record.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "FR-NEW", records[0].RecordNo)
}
