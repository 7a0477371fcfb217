package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecordNumberIsPlaceholder(t *testing.T) {
	rn := NewRecordNumber(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, "ID-2024-01-01T12:00:00Z", rn)
	assert.True(t, IsPlaceholderRecordNo(rn))
}

func TestIsPlaceholderRecordNo(t *testing.T) {
	assert.True(t, IsPlaceholderRecordNo(""))
	assert.True(t, IsPlaceholderRecordNo("ID-2024-05-05T10:00:00Z"))
	assert.False(t, IsPlaceholderRecordNo("FR-1042"))
}

func TestRefuelJSONRoundTrip(t *testing.T) {
	rec := FuelRecord{
		RecordNo:   "FR-1",
		Date:       "2024-01-01",
		ReceiptNo:  "M-1",
		FuelAmount: ParseFuelAmount("120.5"),
		Kind:       KindAircraftRefuel,
		Refuel: &AircraftRefuel{
			PersonnelName: "Ali Kaya", JobTitle: "Pilot", TailNumber: "TC-ABC",
			CardNumber: "K-7", LocationType: "Askeri", Location: "Konya",
		},
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"recordType":"personnel"`)
	assert.Contains(t, string(data), `"fuelAmount":120.5`)

	var back FuelRecord
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, rec.RecordNo, back.RecordNo)
	require.NotNil(t, back.Refuel)
	assert.Equal(t, "TC-ABC", back.Refuel.TailNumber)
	assert.True(t, rec.FuelAmount.Equal(back.FuelAmount))
}

func TestTransferJSONCarriesComposedLocation(t *testing.T) {
	rec := FuelRecord{
		RecordNo: "FR-2", Date: "2024-01-01", ReceiptNo: "M-2",
		Kind:     KindTankerTransfer,
		Transfer: &TankerTransfer{FillingPlate: "06 A 1", ReceivingPlate: "06 B 2"},
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"location":"06 A 1 -> 06 B 2"`)
	assert.Contains(t, string(data), `"personnelName":"Tanker Transfer"`)
}

func TestUnmarshalAcceptsStringFuelAmount(t *testing.T) {
	raw := `{"kayitNumarasi":"FR-3","date":"2024-01-01","receiptNumber":"M-3","fuelAmount":"1250,75","recordType":"tankerDolum","tankerPlate":"06 ABC 1","location":"Konya"}`

	var rec FuelRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))
	require.NotNil(t, rec.Fill)
	assert.Equal(t, "Konya", rec.Fill.Airport)
	assert.Equal(t, "1250.75", rec.FuelAmount.String())
}

func TestUnmarshalRejectsUnknownKind(t *testing.T) {
	var rec FuelRecord
	err := json.Unmarshal([]byte(`{"kayitNumarasi":"x","recordType":"banana"}`), &rec)
	assert.Error(t, err)
}

func TestSheetRowRoundTripPerKind(t *testing.T) {
	records := []FuelRecord{
		{
			RecordNo: "FR-1", Date: "2024-01-01", ReceiptNo: "M-1",
			FuelAmount: ParseFuelAmount("100"),
			Kind:       KindAircraftRefuel,
			Refuel:     &AircraftRefuel{PersonnelName: "Ali Kaya", JobTitle: "Pilot", TailNumber: "TC-ABC"},
		},
		{
			RecordNo: "FR-2", Date: "2024-01-02", ReceiptNo: "M-2",
			FuelAmount: ParseFuelAmount("5000"),
			Kind:       KindTankerFill,
			Fill:       &TankerFill{TankerPlate: "06 ABC 1", Airport: "Konya"},
		},
		{
			RecordNo: "FR-3", Date: "2024-01-03", ReceiptNo: "M-3",
			FuelAmount: ParseFuelAmount("300"),
			Kind:       KindTankerTransfer,
			Transfer:   &TankerTransfer{FillingPlate: "06 A 1", ReceivingPlate: "06 B 2"},
		},
	}

	for _, rec := range records {
		row := rec.ToSheetRow()
		back, err := FuelRecordFromSheetRow(row)
		require.NoError(t, err, rec.RecordNo)
		assert.Equal(t, rec.Kind, back.Kind)
		assert.Equal(t, rec.Date, back.Date)
		assert.True(t, rec.FuelAmount.Equal(back.FuelAmount))
	}
}

func TestFromSheetRowRejectsBadRows(t *testing.T) {
	_, err := FuelRecordFromSheetRow(map[string]string{ColKind: "Hava Aracı İkmal", ColDate: "not a date"})
	assert.Error(t, err)

	_, err = FuelRecordFromSheetRow(map[string]string{ColKind: "???", ColDate: "2024-01-01"})
	assert.Error(t, err)
}

func TestApplyChangesOverlaysOnlyMeaningfulFields(t *testing.T) {
	rec := FuelRecord{
		RecordNo: "FR-1", Date: "2024-01-01", ReceiptNo: "M-1",
		FuelAmount: ParseFuelAmount("100"),
		Kind:       KindAircraftRefuel,
		Refuel:     &AircraftRefuel{PersonnelName: "Ali Kaya", TailNumber: "TC-ABC"},
	}

	merged := rec.ApplyChanges(ChangeSet{
		FieldReceiptNo:   "M-9",
		FieldFuelAmount:  "150,5",
		FieldTailNumber:  "TC-XYZ",
		FieldTankerPlate: "06 ABC 1",
	})

	assert.Equal(t, "M-9", merged.ReceiptNo)
	assert.Equal(t, "150.5", merged.FuelAmount.String())
	assert.Equal(t, "TC-XYZ", merged.Refuel.TailNumber)

	// Unchanged original, deep copies included.
	assert.Equal(t, "M-1", rec.ReceiptNo)
	assert.Equal(t, "TC-ABC", rec.Refuel.TailNumber)
}

func TestApplyChangesNormalizesDate(t *testing.T) {
	rec := FuelRecord{
		RecordNo: "FR-1", Date: "2024-01-01", Kind: KindAircraftRefuel,
		Refuel: &AircraftRefuel{},
	}
	merged := rec.ApplyChanges(ChangeSet{FieldDate: "05.02.2024"})
	assert.Equal(t, "2024-02-05", merged.Date)
}

func TestValidateEnforcesKindPayloads(t *testing.T) {
	valid := FuelRecord{Kind: KindTankerFill, Fill: &TankerFill{}}
	assert.NoError(t, valid.Validate())

	wrongPayload := FuelRecord{Kind: KindTankerFill, Refuel: &AircraftRefuel{}}
	assert.Error(t, wrongPayload.Validate())

	negative := FuelRecord{Kind: KindTankerFill, Fill: &TankerFill{}, FuelAmount: ParseFuelAmount("-5")}
	assert.Error(t, negative.Validate())
}

func TestParseFuelAmountCoercion(t *testing.T) {
	assert.Equal(t, "120.5", ParseFuelAmount("120,5").String())
	assert.True(t, ParseFuelAmount("").IsZero())
	assert.True(t, ParseFuelAmount("garbage").IsZero())
}
