package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeSetUnmarshalMixedValues(t *testing.T) {
	raw := `{"receiptNumber":"M-9","fuelAmount":150.25,"tailNumber":null}`

	var set ChangeSet
	require.NoError(t, json.Unmarshal([]byte(raw), &set))
	assert.Equal(t, "M-9", set["receiptNumber"])
	assert.Equal(t, "150.25", set["fuelAmount"])
	assert.Equal(t, "", set["tailNumber"])
}

func TestChangeSetUnmarshalRejectsNestedValues(t *testing.T) {
	var set ChangeSet
	err := json.Unmarshal([]byte(`{"x":{"nested":true}}`), &set)
	assert.Error(t, err)
}

func TestApprovalRequestSheetRoundTrip(t *testing.T) {
	req := ApprovalRequest{
		ID: "edit-req-1",
		OriginalRecord: FuelRecord{
			RecordNo: "FR-1", Date: "2024-01-01", ReceiptNo: "M-1",
			FuelAmount: ParseFuelAmount("100"),
			Kind:       KindAircraftRefuel,
			Refuel:     &AircraftRefuel{PersonnelName: "Ali Kaya"},
		},
		RequestedChanges: ChangeSet{FieldReceiptNo: "M-2"},
		RequesterName:    "Ali Kaya",
		Timestamp:        "2024-01-02T09:00:00Z",
	}

	row, err := req.ToSheetRow()
	require.NoError(t, err)
	assert.JSONEq(t, `{"receiptNumber":"M-2"}`, row[ColRequestedChanges])

	back, err := ApprovalRequestFromSheetRow(row)
	require.NoError(t, err)
	assert.Equal(t, req.ID, back.ID)
	assert.Equal(t, "FR-1", back.OriginalRecord.RecordNo)
	assert.Equal(t, "M-2", back.RequestedChanges[FieldReceiptNo])
}

func TestApprovalRequestFromSheetRowRejectsCorruptSnapshot(t *testing.T) {
	_, err := ApprovalRequestFromSheetRow(map[string]string{
		ColRequestID:        "edit-req-2",
		ColOriginalRecord:   "{not json",
		ColRequestedChanges: "{}",
	})
	assert.Error(t, err)
}

func TestPersonnelApprovalRequestSheetRoundTrip(t *testing.T) {
	req := PersonnelApprovalRequest{ID: "pr-1", Name: "Ayşe Demir", Job: "Teknisyen", Timestamp: "2024-01-02T09:00:00Z"}
	back := PersonnelApprovalRequestFromSheetRow(req.ToSheetRow())
	assert.Equal(t, req, back)
}
