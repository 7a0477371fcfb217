package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Alkan41/yakit-takip-api/internal/dto"
	"github.com/Alkan41/yakit-takip-api/internal/models"
	"github.com/Alkan41/yakit-takip-api/internal/repository"
	apperrors "github.com/Alkan41/yakit-takip-api/pkg/errors"
	"github.com/Alkan41/yakit-takip-api/pkg/gate"
	"github.com/Alkan41/yakit-takip-api/pkg/workbook"
)

type fixture struct {
	records   repository.RecordRepository
	approvals repository.ApprovalRepository
	refs      repository.ReferenceRepository
	gate      *gate.Local
	metrics   *MetricsService
	approval  ApprovalService
	record    RecordService
	reference ReferenceService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	wb, err := workbook.Open(filepath.Join(t.TempDir(), "store.xlsx"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = wb.Close() })

	// Seed the canonical sheets the same way cmd/api-server does on boot.
	for _, s := range []struct {
		name    string
		columns []string
	}{
		{repository.SheetFuelRecords, models.FuelRecordColumns()},
		{repository.SheetAircrafts, models.AircraftColumns()},
		{repository.SheetTankers, models.TankerColumns()},
		{repository.SheetPersonnel, models.PersonnelColumns()},
		{repository.SheetAirports, models.AirportColumns()},
		{repository.SheetAdmins, models.AdminColumns()},
		{repository.SheetApprovalRequests, models.ApprovalRequestColumns()},
		{repository.SheetPersonnelApprovalRequests, models.PersonnelApprovalRequestColumns()},
	} {
		require.NoError(t, wb.EnsureSheet(s.name, s.columns))
	}

	log := zap.NewNop()
	f := &fixture{
		records:   repository.NewRecordRepository(wb, log),
		approvals: repository.NewApprovalRepository(wb, log),
		refs:      repository.NewReferenceRepository(wb),
		gate:      gate.NewLocal(2 * time.Second),
		metrics:   NewMetricsService(prometheus.NewRegistry()),
	}
	f.record = NewRecordService(f.records, f.refs, f.gate, nil, nil, f.metrics, log)
	f.approval = NewApprovalService(f.records, f.approvals, f.refs, f.gate, nil, nil, f.metrics, log)
	f.reference = NewReferenceService(f.refs, f.record, f.gate, nil, nil, time.Minute, log)
	return f
}

func storedRefuel(t *testing.T, f *fixture, recordNo, date, receipt, name string) models.FuelRecord {
	t.Helper()
	rec := models.FuelRecord{
		RecordNo:   recordNo,
		Date:       date,
		ReceiptNo:  receipt,
		FuelAmount: models.ParseFuelAmount("120.5"),
		Kind:       models.KindAircraftRefuel,
		Refuel:     &models.AircraftRefuel{PersonnelName: name, JobTitle: "Pilot", TailNumber: "TC-ABC", Location: "Konya"},
	}
	require.NoError(t, f.records.Append(context.Background(), rec))

	records, err := f.records.List(context.Background())
	require.NoError(t, err)
	return records[len(records)-1]
}

func submitEdit(t *testing.T, f *fixture, original models.FuelRecord, changes models.ChangeSet) models.ApprovalRequest {
	t.Helper()
	req, err := f.approval.SubmitEditRequest(context.Background(), dto.SubmitEditRequest{
		OriginalRecord:   original,
		RequestedChanges: changes,
		RequesterName:    "Ali Kaya",
	})
	require.NoError(t, err)
	return req
}

func TestSubmitEditRequestRejectsNoOpChanges(t *testing.T) {
	f := newFixture(t)
	rec := storedRefuel(t, f, "FR-1", "2024-01-01", "M-1", "Ali Kaya")

	_, err := f.approval.SubmitEditRequest(context.Background(), dto.SubmitEditRequest{
		OriginalRecord: rec,
		RequestedChanges: models.ChangeSet{
			// Same day and same amount, just written differently.
			models.FieldDate:       "2024-01-01T08:00:00Z",
			models.FieldFuelAmount: "120,50",
		},
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNoChanges))

	requests, err := f.approval.ListEditRequests(context.Background())
	require.NoError(t, err)
	assert.Empty(t, requests)
}

func TestSubmitEditRequestStoresEffectiveChanges(t *testing.T) {
	f := newFixture(t)
	rec := storedRefuel(t, f, "FR-1", "2024-01-01", "M-1", "Ali Kaya")

	req := submitEdit(t, f, rec, models.ChangeSet{
		models.FieldDate:      "2024-01-01T08:00:00Z", // cosmetic, dropped
		models.FieldReceiptNo: "M-2",
	})

	assert.NotEmpty(t, req.ID)
	require.Len(t, req.RequestedChanges, 1)
	assert.Equal(t, "M-2", req.RequestedChanges[models.FieldReceiptNo])
}

func TestApproveEditRequestMergesIntoLiveRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	storedRefuel(t, f, "FR-0", "2023-12-01", "M-0", "Ayşe Demir")
	rec := storedRefuel(t, f, "FR-1", "2024-01-01", "M-1", "Ali Kaya")
	req := submitEdit(t, f, rec, models.ChangeSet{models.FieldReceiptNo: "M-99", models.FieldFuelAmount: "150"})

	outcome, err := f.approval.ApproveEditRequest(ctx, req.ID, "admin")
	require.NoError(t, err)
	assert.False(t, outcome.AlreadyProcessed)
	assert.Equal(t, MsgEditRequestApproved, outcome.Message)

	records, err := f.records.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "M-0", records[0].ReceiptNo, "unrelated record untouched")
	assert.Equal(t, "M-99", records[1].ReceiptNo)
	assert.Equal(t, "150", records[1].FuelAmount.String())
	assert.Equal(t, rec.SheetRow, records[1].SheetRow, "merged in place")

	assert.Empty(t, outcome.Snapshot.ApprovalRequests)
}

func TestApproveEditRequestAlreadyProcessed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rec := storedRefuel(t, f, "FR-1", "2024-01-01", "M-1", "Ali Kaya")
	req := submitEdit(t, f, rec, models.ChangeSet{models.FieldReceiptNo: "M-2"})

	_, err := f.approval.ApproveEditRequest(ctx, req.ID, "admin")
	require.NoError(t, err)

	// Second admin clicks approve on the same request.
	outcome, err := f.approval.ApproveEditRequest(ctx, req.ID, "admin2")
	require.NoError(t, err)
	assert.True(t, outcome.AlreadyProcessed)
	assert.Equal(t, MsgEditRequestProcessed, outcome.Message)
	assert.NotEmpty(t, outcome.Snapshot.FuelRecords)
}

func TestApproveEditRequestStaleRecordIsFatal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Snapshot of a record that was never persisted.
	ghost := models.FuelRecord{
		RecordNo:   "FR-GHOST",
		Date:       "2024-01-01",
		ReceiptNo:  "M-1",
		FuelAmount: models.ParseFuelAmount("10"),
		Kind:       models.KindAircraftRefuel,
		Refuel:     &models.AircraftRefuel{PersonnelName: "Ali Kaya"},
	}
	req := submitEdit(t, f, ghost, models.ChangeSet{models.FieldReceiptNo: "M-2"})

	_, err := f.approval.ApproveEditRequest(ctx, req.ID, "admin")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrStaleRecord))

	// The unresolvable request is discarded.
	requests, err := f.approval.ListEditRequests(ctx)
	require.NoError(t, err)
	assert.Empty(t, requests)
}

func TestApproveEditRequestMatchesPlaceholderViaFallback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rec := storedRefuel(t, f, "ID-2024-01-01T00:00:00Z", "2024-01-01", "M-7", "Ali Kaya")

	// The snapshot carries a timestamped date; the stored row has a plain day.
	snapshot := rec
	snapshot.Date = "2024-01-01T21:00:00Z"
	snapshot.SheetRow = 0
	req := submitEdit(t, f, snapshot, models.ChangeSet{models.FieldReceiptNo: "M-8"})

	outcome, err := f.approval.ApproveEditRequest(ctx, req.ID, "admin")
	require.NoError(t, err)
	assert.False(t, outcome.AlreadyProcessed)

	records, err := f.records.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "M-8", records[0].ReceiptNo)
}

func TestRejectEditRequestLeavesRecordAlone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rec := storedRefuel(t, f, "FR-1", "2024-01-01", "M-1", "Ali Kaya")
	req := submitEdit(t, f, rec, models.ChangeSet{models.FieldReceiptNo: "M-2"})

	outcome, err := f.approval.RejectEditRequest(ctx, req.ID, "admin")
	require.NoError(t, err)
	assert.False(t, outcome.AlreadyProcessed)
	assert.Equal(t, MsgEditRequestRejected, outcome.Message)
	assert.Empty(t, outcome.Snapshot.ApprovalRequests)

	records, err := f.records.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "M-1", records[0].ReceiptNo)

	// Rejecting again is a no-op, not an error.
	outcome, err = f.approval.RejectEditRequest(ctx, req.ID, "admin")
	require.NoError(t, err)
	assert.True(t, outcome.AlreadyProcessed)
}

func TestPersonnelRequestLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req, err := f.approval.SubmitPersonnelRequest(ctx, models.PersonnelApprovalRequest{
		Name: "Ayşe Demir", Job: "Teknisyen",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, req.ID)

	outcome, err := f.approval.ApprovePersonnelRequest(ctx, req.ID, "admin")
	require.NoError(t, err)
	assert.False(t, outcome.AlreadyProcessed)
	assert.Equal(t, MsgPersonnelApproved, outcome.Message)
	require.Len(t, outcome.Snapshot.PersonnelList, 1)
	assert.Equal(t, "Ayşe Demir", outcome.Snapshot.PersonnelList[0].Name)
	assert.Empty(t, outcome.Snapshot.PersonnelApprovalRequests)

	// Approving twice reports already processed without adding a duplicate.
	outcome, err = f.approval.ApprovePersonnelRequest(ctx, req.ID, "admin")
	require.NoError(t, err)
	assert.True(t, outcome.AlreadyProcessed)
	assert.Len(t, outcome.Snapshot.PersonnelList, 1)
}

func TestPersonnelRequestValidation(t *testing.T) {
	f := newFixture(t)
	_, err := f.approval.SubmitPersonnelRequest(context.Background(), models.PersonnelApprovalRequest{Name: "X"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestMutationsFailFastWhenGateIsBusy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rec := storedRefuel(t, f, "FR-1", "2024-01-01", "M-1", "Ali Kaya")

	busy := gate.NewLocal(30 * time.Millisecond)
	log := zap.NewNop()
	approval := NewApprovalService(f.records, f.approvals, f.refs, busy, nil, nil, f.metrics, log)

	release, err := busy.Acquire(ctx)
	require.NoError(t, err)
	defer release()

	_, err = approval.SubmitEditRequest(ctx, dto.SubmitEditRequest{
		OriginalRecord:   rec,
		RequestedChanges: models.ChangeSet{models.FieldReceiptNo: "M-2"},
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrLockBusy))

	_, err = approval.ApproveEditRequest(ctx, "edit-req-x", "admin")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrLockBusy))
}
