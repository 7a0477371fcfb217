package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alkan41/yakit-takip-api/internal/dto"
	"github.com/Alkan41/yakit-takip-api/internal/models"
	apperrors "github.com/Alkan41/yakit-takip-api/pkg/errors"
)

func TestPanelDataSanitizesAdmins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	hashed, err := HashPassword("gizli")
	require.NoError(t, err)
	require.NoError(t, f.refs.AppendAdmin(ctx, models.AdminUser{ID: "a1", Name: "Yönetici", Username: "admin"}, hashed))
	storedRefuel(t, f, "FR-1", "2024-01-01", "M-1", "Ali Kaya")

	panel, err := f.reference.PanelData(ctx)
	require.NoError(t, err)
	require.Len(t, panel.Admins, 1)
	assert.Equal(t, "admin", panel.Admins[0].Username)
	require.Len(t, panel.FuelRecords, 1)
}

func TestBulkUpdateTouchesOnlyPresentDatasets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.refs.ReplaceAirports(ctx, []models.Airport{{ID: "x", Name: "Eski", Type: "Sivil"}}))

	err := f.reference.BulkUpdate(ctx, dto.BulkUpdatePayload{
		TankerData: []models.Tanker{{ID: "t1", Plate: "06 ABC 1", Region: "Ankara", Capacity: 20000}},
	}, "admin")
	require.NoError(t, err)

	tankers, err := f.refs.ListTankers(ctx)
	require.NoError(t, err)
	assert.Len(t, tankers, 1)

	airports, err := f.refs.ListAirports(ctx)
	require.NoError(t, err)
	require.Len(t, airports, 1)
	assert.Equal(t, "Eski", airports[0].Name, "absent datasets stay untouched")
}

func TestBulkUpdateHashesPlaintextAdminPasswords(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.reference.BulkUpdate(ctx, dto.BulkUpdatePayload{
		Admins: []dto.AdminUpsert{{Name: "Yeni", Username: "yeni", Password: "düzmetin"}},
	}, "admin")
	require.NoError(t, err)

	admins, err := f.refs.ListAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.True(t, strings.HasPrefix(admins[0].Password, "$2"), "plaintext must be hashed on write")
}

func TestAddAdminRejectsDuplicateUsername(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.reference.AddAdmin(ctx, dto.AdminUpsert{Name: "A", Username: "admin", Password: "p1"}, "root")
	require.NoError(t, err)

	_, err = f.reference.AddAdmin(ctx, dto.AdminUpsert{Name: "B", Username: "admin", Password: "p2"}, "root")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
}

func TestDeleteAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	info, err := f.reference.AddAdmin(ctx, dto.AdminUpsert{Name: "A", Username: "admin", Password: "p1"}, "root")
	require.NoError(t, err)

	require.NoError(t, f.reference.DeleteAdmin(ctx, info.ID, "root"))

	err = f.reference.DeleteAdmin(ctx, info.ID, "root")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}
