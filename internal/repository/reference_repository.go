package repository

import (
	"context"
	"fmt"

	"github.com/Alkan41/yakit-takip-api/internal/models"
	"github.com/Alkan41/yakit-takip-api/pkg/workbook"
)

// ReferenceRepository reads and rewrites the reference sheets backing the
// entry form dropdowns, plus the admin credentials sheet.
type ReferenceRepository interface {
	ListAircrafts(ctx context.Context) ([]models.Aircraft, error)
	ReplaceAircrafts(ctx context.Context, aircrafts []models.Aircraft) error

	ListTankers(ctx context.Context) ([]models.Tanker, error)
	ReplaceTankers(ctx context.Context, tankers []models.Tanker) error

	ListAirports(ctx context.Context) ([]models.Airport, error)
	ReplaceAirports(ctx context.Context, airports []models.Airport) error

	ListPersonnel(ctx context.Context) ([]models.Personnel, error)
	ReplacePersonnel(ctx context.Context, personnel []models.Personnel) error
	AppendPersonnel(ctx context.Context, person models.Personnel) error

	ListAdmins(ctx context.Context) ([]models.AdminUser, error)
	AppendAdmin(ctx context.Context, admin models.AdminUser, hashedPassword string) error
	DeleteAdminByID(ctx context.Context, id string) (bool, error)
}

type referenceRepository struct {
	wb *workbook.Workbook
}

// NewReferenceRepository builds the sheet-backed reference repository.
func NewReferenceRepository(wb *workbook.Workbook) ReferenceRepository {
	return &referenceRepository{wb: wb}
}

func (r *referenceRepository) ListAircrafts(ctx context.Context) ([]models.Aircraft, error) {
	rows, err := r.wb.Rows(SheetAircrafts)
	if err != nil {
		return nil, fmt.Errorf("list aircrafts: %w", err)
	}
	aircrafts := make([]models.Aircraft, 0, len(rows))
	for _, row := range rows {
		aircrafts = append(aircrafts, models.AircraftFromSheetRow(row))
	}
	return aircrafts, nil
}

func (r *referenceRepository) ReplaceAircrafts(ctx context.Context, aircrafts []models.Aircraft) error {
	rows := make([]workbook.Row, 0, len(aircrafts))
	for _, a := range aircrafts {
		rows = append(rows, a.ToSheetRow())
	}
	if err := r.wb.ReplaceAll(SheetAircrafts, models.AircraftColumns(), rows); err != nil {
		return fmt.Errorf("replace aircrafts: %w", err)
	}
	return nil
}

func (r *referenceRepository) ListTankers(ctx context.Context) ([]models.Tanker, error) {
	rows, err := r.wb.Rows(SheetTankers)
	if err != nil {
		return nil, fmt.Errorf("list tankers: %w", err)
	}
	tankers := make([]models.Tanker, 0, len(rows))
	for _, row := range rows {
		tankers = append(tankers, models.TankerFromSheetRow(row))
	}
	return tankers, nil
}

func (r *referenceRepository) ReplaceTankers(ctx context.Context, tankers []models.Tanker) error {
	rows := make([]workbook.Row, 0, len(tankers))
	for _, t := range tankers {
		rows = append(rows, t.ToSheetRow())
	}
	if err := r.wb.ReplaceAll(SheetTankers, models.TankerColumns(), rows); err != nil {
		return fmt.Errorf("replace tankers: %w", err)
	}
	return nil
}

func (r *referenceRepository) ListAirports(ctx context.Context) ([]models.Airport, error) {
	rows, err := r.wb.Rows(SheetAirports)
	if err != nil {
		return nil, fmt.Errorf("list airports: %w", err)
	}
	airports := make([]models.Airport, 0, len(rows))
	for _, row := range rows {
		airports = append(airports, models.AirportFromSheetRow(row))
	}
	return airports, nil
}

func (r *referenceRepository) ReplaceAirports(ctx context.Context, airports []models.Airport) error {
	rows := make([]workbook.Row, 0, len(airports))
	for _, a := range airports {
		rows = append(rows, a.ToSheetRow())
	}
	if err := r.wb.ReplaceAll(SheetAirports, models.AirportColumns(), rows); err != nil {
		return fmt.Errorf("replace airports: %w", err)
	}
	return nil
}

func (r *referenceRepository) ListPersonnel(ctx context.Context) ([]models.Personnel, error) {
	rows, err := r.wb.Rows(SheetPersonnel)
	if err != nil {
		return nil, fmt.Errorf("list personnel: %w", err)
	}
	personnel := make([]models.Personnel, 0, len(rows))
	for _, row := range rows {
		personnel = append(personnel, models.PersonnelFromSheetRow(row))
	}
	return personnel, nil
}

func (r *referenceRepository) ReplacePersonnel(ctx context.Context, personnel []models.Personnel) error {
	rows := make([]workbook.Row, 0, len(personnel))
	for _, p := range personnel {
		rows = append(rows, p.ToSheetRow())
	}
	if err := r.wb.ReplaceAll(SheetPersonnel, models.PersonnelColumns(), rows); err != nil {
		return fmt.Errorf("replace personnel: %w", err)
	}
	return nil
}

func (r *referenceRepository) AppendPersonnel(ctx context.Context, person models.Personnel) error {
	if err := r.wb.Append(SheetPersonnel, models.PersonnelColumns(), person.ToSheetRow()); err != nil {
		return fmt.Errorf("append personnel %s: %w", person.ID, err)
	}
	return nil
}

func (r *referenceRepository) ListAdmins(ctx context.Context) ([]models.AdminUser, error) {
	rows, err := r.wb.Rows(SheetAdmins)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	admins := make([]models.AdminUser, 0, len(rows))
	for _, row := range rows {
		admins = append(admins, models.AdminFromSheetRow(row))
	}
	return admins, nil
}

func (r *referenceRepository) AppendAdmin(ctx context.Context, admin models.AdminUser, hashedPassword string) error {
	row := workbook.Row{
		"id":       admin.ID,
		"name":     admin.Name,
		"username": admin.Username,
		"password": hashedPassword,
	}
	if err := r.wb.Append(SheetAdmins, models.AdminColumns(), row); err != nil {
		return fmt.Errorf("append admin %s: %w", admin.Username, err)
	}
	return nil
}

func (r *referenceRepository) DeleteAdminByID(ctx context.Context, id string) (bool, error) {
	rows, err := r.wb.Rows(SheetAdmins)
	if err != nil {
		return false, fmt.Errorf("delete admin %s: %w", id, err)
	}
	for i, row := range rows {
		if row["id"] == id {
			if err := r.wb.DeleteRow(SheetAdmins, i+workbook.FirstDataRow); err != nil {
				return false, fmt.Errorf("delete admin %s: %w", id, err)
			}
			return true, nil
		}
	}
	return false, nil
}
