package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Alkan41/yakit-takip-api/internal/models"
	"github.com/Alkan41/yakit-takip-api/pkg/workbook"
)

// ApprovalRepository reads and writes the two approval request sheets.
type ApprovalRepository interface {
	ListEditRequests(ctx context.Context) ([]models.ApprovalRequest, error)
	AppendEditRequest(ctx context.Context, req models.ApprovalRequest) error
	// FindEditRequest returns the request, its sheet row and whether it still
	// exists. A request resolved by another admin is simply gone.
	FindEditRequest(ctx context.Context, id string) (models.ApprovalRequest, int, bool, error)
	DeleteEditRequest(ctx context.Context, rowIndex int) error

	ListPersonnelRequests(ctx context.Context) ([]models.PersonnelApprovalRequest, error)
	AppendPersonnelRequest(ctx context.Context, req models.PersonnelApprovalRequest) error
	FindPersonnelRequest(ctx context.Context, id string) (models.PersonnelApprovalRequest, int, bool, error)
	DeletePersonnelRequest(ctx context.Context, rowIndex int) error
}

type approvalRepository struct {
	wb  *workbook.Workbook
	log *zap.Logger
}

// NewApprovalRepository builds the sheet-backed approval repository.
func NewApprovalRepository(wb *workbook.Workbook, log *zap.Logger) ApprovalRepository {
	return &approvalRepository{wb: wb, log: log}
}

func (r *approvalRepository) ListEditRequests(ctx context.Context) ([]models.ApprovalRequest, error) {
	rows, err := r.wb.Rows(SheetApprovalRequests)
	if err != nil {
		return nil, fmt.Errorf("list edit requests: %w", err)
	}
	requests := make([]models.ApprovalRequest, 0, len(rows))
	for i, row := range rows {
		req, err := models.ApprovalRequestFromSheetRow(row)
		if err != nil {
			r.log.Warn("skipping unreadable edit request row",
				zap.Int("row", i+workbook.FirstDataRow),
				zap.Error(err))
			continue
		}
		requests = append(requests, req)
	}
	return requests, nil
}

func (r *approvalRepository) AppendEditRequest(ctx context.Context, req models.ApprovalRequest) error {
	row, err := req.ToSheetRow()
	if err != nil {
		return err
	}
	if err := r.wb.Append(SheetApprovalRequests, models.ApprovalRequestColumns(), row); err != nil {
		return fmt.Errorf("append edit request %s: %w", req.ID, err)
	}
	return nil
}

func (r *approvalRepository) FindEditRequest(ctx context.Context, id string) (models.ApprovalRequest, int, bool, error) {
	rows, err := r.wb.Rows(SheetApprovalRequests)
	if err != nil {
		return models.ApprovalRequest{}, 0, false, fmt.Errorf("find edit request %s: %w", id, err)
	}
	for i, row := range rows {
		if row[models.ColRequestID] != id {
			continue
		}
		req, err := models.ApprovalRequestFromSheetRow(row)
		if err != nil {
			return models.ApprovalRequest{}, 0, false, err
		}
		return req, i + workbook.FirstDataRow, true, nil
	}
	return models.ApprovalRequest{}, 0, false, nil
}

func (r *approvalRepository) DeleteEditRequest(ctx context.Context, rowIndex int) error {
	if err := r.wb.DeleteRow(SheetApprovalRequests, rowIndex); err != nil {
		return fmt.Errorf("delete edit request row %d: %w", rowIndex, err)
	}
	return nil
}

func (r *approvalRepository) ListPersonnelRequests(ctx context.Context) ([]models.PersonnelApprovalRequest, error) {
	rows, err := r.wb.Rows(SheetPersonnelApprovalRequests)
	if err != nil {
		return nil, fmt.Errorf("list personnel requests: %w", err)
	}
	requests := make([]models.PersonnelApprovalRequest, 0, len(rows))
	for _, row := range rows {
		requests = append(requests, models.PersonnelApprovalRequestFromSheetRow(row))
	}
	return requests, nil
}

func (r *approvalRepository) AppendPersonnelRequest(ctx context.Context, req models.PersonnelApprovalRequest) error {
	if err := r.wb.Append(SheetPersonnelApprovalRequests, models.PersonnelApprovalRequestColumns(), req.ToSheetRow()); err != nil {
		return fmt.Errorf("append personnel request %s: %w", req.ID, err)
	}
	return nil
}

func (r *approvalRepository) FindPersonnelRequest(ctx context.Context, id string) (models.PersonnelApprovalRequest, int, bool, error) {
	rows, err := r.wb.Rows(SheetPersonnelApprovalRequests)
	if err != nil {
		return models.PersonnelApprovalRequest{}, 0, false, fmt.Errorf("find personnel request %s: %w", id, err)
	}
	for i, row := range rows {
		if row[models.ColRequestID] == id {
			return models.PersonnelApprovalRequestFromSheetRow(row), i + workbook.FirstDataRow, true, nil
		}
	}
	return models.PersonnelApprovalRequest{}, 0, false, nil
}

func (r *approvalRepository) DeletePersonnelRequest(ctx context.Context, rowIndex int) error {
	if err := r.wb.DeleteRow(SheetPersonnelApprovalRequests, rowIndex); err != nil {
		return fmt.Errorf("delete personnel request row %d: %w", rowIndex, err)
	}
	return nil
}
