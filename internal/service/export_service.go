package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Alkan41/yakit-takip-api/internal/dto"
	"github.com/Alkan41/yakit-takip-api/internal/models"
	apperrors "github.com/Alkan41/yakit-takip-api/pkg/errors"
	"github.com/Alkan41/yakit-takip-api/pkg/export"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

const exportTitle = "Yakıt Kayıtları"

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportService renders filtered fuel records into downloadable files.
type ExportService interface {
	ExportRecords(ctx context.Context, format string, filter dto.RecordFilter) (ExportFile, error)
}

type exportService struct {
	records RecordService
	csv     *export.CSVExporter
	xlsx    *export.XLSXExporter
	pdf     *export.PDFExporter
}

// NewExportService wires the export service.
func NewExportService(records RecordService) ExportService {
	return &exportService{
		records: records,
		csv:     export.NewCSVExporter(),
		xlsx:    export.NewXLSXExporter(),
		pdf:     export.NewPDFExporter(),
	}
}

func (s *exportService) ExportRecords(ctx context.Context, format string, filter dto.RecordFilter) (ExportFile, error) {
	records, err := s.records.Search(ctx, filter)
	if err != nil {
		return ExportFile{}, err
	}
	dataset := buildDataset(records)
	stamp := time.Now().Format("2006-01-02")

	switch format {
	case FormatCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return ExportFile{}, err
		}
		return ExportFile{
			Filename:    fmt.Sprintf("yakit-kayitlari-%s.csv", stamp),
			ContentType: "text/csv",
			Content:     content,
		}, nil
	case FormatXLSX:
		content, err := s.xlsx.Render(dataset, exportTitle)
		if err != nil {
			return ExportFile{}, err
		}
		return ExportFile{
			Filename:    fmt.Sprintf("yakit-kayitlari-%s.xlsx", stamp),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Content:     content,
		}, nil
	case FormatPDF:
		content, err := s.pdf.Render(dataset, exportTitle)
		if err != nil {
			return ExportFile{}, err
		}
		return ExportFile{
			Filename:    fmt.Sprintf("yakit-kayitlari-%s.pdf", stamp),
			ContentType: "application/pdf",
			Content:     content,
		}, nil
	default:
		return ExportFile{}, apperrors.New(
			apperrors.ErrValidation.Code, apperrors.ErrValidation.Status,
			fmt.Sprintf("unsupported export format %q", format))
	}
}

func buildDataset(records []models.FuelRecord) export.Dataset {
	rows := make([]map[string]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec.ToSheetRow())
	}
	return export.Dataset{Headers: models.FuelRecordColumns(), Rows: rows}
}
