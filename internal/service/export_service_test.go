package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alkan41/yakit-takip-api/internal/dto"
	"github.com/Alkan41/yakit-takip-api/internal/models"
)

func TestExportRecordsCSV(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	storedRefuel(t, f, "FR-1", "2024-01-01", "M-1", "Ali Kaya")
	storedRefuel(t, f, "FR-2", "2024-02-01", "M-2", "Ayşe Demir")

	exporter := NewExportService(f.record)
	file, err := exporter.ExportRecords(ctx, FormatCSV, dto.RecordFilter{})
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Contains(t, file.Filename, ".csv")

	rows, err := csv.NewReader(bytes.NewReader(file.Content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, models.FuelRecordColumns(), rows[0])
}

func TestExportRecordsHonorsFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	storedRefuel(t, f, "FR-1", "2024-01-01", "M-1", "Ali Kaya")
	storedRefuel(t, f, "FR-2", "2024-02-01", "M-2", "Ayşe Demir")

	exporter := NewExportService(f.record)
	file, err := exporter.ExportRecords(ctx, FormatCSV, dto.RecordFilter{PersonnelName: "Ali Kaya"})
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(file.Content)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestExportRecordsPDFAndXLSX(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	storedRefuel(t, f, "FR-1", "2024-01-01", "M-1", "Ali Kaya")

	exporter := NewExportService(f.record)

	pdf, err := exporter.ExportRecords(ctx, FormatPDF, dto.RecordFilter{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf.Content, []byte("%PDF")))

	xlsx, err := exporter.ExportRecords(ctx, FormatXLSX, dto.RecordFilter{})
	require.NoError(t, err)
	assert.NotEmpty(t, xlsx.Content)
}

func TestExportRecordsUnknownFormat(t *testing.T) {
	f := newFixture(t)
	exporter := NewExportService(f.record)

	_, err := exporter.ExportRecords(context.Background(), "docx", dto.RecordFilter{})
	assert.Error(t, err)
}
