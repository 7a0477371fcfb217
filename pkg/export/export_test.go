package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var sample = Dataset{
	Headers: []string{"Kayıt No", "Yakıt Miktarı (lt)"},
	Rows: []map[string]string{
		{"Kayıt No": "FR-1", "Yakıt Miktarı (lt)": "120.5"},
		{"Kayıt No": "FR-2", "Yakıt Miktarı (lt)": "80"},
	},
}

func TestCSVRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sample)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, sample.Headers, records[0])
	assert.Equal(t, []string{"FR-1", "120.5"}, records[1])
}

func TestCSVRejectsEmptyHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sample, "Yakıt Kayıtları")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestXLSXRenderRoundTrips(t *testing.T) {
	out, err := NewXLSXExporter().Render(sample, "Yakıt Kayıtları verisi")
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows("Yakıt Kayıtları verisi")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, sample.Headers, rows[0])
	assert.Equal(t, "FR-2", rows[2][0])
}
