package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleTable() Table {
	years := 5
	return Table{
		Sheet: "Candidates",
		Title: "Candidate export",
		Columns: []Column{
			{Key: "name", Header: "Name", Width: 20},
			{Key: "experience_years", Header: "Experience"},
			{Key: "salary"},
		},
		Rows: []map[string]any{
			{"name": "Ana, Souza", "experience_years": &years, "salary": (*float64)(nil)},
			{"name": "Bruno", "experience_years": (*int)(nil), "salary": 1500.5},
		},
		Summary: [][2]any{{"Total", 2}},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("XLSX")
	require.NoError(t, err)
	assert.Equal(t, FormatExcel, f)
	assert.Equal(t, ".xlsx", f.Extension())

	_, err = ParseFormat("pdf")
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, sampleTable()))
	assert.Equal(t, "name,experience_years,salary\n\"Ana, Souza\",5,\nBruno,,1500.5\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, Table{}))

	var body map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &body))
	assert.Equal(t, float64(0), body["total_count"])
	assert.Equal(t, []any{}, body["data"])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	second := Table{Sheet: "Other", Columns: []Column{{Key: "k"}}, Rows: []map[string]any{{"k": "v"}}}
	require.NoError(t, WriteXLSX(&buf, sampleTable(), second))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Candidates", "Other"}, f.GetSheetList())

	// title, blank, summary, blank, header
	v, err := f.GetCellValue("Candidates", "A5")
	require.NoError(t, err)
	assert.Equal(t, "Name", v)
	v, _ = f.GetCellValue("Candidates", "B6")
	assert.Equal(t, "5", v)
	v, _ = f.GetCellValue("Candidates", "C6")
	assert.Equal(t, "", v)
	v, _ = f.GetCellValue("Other", "A2")
	assert.Equal(t, "v", v)
}

func TestWrite_Empty(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, FormatCSV))
}
