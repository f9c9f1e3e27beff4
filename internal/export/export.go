// Package export renders tabular reports as XLSX, CSV or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatExcel Format = "excel"
)

// ParseFormat accepts csv, json, excel and xlsx
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "excel", "xlsx":
		return FormatExcel, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// ContentType is the MIME type of a rendered format
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/json"
}

// Extension is the file extension of a rendered format, with the dot
func (f Format) Extension() string {
	if f == FormatExcel {
		return ".xlsx"
	}
	return "." + string(f)
}

// Column describes one field of a table
type Column struct {
	Key    string
	Header string
	Width  float64
}

// Table is a titled sheet of rows keyed by column
type Table struct {
	Sheet   string
	Title   string
	Columns []Column
	Rows    []map[string]any
	// Summary is written as label/value pairs above an XLSX table
	Summary [][2]any
}

// Write renders tables in format f. CSV and JSON only carry the first table.
func Write(w io.Writer, f Format, tables ...Table) error {
	if len(tables) == 0 {
		return fmt.Errorf("nothing to export")
	}
	switch f {
	case FormatCSV:
		return WriteCSV(w, tables[0])
	case FormatJSON:
		return WriteJSON(w, tables[0])
	case FormatExcel:
		return WriteXLSX(w, tables...)
	}
	return fmt.Errorf("unsupported export format %q", f)
}

func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	header := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c.Key
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range t.Rows {
		rec := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			rec[i] = cellString(row[c.Key])
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteJSON(w io.Writer, t Table) error {
	rows := t.Rows
	if rows == nil {
		rows = []map[string]any{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"data":        rows,
		"total_count": len(rows),
		"exported_at": time.Now().UTC(),
	})
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case *int:
		if x == nil {
			return ""
		}
		return fmt.Sprint(*x)
	case *float64:
		if x == nil {
			return ""
		}
		return fmt.Sprint(*x)
	case time.Time:
		return x.Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}
