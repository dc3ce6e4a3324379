package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	apperrors "fupa/errors"
	"fupa/models"
	"fupa/utils"

	"github.com/xuri/excelize/v2"
)

const bom = "\uFEFF"

// Row is an ordered set of key/value cells.
type Row struct {
	keys   []string
	values map[string]string
}

func NewRow() *Row {
	return &Row{values: make(map[string]string)}
}

// Set assigns key, appending it to the key order the first time it is seen.
func (r *Row) Set(key, value string) *Row {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
	return r
}

func (r *Row) Keys() []string {
	return append([]string(nil), r.keys...)
}

func (r *Row) Get(key string) string {
	return r.values[key]
}

// WriteCSV writes rows as CSV. The header comes from the first row's keys and
// every later row is read by those keys. Nothing is written for an empty slice.
func WriteCSV(w io.Writer, rows []*Row) error {
	if len(rows) == 0 {
		return apperrors.NewAppError(apperrors.ErrCodeNoData, "No data to export", apperrors.ErrNoData)
	}
	keys := rows[0].Keys()

	bw := bufio.NewWriter(w)
	bw.WriteString(bom)
	bw.WriteString(strings.Join(keys, ","))
	for _, row := range rows {
		bw.WriteString("\r\n")
		for i, k := range keys {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.WriteString(quote(row.Get(k)))
		}
	}
	return bw.Flush()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// WriteXLSX writes rows to a single sheet workbook.
func WriteXLSX(w io.Writer, sheet string, rows []*Row) error {
	if len(rows) == 0 {
		return apperrors.NewAppError(apperrors.ErrCodeNoData, "No data to export", apperrors.ErrNoData)
	}
	keys := rows[0].Keys()

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			utils.LogError("close workbook: %v", err)
		}
	}()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return err
		}
	}

	header := make([]interface{}, len(keys))
	for i, k := range keys {
		header[i] = k
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for n, row := range rows {
		cells := make([]interface{}, len(keys))
		for i, k := range keys {
			cells[i] = row.Get(k)
		}
		cell, err := excelize.CoordinatesToCellName(1, n+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// AttendanceRows flattens records into export rows.
func AttendanceRows(records []models.AttendanceRecord) []*Row {
	rows := make([]*Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, NewRow().
			Set("id", r.ID).
			Set("uid", r.UID).
			Set("name", r.Name).
			Set("date", r.Date).
			Set("kind", r.Kind).
			Set("status", r.Status).
			Set("reason", r.Reason).
			Set("submittedAtServer", r.SubmittedAtServer.UTC().Format(time.RFC3339)).
			Set("submittedAtClient", r.SubmittedAtClient).
			Set("latitude", formatCoord(r.Latitude)).
			Set("longitude", formatCoord(r.Longitude)).
			Set("photoUrl", r.PhotoURL).
			Set("note", r.Note))
	}
	return rows
}

func formatCoord(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
