package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "fupa/errors"
	"fupa/models"

	"github.com/xuri/excelize/v2"
)

func TestWriteCSVFormat(t *testing.T) {
	rows := []*Row{
		NewRow().Set("name", "Siti").Set("note", `said "hi"`),
		NewRow().Set("name", "Budi").Set("note", ""),
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	want := "\uFEFFname,note\r\n\"Siti\",\"said \"\"hi\"\"\"\r\n\"Budi\",\"\""
	if buf.String() != want {
		t.Fatalf("got %q\nwant %q", buf.String(), want)
	}
}

func TestWriteCSVRoundTripWithComma(t *testing.T) {
	rows := []*Row{
		NewRow().Set("name", "Rahayu, Siti").Set("status", "late"),
		NewRow().Set("name", "Budi").Set("status", "on_time"),
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	body := strings.TrimPrefix(buf.String(), "\uFEFF")
	records, err := csv.NewReader(strings.NewReader(body)).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	if records[1][0] != "Rahayu, Siti" || records[1][1] != "late" {
		t.Fatalf("unexpected row %v", records[1])
	}
}

func TestWriteCSVSingleRecord(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, []*Row{NewRow().Set("a", "1").Set("b", "x,y")}); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(buf.String(), "\uFEFF"))).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 2 || records[1][0] != "1" || records[1][1] != "x,y" {
		t.Fatalf("unexpected records %v", records)
	}
}

func TestWriteCSVUsesFirstRowKeys(t *testing.T) {
	rows := []*Row{
		NewRow().Set("a", "1").Set("b", "2"),
		NewRow().Set("b", "4").Set("c", "9"),
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "\r\n\"\",\"4\"") {
		t.Fatalf("second row should be read by header keys, got %q", buf.String())
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, nil)
	if !errors.Is(err, apperrors.ErrNoData) || !apperrors.HasCode(err, apperrors.ErrCodeNoData) {
		t.Fatalf("expected no data error, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("nothing should be written, got %q", buf.String())
	}
}

func TestWriteXLSX(t *testing.T) {
	rows := []*Row{
		NewRow().Set("name", "Siti").Set("status", "late"),
		NewRow().Set("name", "Budi").Set("status", "on_time"),
	}
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, "Attendance", rows); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	got, err := f.GetRows("Attendance")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(got) != 3 || got[0][0] != "name" || got[2][1] != "on_time" {
		t.Fatalf("unexpected sheet %v", got)
	}

	if err := WriteXLSX(&bytes.Buffer{}, "", nil); !errors.Is(err, apperrors.ErrNoData) {
		t.Fatalf("expected no data error, got %v", err)
	}
}

func TestAttendanceRows(t *testing.T) {
	lat, lng := -6.2, 106.816666
	rows := AttendanceRows([]models.AttendanceRecord{{
		ID:                "u1_2025-06-02_in",
		UID:               "u1",
		Date:              "2025-06-02",
		Kind:              "in",
		Status:            "late",
		SubmittedAtServer: time.Date(2025, 6, 2, 1, 5, 0, 0, time.UTC),
		Latitude:          &lat,
		Longitude:         &lng,
	}})
	if len(rows) != 1 {
		t.Fatalf("expected one row")
	}
	r := rows[0]
	if r.Keys()[0] != "id" || r.Get("latitude") != "-6.2" || r.Get("longitude") != "106.816666" {
		t.Fatalf("unexpected row %v", r.values)
	}
	if r.Get("submittedAtServer") != "2025-06-02T01:05:00Z" {
		t.Fatalf("unexpected time %s", r.Get("submittedAtServer"))
	}
}
