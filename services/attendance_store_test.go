package services

import (
	"strings"
	"testing"

	"fupa/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=fupa dbname=fupa sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return db
}

func TestGormMergeUpdatesOnlyPayloadColumns(t *testing.T) {
	db := dryRunDB(t)
	rec := &models.AttendanceRecord{
		ID:     models.AttendanceID("u1", "2025-06-02", "in"),
		UID:    "u1",
		Date:   "2025-06-02",
		Kind:   "in",
		Status: "on_time",
		Note:   "must not be overwritten",
	}

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return mergeQuery(tx, rec, models.AttendancePayloadColumns)
	})

	const onConflict = `ON CONFLICT ("id") DO UPDATE SET `
	i := strings.Index(sql, onConflict)
	if i < 0 {
		t.Fatalf("no upsert clause in %s", sql)
	}
	set, returning, found := strings.Cut(sql[i+len(onConflict):], " RETURNING ")
	if !found || returning != "*" {
		t.Fatalf("stored row is not read back: %s", sql)
	}

	for _, c := range models.AttendancePayloadColumns {
		if c == "submitted_at_server" {
			continue
		}
		if want := `"` + c + `"="excluded"."` + c + `"`; !strings.Contains(set, want) {
			t.Fatalf("update set is missing %s: %s", want, set)
		}
	}
	if !strings.Contains(set, `"submitted_at_server"=CURRENT_TIMESTAMP`) {
		t.Fatalf("submitted_at_server must come from the database clock: %s", set)
	}
	for _, kept := range []string{`"note"`, `"created_at"`} {
		if strings.Contains(set, kept) {
			t.Fatalf("update set overwrites %s: %s", kept, set)
		}
	}
}

func TestGormMergeTargetsAttendanceTable(t *testing.T) {
	db := dryRunDB(t)
	rec := &models.AttendanceRecord{ID: "u1_2025-06-02_out", UID: "u1", Date: "2025-06-02", Kind: "out"}

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return mergeQuery(tx, rec, models.AttendancePayloadColumns)
	})
	if !strings.HasPrefix(sql, `INSERT INTO "attendance"`) {
		t.Fatalf("unexpected statement %s", sql)
	}
}
