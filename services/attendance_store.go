package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"fupa/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttendanceFilter narrows a listing. Zero fields are ignored.
type AttendanceFilter struct {
	UID    string
	Date   string
	From   string
	To     string
	Kind   string
	Status string
	Page   int
	Limit  int
}

// AttendanceStore persists attendance records.
type AttendanceStore interface {
	// Get returns nil, nil when the record does not exist.
	Get(ctx context.Context, id string) (*models.AttendanceRecord, error)
	// Merge creates rec, or overwrites only columns on the existing row.
	// submitted_at_server is always assigned by the store.
	Merge(ctx context.Context, rec *models.AttendanceRecord, columns []string) error
	Delete(ctx context.Context, id string) (bool, error)
	// SetNote annotates an existing record without touching its payload.
	SetNote(ctx context.Context, id, note string) (bool, error)
	List(ctx context.Context, f AttendanceFilter) ([]models.AttendanceRecord, int64, error)
}

// GormAttendanceStore merges with INSERT ... ON CONFLICT (id) DO UPDATE.
type GormAttendanceStore struct {
	db *gorm.DB
}

func NewGormAttendanceStore(db *gorm.DB) *GormAttendanceStore {
	return &GormAttendanceStore{db: db}
}

func (s *GormAttendanceStore) Get(ctx context.Context, id string) (*models.AttendanceRecord, error) {
	var rec models.AttendanceRecord
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *GormAttendanceStore) Merge(ctx context.Context, rec *models.AttendanceRecord, columns []string) error {
	rec.SubmittedAtServer = time.Time{}
	return mergeQuery(s.db.WithContext(ctx), rec, columns).Error
}

// mergeQuery upserts rec and scans the stored row back into it, so fields the
// conflict path keeps (created_at, note) come back as stored.
func mergeQuery(tx *gorm.DB, rec *models.AttendanceRecord, columns []string) *gorm.DB {
	updates := make([]string, 0, len(columns))
	for _, c := range columns {
		if c != "submitted_at_server" {
			updates = append(updates, c)
		}
	}
	set := clause.AssignmentColumns(updates)
	set = append(set, clause.Assignment{
		Column: clause.Column{Name: "submitted_at_server"},
		Value:  gorm.Expr("CURRENT_TIMESTAMP"),
	})

	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: set,
	}, clause.Returning{}).Create(rec)
}

func (s *GormAttendanceStore) Delete(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.AttendanceRecord{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormAttendanceStore) SetNote(ctx context.Context, id, note string) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.AttendanceRecord{}).Where("id = ?", id).Update("note", note)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormAttendanceStore) List(ctx context.Context, f AttendanceFilter) ([]models.AttendanceRecord, int64, error) {
	tx := s.db.WithContext(ctx).Model(&models.AttendanceRecord{})
	if f.UID != "" {
		tx = tx.Where("uid = ?", f.UID)
	}
	if f.Date != "" {
		tx = tx.Where("date = ?", f.Date)
	}
	if f.From != "" {
		tx = tx.Where("date >= ?", f.From)
	}
	if f.To != "" {
		tx = tx.Where("date <= ?", f.To)
	}
	if f.Kind != "" {
		tx = tx.Where("kind = ?", f.Kind)
	}
	if f.Status != "" {
		tx = tx.Where("status = ?", f.Status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	tx = tx.Order("date desc").Order("uid").Order("kind")
	if f.Limit > 0 {
		tx = tx.Offset(f.Page * f.Limit).Limit(f.Limit)
	}
	var records []models.AttendanceRecord
	if err := tx.Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// MemoryAttendanceStore keeps records in a map. Merge is an explicit
// read, field merge, write under the lock.
type MemoryAttendanceStore struct {
	mu      sync.Mutex
	records map[string]models.AttendanceRecord
	now     func() time.Time
}

func NewMemoryAttendanceStore(now func() time.Time) *MemoryAttendanceStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryAttendanceStore{records: make(map[string]models.AttendanceRecord), now: now}
}

func (s *MemoryAttendanceStore) Get(_ context.Context, id string) (*models.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *MemoryAttendanceStore) Merge(_ context.Context, rec *models.AttendanceRecord, columns []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	current, ok := s.records[rec.ID]
	if !ok {
		current = models.AttendanceRecord{ID: rec.ID, CreatedAt: now}
	}
	mergeColumns(&current, rec, columns)
	current.SubmittedAtServer = now
	s.records[rec.ID] = current
	*rec = current
	return nil
}

func (s *MemoryAttendanceStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.records[id]
	delete(s.records, id)
	return ok, nil
}

func (s *MemoryAttendanceStore) SetNote(_ context.Context, id, note string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return false, nil
	}
	rec.Note = note
	s.records[id] = rec
	return true, nil
}

func (s *MemoryAttendanceStore) List(_ context.Context, f AttendanceFilter) ([]models.AttendanceRecord, int64, error) {
	s.mu.Lock()
	var out []models.AttendanceRecord
	for _, r := range s.records {
		if (f.UID != "" && r.UID != f.UID) ||
			(f.Date != "" && r.Date != f.Date) ||
			(f.From != "" && r.Date < f.From) ||
			(f.To != "" && r.Date > f.To) ||
			(f.Kind != "" && r.Kind != f.Kind) ||
			(f.Status != "" && r.Status != f.Status) {
			continue
		}
		out = append(out, r)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		if out[i].UID != out[j].UID {
			return out[i].UID < out[j].UID
		}
		return out[i].Kind < out[j].Kind
	})

	total := int64(len(out))
	if f.Limit > 0 {
		start := f.Page * f.Limit
		if start > len(out) {
			start = len(out)
		}
		end := start + f.Limit
		if end > len(out) {
			end = len(out)
		}
		out = out[start:end]
	}
	return out, total, nil
}

// mergeColumns copies the named columns from src onto dst.
func mergeColumns(dst, src *models.AttendanceRecord, columns []string) {
	for _, c := range columns {
		switch c {
		case "uid":
			dst.UID = src.UID
		case "name":
			dst.Name = src.Name
		case "date":
			dst.Date = src.Date
		case "kind":
			dst.Kind = src.Kind
		case "status":
			dst.Status = src.Status
		case "reason":
			dst.Reason = src.Reason
		case "submitted_at_client":
			dst.SubmittedAtClient = src.SubmittedAtClient
		case "latitude":
			dst.Latitude = src.Latitude
		case "longitude":
			dst.Longitude = src.Longitude
		case "photo_url":
			dst.PhotoURL = src.PhotoURL
		case "photo_public_id":
			dst.PhotoPublicID = src.PhotoPublicID
		case "note":
			dst.Note = src.Note
		}
	}
}
