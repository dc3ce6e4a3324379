package services

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"fupa/constants"
	apperrors "fupa/errors"
	"fupa/models"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

type fakeMedia struct {
	deleted   []string
	deleteErr error
}

func (m *fakeMedia) Upload(context.Context, io.Reader) (MediaRef, error) {
	return MediaRef{URL: "https://img.example/p.jpg", PublicID: "attendance/p"}, nil
}

func (m *fakeMedia) SoftDelete(_ context.Context, publicID string) error {
	m.deleted = append(m.deleted, publicID)
	return m.deleteErr
}

type failingStore struct {
	*MemoryAttendanceStore
	mergeErr error
}

func (s *failingStore) Merge(context.Context, *models.AttendanceRecord, []string) error {
	return s.mergeErr
}

func newTestService(clock *fakeClock, store AttendanceStore, media MediaStore) *AttendanceService {
	return NewAttendanceService(AttendanceServiceOptions{
		Store: store,
		Media: media,
		Rules: testRules(),
		Clock: clock.Now,
	})
}

func submission(kind string) SubmitAttendance {
	return SubmitAttendance{
		UID:           "u1",
		Name:          "Sari",
		Kind:          kind,
		Coordinates:   &models.Coordinates{Latitude: -6.2, Longitude: 106.8},
		PhotoURL:      "https://img.example/p.jpg",
		PhotoPublicID: "attendance/p",
	}
}

func TestSaveAttendanceUniqueIsIdempotent(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 2, 7, 0, 0, 0, wib)}
	store := NewMemoryAttendanceStore(clock.Now)
	svc := newTestService(clock, store, &fakeMedia{})
	ctx := context.Background()

	first, err := svc.SaveAttendanceUnique(ctx, submission(constants.KindIn))
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	clock.Set(clock.Now().Add(time.Second))
	second, err := svc.SaveAttendanceUnique(ctx, submission(constants.KindIn))
	if err != nil {
		t.Fatalf("second save: %v", err)
	}

	if first.ID != "u1_2025-06-02_in" || second.ID != first.ID {
		t.Fatalf("ids = %s, %s", first.ID, second.ID)
	}
	records, total, _ := store.List(ctx, AttendanceFilter{})
	if total != 1 || len(records) != 1 {
		t.Fatalf("stored %d records, want 1", total)
	}
	if !records[0].SubmittedAtServer.Equal(clock.Now()) {
		t.Fatalf("server time = %v, want the second write's %v", records[0].SubmittedAtServer, clock.Now())
	}
	if records[0].Status != constants.StatusOnTime {
		t.Fatalf("status = %s", records[0].Status)
	}
}

func TestSaveAttendanceUniqueLastWriteWins(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 2, 7, 45, 0, 0, wib)}
	store := NewMemoryAttendanceStore(clock.Now)
	svc := newTestService(clock, store, &fakeMedia{})
	ctx := context.Background()

	rec, err := svc.SaveAttendanceUnique(ctx, submission(constants.KindIn))
	if err != nil {
		t.Fatal(err)
	}
	if rec.Status != constants.StatusOnTime {
		t.Fatalf("first status = %s, want on_time", rec.Status)
	}

	clock.Set(time.Date(2025, 6, 2, 8, 15, 0, 0, wib))
	if _, err := svc.SaveAttendanceUnique(ctx, submission(constants.KindIn)); err != nil {
		t.Fatal(err)
	}

	stored, _ := store.Get(ctx, "u1_2025-06-02_in")
	want := testRules().Evaluate(clock.Now(), constants.KindIn)
	if stored.Status != constants.StatusLate || stored.Status != want.Status || stored.Reason != want.Reason {
		t.Fatalf("stored %s (%s), want %s (%s)", stored.Status, stored.Reason, want.Status, want.Reason)
	}
}

func TestSaveAttendanceUniqueKeepsFieldsOutsidePayload(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 2, 7, 0, 0, 0, wib)}
	store := NewMemoryAttendanceStore(clock.Now)
	svc := newTestService(clock, store, &fakeMedia{})
	ctx := context.Background()

	first, err := svc.SaveAttendanceUnique(ctx, submission(constants.KindIn))
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.SetNote(ctx, first.ID, "approved by supervisor"); err != nil {
		t.Fatal(err)
	}

	clock.Set(clock.Now().Add(30 * time.Minute))
	in := submission(constants.KindIn)
	in.Coordinates = nil
	second, err := svc.SaveAttendanceUnique(ctx, in)
	if err != nil {
		t.Fatal(err)
	}

	if second.Note != "approved by supervisor" {
		t.Fatalf("note = %q, resubmission must keep it", second.Note)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("createdAt changed from %v to %v", first.CreatedAt, second.CreatedAt)
	}
	if second.Latitude != nil || second.Longitude != nil {
		t.Fatalf("coordinates are part of the payload and should be cleared")
	}
}

func TestSaveAttendanceUniqueSeparatesKindsAndDays(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 2, 7, 0, 0, 0, wib)}
	store := NewMemoryAttendanceStore(clock.Now)
	svc := newTestService(clock, store, &fakeMedia{})
	ctx := context.Background()

	mustSave := func(kind string) {
		t.Helper()
		if _, err := svc.SaveAttendanceUnique(ctx, submission(kind)); err != nil {
			t.Fatal(err)
		}
	}
	mustSave(constants.KindIn)
	clock.Set(time.Date(2025, 6, 2, 16, 5, 0, 0, wib))
	mustSave(constants.KindOut)
	// 17:30 UTC is 00:30 the next day in WIB
	clock.Set(time.Date(2025, 6, 2, 17, 30, 0, 0, time.UTC))
	mustSave(constants.KindIn)

	_, total, _ := store.List(ctx, AttendanceFilter{UID: "u1"})
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}
	if rec, _ := store.Get(ctx, "u1_2025-06-03_in"); rec == nil {
		t.Fatalf("expected a record keyed on the WIB date")
	}
}

func TestSaveAttendanceUniqueRecordsClientTime(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 2, 7, 0, 0, 0, wib)}
	svc := newTestService(clock, NewMemoryAttendanceStore(clock.Now), &fakeMedia{})

	in := submission(constants.KindIn)
	in.ClientTime = "2025-06-02T00:03:00.000Z"
	rec, err := svc.SaveAttendanceUnique(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if rec.SubmittedAtClient != in.ClientTime {
		t.Fatalf("client time = %q", rec.SubmittedAtClient)
	}

	in.ClientTime = ""
	rec, _ = svc.SaveAttendanceUnique(context.Background(), in)
	if rec.SubmittedAtClient != "2025-06-02T00:00:00Z" {
		t.Fatalf("default client time = %q", rec.SubmittedAtClient)
	}
}

func TestSaveAttendanceUniqueValidates(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 2, 7, 0, 0, 0, wib)}
	svc := newTestService(clock, NewMemoryAttendanceStore(clock.Now), &fakeMedia{})

	tests := []struct {
		name   string
		mutate func(*SubmitAttendance)
		code   apperrors.ErrorCode
	}{
		{"missing uid", func(s *SubmitAttendance) { s.UID = " " }, apperrors.ErrCodeRequiredField},
		{"bad kind", func(s *SubmitAttendance) { s.Kind = "lunch" }, apperrors.ErrCodeInvalidKind},
		{"no photo", func(s *SubmitAttendance) { s.PhotoURL = "" }, apperrors.ErrCodeMissingPhoto},
		{"bad latitude", func(s *SubmitAttendance) { s.Coordinates = &models.Coordinates{Latitude: 91} }, apperrors.ErrCodeInvalidCoordinates},
		{"bad client time", func(s *SubmitAttendance) { s.ClientTime = "yesterday" }, apperrors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := submission(constants.KindIn)
			tt.mutate(&in)
			_, err := svc.SaveAttendanceUnique(context.Background(), in)
			if !apperrors.HasCode(err, tt.code) {
				t.Fatalf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestSaveAttendanceUniquePropagatesStoreError(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 2, 7, 0, 0, 0, wib)}
	boom := errors.New("permission denied")
	store := &failingStore{MemoryAttendanceStore: NewMemoryAttendanceStore(clock.Now), mergeErr: boom}
	svc := newTestService(clock, store, &fakeMedia{})

	_, err := svc.SaveAttendanceUnique(context.Background(), submission(constants.KindIn))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
	if rec, _ := store.Get(context.Background(), "u1_2025-06-02_in"); rec != nil {
		t.Fatalf("nothing should be persisted")
	}
}

func TestDeleteAttendanceEntry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 2, 7, 0, 0, 0, wib)}
	store := NewMemoryAttendanceStore(clock.Now)
	media := &fakeMedia{}
	svc := newTestService(clock, store, media)
	ctx := context.Background()

	rec, err := svc.SaveAttendanceUnique(ctx, submission(constants.KindIn))
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteAttendanceEntry(ctx, rec.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := store.Get(ctx, rec.ID); got != nil {
		t.Fatalf("record still present")
	}
	if len(media.deleted) != 1 || media.deleted[0] != "attendance/p" {
		t.Fatalf("media deletes = %v", media.deleted)
	}

	err = svc.DeleteAttendanceEntry(ctx, rec.ID)
	if !apperrors.HasCode(err, apperrors.ErrCodeRecordNotFound) || !errors.Is(err, apperrors.ErrRecordNotFound) {
		t.Fatalf("second delete err = %v", err)
	}
}

func TestDeleteAttendanceEntryIgnoresPhotoFailure(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 2, 7, 0, 0, 0, wib)}
	store := NewMemoryAttendanceStore(clock.Now)
	media := &fakeMedia{deleteErr: errors.New("cdn unavailable")}
	svc := newTestService(clock, store, media)
	ctx := context.Background()

	rec, _ := svc.SaveAttendanceUnique(ctx, submission(constants.KindIn))
	if err := svc.DeleteAttendanceEntry(ctx, rec.ID); err != nil {
		t.Fatalf("photo failure must not surface: %v", err)
	}
	if got, _ := store.Get(ctx, rec.ID); got != nil {
		t.Fatalf("record deletion must not be rolled back")
	}
}

func TestPreview(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 2, 8, 0, 0, 0, wib)}
	svc := newTestService(clock, NewMemoryAttendanceStore(clock.Now), nil)
	date, eval := svc.Preview(constants.KindIn)
	if date != "2025-06-02" || eval.Status != constants.StatusLate {
		t.Fatalf("Preview = %s %s", date, eval.Status)
	}
}

func TestTodayFollowsServiceClock(t *testing.T) {
	// 23:30 UTC is the next morning in WIB
	clock := &fakeClock{now: time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)}
	svc := newTestService(clock, NewMemoryAttendanceStore(clock.Now), &fakeMedia{})

	if got := svc.Today(); got != "2025-06-02" {
		t.Fatalf("Today = %s, want 2025-06-02", got)
	}
	clock.Set(time.Date(2025, 6, 2, 17, 0, 0, 0, time.UTC))
	if got := svc.Today(); got != "2025-06-03" {
		t.Fatalf("Today = %s, want 2025-06-03", got)
	}
}
