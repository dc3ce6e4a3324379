package services

import (
	"context"
	"math"
	"strings"
	"time"

	"fupa/constants"
	apperrors "fupa/errors"
	"fupa/models"
	"fupa/services/logger"
)

// SubmitAttendance is one clock-in or clock-out from a device.
type SubmitAttendance struct {
	UID           string
	Name          string
	Kind          string
	Coordinates   *models.Coordinates
	PhotoURL      string
	PhotoPublicID string
	// ClientTime is the device clock (RFC3339). Empty means unknown.
	ClientTime string
}

type AttendanceService struct {
	store  AttendanceStore
	media  MediaStore
	rules  Rules
	now    func() time.Time
	logger logger.Logger
}

type AttendanceServiceOptions struct {
	Store  AttendanceStore
	Media  MediaStore
	Rules  Rules
	Clock  func() time.Time
	Logger logger.Logger
}

func NewAttendanceService(opts AttendanceServiceOptions) *AttendanceService {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	return &AttendanceService{
		store:  opts.Store,
		media:  opts.Media,
		rules:  opts.Rules,
		now:    opts.Clock,
		logger: opts.Logger,
	}
}

// Rules exposes the status rule the service evaluates with.
func (s *AttendanceService) Rules() Rules {
	return s.rules
}

// Today is the current date key in the service's clock and zone.
func (s *AttendanceService) Today() string {
	return s.rules.DateKey(s.now())
}

// Preview evaluates kind at the current time without writing anything.
func (s *AttendanceService) Preview(kind string) (string, Evaluation) {
	now := s.now()
	return s.rules.DateKey(now), s.rules.Evaluate(now, kind)
}

// SaveAttendanceUnique upserts the record for (uid, today, kind).
//
// Resubmitting is safe and converges on one record, but it is last write
// wins: status and reason are re-evaluated at the time of the latest call,
// so a late resubmission replaces an earlier on-time status. Fields outside
// the payload (note, createdAt) are kept.
func (s *AttendanceService) SaveAttendanceUnique(ctx context.Context, in SubmitAttendance) (*models.AttendanceRecord, error) {
	if err := validateSubmission(in); err != nil {
		return nil, err
	}

	now := s.now()
	date := s.rules.DateKey(now)
	id := models.AttendanceID(in.UID, date, in.Kind)

	// The existing record is not used for the decision; the read is kept as
	// the place a conflict check would go.
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to read attendance", err)
	}
	if existing != nil {
		s.logger.Debug("attendance %s resubmitted, replacing status %s", id, existing.Status)
	}

	eval := s.rules.Evaluate(now, in.Kind)

	clientTime := in.ClientTime
	if clientTime == "" {
		clientTime = now.UTC().Format(time.RFC3339Nano)
	}

	rec := &models.AttendanceRecord{
		ID:                id,
		UID:               in.UID,
		Name:              in.Name,
		Date:              date,
		Kind:              in.Kind,
		Status:            eval.Status,
		Reason:            eval.Reason,
		SubmittedAtClient: clientTime,
		PhotoURL:          in.PhotoURL,
		PhotoPublicID:     in.PhotoPublicID,
	}
	if in.Coordinates != nil {
		lat, lng := in.Coordinates.Latitude, in.Coordinates.Longitude
		rec.Latitude, rec.Longitude = &lat, &lng
	}

	if err := s.store.Merge(ctx, rec, models.AttendancePayloadColumns); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to save attendance", err)
	}

	s.logger.Info("attendance %s saved: %s (%s)", id, eval.Status, eval.Reason)
	return rec, nil
}

// DeleteAttendanceEntry removes the record, then asks the media host to drop
// its photo. A failed photo delete is logged and does not undo the first step;
// the photo is left orphaned.
func (s *AttendanceService) DeleteAttendanceEntry(ctx context.Context, id string) error {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to read attendance", err)
	}
	if rec == nil {
		return errAttendanceNotFound()
	}

	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to delete attendance", err)
	}
	if !deleted {
		return errAttendanceNotFound()
	}

	if rec.PhotoPublicID != "" && s.media != nil {
		if err := s.media.SoftDelete(ctx, rec.PhotoPublicID); err != nil {
			s.logger.Error("attendance %s deleted but photo %s was not: %v", id, rec.PhotoPublicID, err)
		}
	}
	return nil
}

func (s *AttendanceService) SetNote(ctx context.Context, id, note string) error {
	ok, err := s.store.SetNote(ctx, id, strings.TrimSpace(note))
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to update attendance", err)
	}
	if !ok {
		return errAttendanceNotFound()
	}
	return nil
}

func (s *AttendanceService) List(ctx context.Context, f AttendanceFilter) ([]models.AttendanceRecord, int64, error) {
	records, total, err := s.store.List(ctx, f)
	if err != nil {
		return nil, 0, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to list attendance", err)
	}
	return records, total, nil
}

func validateSubmission(in SubmitAttendance) error {
	if strings.TrimSpace(in.UID) == "" {
		return apperrors.NewAppError(apperrors.ErrCodeRequiredField, "uid is required", nil)
	}
	if in.Kind != constants.KindIn && in.Kind != constants.KindOut {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidKind, "kind must be \"in\" or \"out\"", nil)
	}
	if strings.TrimSpace(in.PhotoURL) == "" {
		return apperrors.NewAppError(apperrors.ErrCodeMissingPhoto, "A verification photo is required", nil)
	}
	if c := in.Coordinates; c != nil {
		if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) ||
			c.Latitude < -90 || c.Latitude > 90 || c.Longitude < -180 || c.Longitude > 180 {
			return apperrors.NewAppError(apperrors.ErrCodeInvalidCoordinates, "Coordinates are out of range", nil)
		}
	}
	if in.ClientTime != "" {
		if _, err := time.Parse(time.RFC3339Nano, in.ClientTime); err != nil {
			return apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, "clientTime must be RFC3339", err)
		}
	}
	return nil
}

func errAttendanceNotFound() error {
	return apperrors.NewAppError(apperrors.ErrCodeRecordNotFound, "Attendance record not found", apperrors.ErrRecordNotFound)
}
