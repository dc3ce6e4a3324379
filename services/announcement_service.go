package services

import (
	"context"
	"strings"
	"time"

	"fupa/constants"
	apperrors "fupa/errors"
	"fupa/models"
	"fupa/services/logger"
	"fupa/services/notification"
	"fupa/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EventAnnouncement    = "announcement"
	EventAnnouncementDue = "announcement_due"
)

type AnnouncementService struct {
	db       *gorm.DB
	notifier notification.Service
	location *time.Location
	logger   logger.Logger
}

type AnnouncementServiceOptions struct {
	DB       *gorm.DB
	Notifier notification.Service
	Location *time.Location
	Logger   logger.Logger
}

func NewAnnouncementService(opts AnnouncementServiceOptions) *AnnouncementService {
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &AnnouncementService{
		db:       opts.DB,
		notifier: opts.Notifier,
		location: opts.Location,
		logger:   opts.Logger,
	}
}

// Create stores the announcement and pushes it to every connected client.
func (s *AnnouncementService) Create(ctx context.Context, a models.Announcement) (*models.Announcement, error) {
	a.Description = strings.TrimSpace(a.Description)
	if err := validator.ValidateAnnouncement(&a); err != nil {
		return nil, err
	}
	a.ID = uuid.NewString()
	if err := s.db.WithContext(ctx).Create(&a).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to create announcement", err)
	}
	s.broadcast(EventAnnouncement, a)
	return &a, nil
}

// List returns announcements newest first. limit <= 0 means no limit.
func (s *AnnouncementService) List(ctx context.Context, limit int) ([]models.Announcement, error) {
	var items []models.Announcement
	q := s.db.WithContext(ctx).Order("date desc, time desc, created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to list announcements", err)
	}
	return items, nil
}

func (s *AnnouncementService) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Announcement{})
	return rowsOrNotFound(res, "Failed to delete announcement", "Announcement not found")
}

// BroadcastDue pushes the announcements scheduled for the minute containing now.
func (s *AnnouncementService) BroadcastDue(ctx context.Context, now time.Time) (int, error) {
	local := now.In(s.location)
	date := local.Format(constants.DateLayout)
	clock := local.Format(constants.TimeLayout)

	var due []models.Announcement
	if err := s.db.WithContext(ctx).Where("date = ? AND time = ?", date, clock).Find(&due).Error; err != nil {
		return 0, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to load due announcements", err)
	}
	for _, a := range due {
		s.broadcast(EventAnnouncementDue, a)
	}
	if len(due) > 0 {
		s.logger.Info("broadcast %d announcement(s) due at %s %s", len(due), date, clock)
	}
	return len(due), nil
}

func (s *AnnouncementService) broadcast(event string, a models.Announcement) {
	if s.notifier == nil {
		return
	}
	msg, err := notification.NewMessageBuilder(event, a).Build()
	if err != nil {
		s.logger.Error("encode announcement %s: %v", a.ID, err)
		return
	}
	if err := s.notifier.SendMessage(msg); err != nil {
		s.logger.Error("broadcast announcement %s: %v", a.ID, err)
	}
}
