package services

import (
	"context"
	"errors"
	"strings"

	apperrors "fupa/errors"
	"fupa/models"
	"fupa/services/logger"
	"fupa/services/notification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const EventNotification = "notification"

// NotificationService stores per-user notifications and pushes them to the
// user's open websocket sessions.
type NotificationService struct {
	db       *gorm.DB
	notifier notification.Service
	logger   logger.Logger
}

func NewNotificationService(db *gorm.DB, notifier notification.Service, log logger.Logger) *NotificationService {
	if log == nil {
		log = logger.Nop{}
	}
	return &NotificationService{db: db, notifier: notifier, logger: log}
}

func (s *NotificationService) Push(ctx context.Context, uid, title, message string) (*models.Notification, error) {
	message = strings.TrimSpace(message)
	if uid == "" {
		return nil, apperrors.NewAppError(apperrors.ErrCodeRequiredField, "uid is required", nil)
	}
	if message == "" {
		return nil, apperrors.NewAppError(apperrors.ErrCodeRequiredField, "message is required", nil)
	}

	var user models.User
	if err := s.db.WithContext(ctx).Select("id").Where("id = ?", uid).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeUserNotFound, "User not found", err)
		}
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to load user", err)
	}

	n := models.Notification{
		ID:      uuid.NewString(),
		UID:     uid,
		Title:   strings.TrimSpace(title),
		Message: message,
	}
	if err := s.db.WithContext(ctx).Create(&n).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to create notification", err)
	}

	if s.notifier != nil {
		msg, err := notification.NewMessageBuilder(EventNotification, n).Build()
		if err == nil {
			err = s.notifier.SendToUser(uid, msg)
		}
		if err != nil {
			s.logger.Error("push notification %s to %s: %v", n.ID, uid, err)
		}
	}
	return &n, nil
}

func (s *NotificationService) ListMine(ctx context.Context, uid string) ([]models.Notification, error) {
	var items []models.Notification
	if err := s.db.WithContext(ctx).Where("uid = ?", uid).Order("created_at desc").Find(&items).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to list notifications", err)
	}
	return items, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, uid, id string) error {
	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND uid = ?", id, uid).
		Update("read", true)
	return rowsOrNotFound(res, "Failed to update notification", "Notification not found")
}

func (s *NotificationService) Delete(ctx context.Context, uid, id string) error {
	res := s.db.WithContext(ctx).Where("id = ? AND uid = ?", id, uid).Delete(&models.Notification{})
	return rowsOrNotFound(res, "Failed to delete notification", "Notification not found")
}

func rowsOrNotFound(res *gorm.DB, failed, missing string) error {
	if res.Error != nil {
		return apperrors.NewAppError(apperrors.ErrCodeDBError, failed, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewAppError(apperrors.ErrCodeRecordNotFound, missing, nil)
	}
	return nil
}
