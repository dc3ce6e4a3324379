package services

import (
	"context"
	"errors"
	"strings"

	"fupa/constants"
	apperrors "fupa/errors"
	"fupa/models"
	"fupa/services/logger"

	"gorm.io/gorm"
)

// ProfileUpdate carries the fields a user may change on their own profile.
// Nil fields are left as they are.
type ProfileUpdate struct {
	Name     *string
	Address  *string
	PhotoURL *string
}

type UserService struct {
	db     *gorm.DB
	logger logger.Logger
}

type UserServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
}

func NewUserService(opts UserServiceOptions) *UserService {
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	return &UserService{
		db:     opts.DB,
		logger: opts.Logger,
	}
}

func (s *UserService) GetProfile(ctx context.Context, uid string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("id = ?", uid).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewAppError(apperrors.ErrCodeUserNotFound, "User not found", err)
	}
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to load profile", err)
	}
	return &user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, uid string, in ProfileUpdate) (*models.User, error) {
	updates := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperrors.NewAppError(apperrors.ErrCodeRequiredField, "Name must not be empty", nil)
		}
		updates["name"] = name
	}
	if in.Address != nil {
		updates["address"] = strings.TrimSpace(*in.Address)
	}
	if in.PhotoURL != nil {
		updates["photo_url"] = strings.TrimSpace(*in.PhotoURL)
	}
	if len(updates) == 0 {
		return s.GetProfile(ctx, uid)
	}

	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", uid).Updates(updates)
	if res.Error != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to update profile", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.NewAppError(apperrors.ErrCodeUserNotFound, "User not found", nil)
	}
	s.logger.Debug("profile %s updated: %v", uid, updates)
	return s.GetProfile(ctx, uid)
}

// ListEmployees pages through accounts with the employee role. page is 0-based.
func (s *UserService) ListEmployees(ctx context.Context, page, limit int) ([]models.User, int64, error) {
	if page < 0 {
		page = 0
	}
	if limit < 1 {
		limit = 20
	}
	var (
		users []models.User
		total int64
	)
	q := s.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", constants.RoleEmployee)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to count employees", err)
	}
	if err := q.Order("name asc").Offset(page * limit).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to list employees", err)
	}
	return users, total, nil
}

// AllEmployees returns every employee account, used as the search corpus.
func (s *UserService) AllEmployees(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Where("role = ?", constants.RoleEmployee).Find(&users).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to list employees", err)
	}
	return users, nil
}
