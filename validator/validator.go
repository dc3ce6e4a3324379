package validator

import (
	"regexp"
	"strings"
	"time"

	"fupa/constants"
	"fupa/errors"
	"fupa/models"

	"github.com/go-playground/validator/v10"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	validate   = validator.New()
)

// ValidateEmail checks the email format
func ValidateEmail(email string) error {
	if email == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Email is required", nil)
	}
	if !emailRegex.MatchString(email) {
		return errors.NewAppError(errors.ErrCodeInvalidEmail, "Invalid email", nil)
	}
	return nil
}

// ValidatePassword requires at least 6 characters
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return errors.NewAppError(errors.ErrCodeInvalidPassword, "Password must be at least 6 characters", nil)
	}
	return nil
}

func ValidateRole(role string) error {
	if role != constants.RoleAdmin && role != constants.RoleEmployee {
		return errors.NewAppError(errors.ErrCodeInvalidRole, "Invalid role", nil)
	}
	return nil
}

// ValidateDate checks a YYYY-MM-DD key
func ValidateDate(field, value string) error {
	if value == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, field+" is required", nil)
	}
	if _, err := time.Parse(constants.DateLayout, value); err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, field+" must be YYYY-MM-DD", err)
	}
	return nil
}

// ValidateOverride checks mode and that start <= end
func ValidateOverride(o *models.OverrideRule) error {
	if err := o.Validate(); err != nil {
		return errors.NewAppError(errors.ErrCodeValidation, "Invalid override: "+err.Error(), err)
	}
	if o.End < o.Start {
		return errors.NewAppError(errors.ErrCodeInvalidRange, "End date must not be before start date", nil)
	}
	return nil
}

type announcementInput struct {
	Date        string `validate:"required,datetime=2006-01-02"`
	Time        string `validate:"required,datetime=15:04"`
	Description string `validate:"required"`
}

func ValidateAnnouncement(a *models.Announcement) error {
	in := announcementInput{Date: a.Date, Time: a.Time, Description: strings.TrimSpace(a.Description)}
	if err := validate.Struct(in); err != nil {
		return errors.NewAppError(errors.ErrCodeValidation, "Invalid announcement: "+err.Error(), err)
	}
	return nil
}
