package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// OverrideRule lifts or enforces the attendance requirement for a date range.
// Rules may overlap.
type OverrideRule struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Mode        string    `gorm:"type:varchar(32);not null" json:"mode" validate:"required,oneof=no-attendance-required attendance-mandatory"`
	Start       string    `gorm:"type:char(10);not null;index" json:"start" validate:"required,datetime=2006-01-02"`
	End         string    `gorm:"type:char(10);not null;index" json:"end" validate:"required,datetime=2006-01-02"`
	Description string    `json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (OverrideRule) TableName() string {
	return "overrides"
}

// Covers reports whether date (YYYY-MM-DD) falls inside the rule's range.
// Keys compare lexically because they are zero padded.
func (o OverrideRule) Covers(date string) bool {
	return o.Start <= date && date <= o.End
}

func (o *OverrideRule) Validate() error {
	return validator.New().Struct(o)
}
