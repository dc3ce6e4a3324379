package models

import (
	"time"
)

// AttendanceRecord is one clock-in or clock-out of one user on one calendar day.
// ID is uid_date_kind, so a resubmission lands on the same row.
type AttendanceRecord struct {
	ID                string    `gorm:"primaryKey;type:varchar(191)" json:"id"`
	UID               string    `gorm:"index;not null" json:"uid"`
	Name              string    `json:"name"`
	Date              string    `gorm:"index;type:char(10);not null" json:"date"`
	Kind              string    `gorm:"type:varchar(8);not null" json:"kind"`
	Status            string    `gorm:"type:varchar(16);not null" json:"status"`
	Reason            string    `json:"reason"`
	SubmittedAtServer time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"submittedAtServer"`
	SubmittedAtClient string    `json:"submittedAtClient"`
	Latitude          *float64  `json:"latitude"`
	Longitude         *float64  `json:"longitude"`
	PhotoURL          string    `json:"photoUrl"`
	PhotoPublicID     string    `json:"photoPublicId"`
	Note              string    `json:"note"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (AttendanceRecord) TableName() string {
	return "attendance"
}

// AttendancePayloadColumns are the columns a submission writes. Everything else
// on an existing row (note, created_at) survives a resubmission.
var AttendancePayloadColumns = []string{
	"uid", "name", "date", "kind", "status", "reason",
	"submitted_at_server", "submitted_at_client",
	"latitude", "longitude", "photo_url", "photo_public_id",
}

// Coordinates is a WGS84 position reported by the device.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AttendanceID builds the deterministic record key.
func AttendanceID(uid, date, kind string) string {
	return uid + "_" + date + "_" + kind
}
