package models

import "time"

type Announcement struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Date        string    `gorm:"type:char(10);not null;index" json:"date"`
	Time        string    `gorm:"type:char(5);not null" json:"time"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Announcement) TableName() string {
	return "announcements"
}
