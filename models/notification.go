package models

import "time"

type Notification struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UID       string    `gorm:"index;not null" json:"uid"`
	Title     string    `json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Read      bool      `gorm:"default:false" json:"read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	User      *User     `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignKey:UID;references:ID"`
}
