package models

import (
	"time"
)

type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Email        string    `gorm:"unique;not null" json:"email"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	PhotoURL     string    `json:"photoUrl"`
	Role         string    `gorm:"type:varchar(16);default:karyawan" json:"role"`
	PasswordHash string    `json:"-"`
}
