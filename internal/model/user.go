package model

import (
	"time"
)

type User struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Email     string `json:"email" gorm:"type:varchar(254);uniqueIndex;not null"`
	Username  string `json:"username" gorm:"type:varchar(150);uniqueIndex;not null"`
	FirstName string `json:"first_name" gorm:"type:varchar(150);not null"`
	LastName  string `json:"last_name" gorm:"type:varchar(150);not null"`
	// bcrypt hash, never serialized
	Password  string    `json:"-" gorm:"type:varchar(128);not null"`
	Avatar    *string   `json:"avatar" gorm:"type:varchar(512)"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (User) TableName() string { return "users" }
