package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email               string `gorm:"uniqueIndex;not null"`
	Password            string `gorm:"not null" json:"-"`
	Role                string `gorm:"default:'user'"`
	Status              string `gorm:"default:'active'"`
	TokenVersion        int    `gorm:"default:1"`
	LastLoginAt         time.Time
	FailedLoginAttempts int `gorm:"default:0"`

	Profile *Profile `gorm:"foreignKey:UserID"`
}
