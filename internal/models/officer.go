package models

import (
	"time"

	"gorm.io/gorm"
)

// LoanOfficer is an authenticated operator of the intake service.
type LoanOfficer struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null"`
	Password     string `gorm:"not null"`
	Name         string `gorm:"not null"`
	Phone        string `gorm:"uniqueIndex;not null"`
	Branch       string
	Role         string `gorm:"default:'officer'"`
	Status       string `gorm:"default:'active'"`
	LastLoginAt  time.Time
	LastLoginIP  string
	TokenVersion int `gorm:"default:1"`
}
