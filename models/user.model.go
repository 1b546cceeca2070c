package models

import (
	"time"

	"gorm.io/gorm"
)

// User mirrors the account record owned by the auth service. This service
// only reads id, role and contact fields; credentials live elsewhere.
type User struct {
	gorm.Model
	ProfileImage string    `gorm:"default:''"`
	Name         string    `gorm:"default:''"`
	Email        string    `gorm:"unique;not null"`
	Role         string    `gorm:"default:'STUDENT'"` // STUDENT, INSTRUCTOR, ADMIN
	LastLogin    time.Time `gorm:"default:NULL"`
	IsDeleted    bool      `gorm:"default:false"`
}
