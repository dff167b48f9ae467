package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

type User struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	DisplayName string `json:"displayName"`
	Email       string `gorm:"uniqueIndex" json:"email"`
	PhotoURL    string `json:"photoURL"`

	// Mutable only through admin role updates; new sign-ins default to student.
	Role Role `gorm:"type:text;default:'student'" json:"role"`

	// Set for local accounts; empty for OAuth-only users.
	Password string `json:"-"`

	// Populated for Google sign-ins.
	GoogleID *string `gorm:"index" json:"-"`

	// Player preference flags
	DarkMode bool `gorm:"default:false" json:"darkMode"`
	Autoplay bool `gorm:"default:true" json:"autoplay"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
