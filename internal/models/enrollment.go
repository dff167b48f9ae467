package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enrollment links one user to one course. The composite unique index
// enforces at most one row per (course, user) pair at the store level,
// closing the check-then-create race.
type Enrollment struct {
	ID         string    `gorm:"primaryKey;type:text" json:"id"`
	CourseID   string    `gorm:"type:text;not null;uniqueIndex:idx_enrollment_course_user" json:"courseId"`
	UserID     string    `gorm:"type:text;not null;uniqueIndex:idx_enrollment_course_user" json:"userId"`
	EnrolledAt time.Time `json:"enrolledAt"`

	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	User   *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (e *Enrollment) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.EnrolledAt.IsZero() {
		e.EnrolledAt = time.Now()
	}
	return
}
