package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rating is a 1-5 star score with an optional review for one course.
// One row per (course, user); resubmitting updates in place.
type Rating struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	CourseID string `gorm:"type:text;not null;uniqueIndex:idx_rating_course_user" json:"courseId"`
	UserID   string `gorm:"type:text;not null;uniqueIndex:idx_rating_course_user" json:"userId"`

	Rating int    `gorm:"not null" json:"rating"` // 1..5
	Review string `gorm:"type:text" json:"review"`
	Title  string `json:"title"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (r *Rating) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}
