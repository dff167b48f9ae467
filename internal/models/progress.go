package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Progress is the per-user per-course ledger of completed lessons.
// A lesson id appears at most once in CompletedLessons.
type Progress struct {
	ID       string `gorm:"primaryKey;type:text" json:"id"`
	CourseID string `gorm:"type:text;not null;uniqueIndex:idx_progress_course_user" json:"courseId"`
	UserID   string `gorm:"type:text;not null;uniqueIndex:idx_progress_course_user" json:"userId"`

	CompletedLessons []string `gorm:"serializer:json" json:"completedLessons"`

	LastUpdated time.Time `json:"lastUpdated"`
}

func (Progress) TableName() string {
	return "progress"
}

func (p *Progress) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.LastUpdated.IsZero() {
		p.LastUpdated = time.Now()
	}
	return
}

// HasLesson reports whether lessonID is already recorded as completed.
func (p *Progress) HasLesson(lessonID string) bool {
	for _, id := range p.CompletedLessons {
		if id == lessonID {
			return true
		}
	}
	return false
}
