package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Material is an attachment on a lesson (PDF, slides, sample code, ...).
type Material struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

type Lesson struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	CourseID    string `gorm:"index;type:text;not null" json:"courseId"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	VideoURL    string `json:"videoUrl"`

	Materials []Material `gorm:"serializer:json" json:"materials"`

	// Seconds; nil when unknown.
	Duration *int `json:"duration"`

	// Monotonic sort key within a course. Creation-time millis serve as
	// a day-one tie-break when callers don't supply one.
	Order int64 `gorm:"index" json:"order"`

	Course *Course `gorm:"foreignKey:CourseID" json:"-"`
}

func (l *Lesson) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if l.Order == 0 {
		l.Order = time.Now().UnixMilli()
	}
	return
}
