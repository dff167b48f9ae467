package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseStatus string

const (
	CourseStatusPublished CourseStatus = "published"
	CourseStatusPending   CourseStatus = "pending"
	CourseStatusRejected  CourseStatus = "rejected"
)

type Course struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title       string  `gorm:"not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Category    string  `gorm:"index" json:"category"`
	Duration    string  `json:"duration"` // free-text label, e.g. "2-4 hours"
	Price       float64 `gorm:"default:0" json:"price"`
	CoverImage  string  `json:"coverImage"`

	InstructorID string       `gorm:"index;type:text;not null" json:"instructorId"`
	Status       CourseStatus `gorm:"type:text;default:'published'" json:"status"`

	// Denormalized counters, maintained by the owning operations
	// (enroll, lesson create/delete, rating recompute). Eventually
	// consistent with the source relations.
	Students     int64   `gorm:"default:0" json:"students"`
	Lessons      int64   `gorm:"default:0" json:"lessons"`
	Rating       float64 `gorm:"default:0" json:"rating"` // weighted avg, 1 decimal
	TotalRatings int64   `gorm:"default:0" json:"totalRatings"`
	TotalReviews int64   `gorm:"default:0" json:"totalReviews"`

	// Star value "1".."5" -> count
	RatingDistribution map[string]int64 `gorm:"serializer:json" json:"ratingDistribution"`

	LastRatingUpdate *time.Time `json:"lastRatingUpdate,omitempty"`

	Instructor *User `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Status == "" {
		c.Status = CourseStatusPublished
	}
	return
}
