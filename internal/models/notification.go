package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationTypeAnnouncement NotificationType = "course_announcement"
	NotificationTypeEnrollment   NotificationType = "new_enrollment"
	NotificationTypeNewLesson    NotificationType = "new_lesson"
	NotificationTypeCompletion   NotificationType = "course_completion"
	NotificationTypeDirect       NotificationType = "direct_message"
)

type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
)

type Notification struct {
	ID          string               `gorm:"primaryKey;type:text" json:"id"`
	Type        NotificationType     `gorm:"type:varchar(32);not null" json:"type"`
	RecipientID string               `gorm:"index;type:text;not null" json:"recipientId"`
	SenderID    *string              `gorm:"type:text" json:"senderId,omitempty"`
	CourseID    *string              `gorm:"index;type:text" json:"courseId,omitempty"`
	Title       string               `json:"title"`
	Message     string               `gorm:"type:text" json:"message"`
	Priority    NotificationPriority `gorm:"type:varchar(8);default:'medium'" json:"priority"`

	Read      bool       `gorm:"default:false" json:"read"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`

	// Type-specific payload
	Data map[string]interface{} `gorm:"serializer:json" json:"data,omitempty"`

	Recipient *User `gorm:"foreignKey:RecipientID" json:"-"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	if n.Priority == "" {
		n.Priority = PriorityMedium
	}
	return
}
