package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditAction string

const (
	ActionUpdateUserRole     AuditAction = "UPDATE_USER_ROLE"
	ActionDeleteUser         AuditAction = "DELETE_USER"
	ActionUpdateCourseStatus AuditAction = "UPDATE_COURSE_STATUS"
	ActionDeleteCourse       AuditAction = "DELETE_COURSE"
)

// AdminAuditLog records every admin moderation action.
type AdminAuditLog struct {
	ID         string      `gorm:"primaryKey;type:text" json:"id"`
	AdminID    string      `gorm:"index;type:text;not null" json:"adminId"`
	Action     AuditAction `gorm:"type:varchar(32);not null" json:"action"`
	TargetID   string      `gorm:"index;type:text" json:"targetId"`
	TargetType string      `gorm:"type:varchar(16)" json:"targetType"` // "user" | "course"
	Details    string      `gorm:"type:text" json:"details"`           // JSON snapshot of the change
	CreatedAt  time.Time   `json:"createdAt"`
}

func (a *AdminAuditLog) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}
