package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment statuses, ordered: active -> passed -> completed.
// Transitions are one-way; an enrollment is never demoted.
const (
	EnrollmentStatusActive    = "active"
	EnrollmentStatusPassed    = "passed"
	EnrollmentStatusCompleted = "completed"
)

// Enrollment tracks a user's enrollment in a course with progress
type Enrollment struct {
	gorm.Model
	UserID               uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID             uint       `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	Status               string     `json:"status" gorm:"default:'active'"`
	CompletionPercentage int        `json:"completion_percentage" gorm:"default:0"` // 0-100
	LastAccessedAt       *time.Time `json:"last_accessed_at"`
	CompletedAt          *time.Time `json:"completed_at"`
	IsDeleted            bool       `gorm:"default:false"`
}
