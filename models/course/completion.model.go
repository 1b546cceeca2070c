package course

import (
	"time"

	"gorm.io/gorm"
)

// LessonCompletion tracks that a user passed a lesson's quiz at least once.
// One row per (user, lesson); resubmissions update the row in place.
type LessonCompletion struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_lesson_completion_user_lesson"`
	CourseID    uint       `json:"course_id" gorm:"index;not null"`
	LessonID    uint       `json:"lesson_id" gorm:"not null;uniqueIndex:idx_lesson_completion_user_lesson"`
	IsCompleted bool       `json:"is_completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completed_at"`
}
