package courseService

import (
	"errors"
	"time"

	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// enrollmentStatusRank orders the enrollment states. ApplyProgress only
// ever moves an enrollment up this ordering.
var enrollmentStatusRank = map[string]int{
	courseModels.EnrollmentStatusActive:    0,
	courseModels.EnrollmentStatusPassed:    1,
	courseModels.EnrollmentStatusCompleted: 2,
}

// EnrollmentStateMachine applies recomputed course progress to the
// learner's enrollment: active -> passed -> completed, one-way.
type EnrollmentStateMachine struct {
	DB *gorm.DB
}

func NewEnrollmentStateMachine(db *gorm.DB) *EnrollmentStateMachine {
	return &EnrollmentStateMachine{DB: db}
}

// ApplyProgress updates completion percentage and last-accessed time
// unconditionally, then transitions the status: completed when the course
// is passed at 100%, passed when the course is passed below that, otherwise
// unchanged. A terminal state is never regressed, even if a later recompute
// yields a lower percentage.
func (m *EnrollmentStateMachine) ApplyProgress(tx *gorm.DB, userID, courseID uint, progressPercent int, isCoursePassed bool) error {
	var enrollment courseModels.Enrollment
	err := tx.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEnrollmentNotFound
		}
		return err
	}

	now := time.Now().UTC()
	enrollment.CompletionPercentage = progressPercent
	enrollment.LastAccessedAt = &now

	next := enrollment.Status
	switch {
	case isCoursePassed && progressPercent == 100:
		next = courseModels.EnrollmentStatusCompleted
	case isCoursePassed:
		next = courseModels.EnrollmentStatusPassed
	}

	if enrollmentStatusRank[next] > enrollmentStatusRank[enrollment.Status] {
		enrollment.Status = next
		if next == courseModels.EnrollmentStatusCompleted {
			enrollment.CompletedAt = &now
		}
	}

	return tx.Save(&enrollment).Error
}
