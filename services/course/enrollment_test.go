package courseService

import (
	"testing"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyProgressTransitions(t *testing.T) {
	db := newTestDB(t)
	course, _ := seedCourse(t, db, 1)
	seedEnrollment(t, db, 1, course.ID)

	machine := NewEnrollmentStateMachine(db)

	// Not passed yet: stays active, percentage still updates
	require.NoError(t, machine.ApplyProgress(db, 1, course.ID, 40, false))
	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ?", 1).First(&enrollment).Error)
	assert.Equal(t, courseModels.EnrollmentStatusActive, enrollment.Status)
	assert.Equal(t, 40, enrollment.CompletionPercentage)
	assert.NotNil(t, enrollment.LastAccessedAt)
	assert.Nil(t, enrollment.CompletedAt)

	// Passed below 100 percent
	require.NoError(t, machine.ApplyProgress(db, 1, course.ID, 80, true))
	require.NoError(t, db.Where("user_id = ?", 1).First(&enrollment).Error)
	assert.Equal(t, courseModels.EnrollmentStatusPassed, enrollment.Status)
	assert.Nil(t, enrollment.CompletedAt)

	// Passed at 100 percent
	require.NoError(t, machine.ApplyProgress(db, 1, course.ID, 100, true))
	require.NoError(t, db.Where("user_id = ?", 1).First(&enrollment).Error)
	assert.Equal(t, courseModels.EnrollmentStatusCompleted, enrollment.Status)
	assert.Equal(t, 100, enrollment.CompletionPercentage)
	require.NotNil(t, enrollment.CompletedAt)
}

func TestApplyProgressNeverDemotes(t *testing.T) {
	db := newTestDB(t)
	course, _ := seedCourse(t, db, 1)
	seedEnrollment(t, db, 1, course.ID)

	machine := NewEnrollmentStateMachine(db)
	require.NoError(t, machine.ApplyProgress(db, 1, course.ID, 100, true))

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ?", 1).First(&enrollment).Error)
	require.Equal(t, courseModels.EnrollmentStatusCompleted, enrollment.Status)
	completedAt := enrollment.CompletedAt

	// A later recompute at a lower ratio must not pull the status back,
	// but the percentage still tracks the latest recompute
	require.NoError(t, machine.ApplyProgress(db, 1, course.ID, 80, true))
	require.NoError(t, db.Where("user_id = ?", 1).First(&enrollment).Error)
	assert.Equal(t, courseModels.EnrollmentStatusCompleted, enrollment.Status)
	assert.Equal(t, 80, enrollment.CompletionPercentage)
	assert.Equal(t, completedAt.Unix(), enrollment.CompletedAt.Unix())

	require.NoError(t, machine.ApplyProgress(db, 1, course.ID, 50, false))
	require.NoError(t, db.Where("user_id = ?", 1).First(&enrollment).Error)
	assert.Equal(t, courseModels.EnrollmentStatusCompleted, enrollment.Status)
	assert.Equal(t, 50, enrollment.CompletionPercentage)
}

func TestApplyProgressMissingEnrollment(t *testing.T) {
	db := newTestDB(t)
	course, _ := seedCourse(t, db, 1)

	machine := NewEnrollmentStateMachine(db)
	err := machine.ApplyProgress(db, 1, course.ID, 100, true)
	require.ErrorIs(t, err, ErrEnrollmentNotFound)
}

func TestApplyProgressIgnoresDeletedEnrollment(t *testing.T) {
	db := newTestDB(t)
	course, _ := seedCourse(t, db, 1)
	enrollment := seedEnrollment(t, db, 1, course.ID)
	require.NoError(t, db.Model(&enrollment).Update("is_deleted", true).Error)

	machine := NewEnrollmentStateMachine(db)
	err := machine.ApplyProgress(db, 1, course.ID, 100, true)
	require.ErrorIs(t, err, ErrEnrollmentNotFound)
}
