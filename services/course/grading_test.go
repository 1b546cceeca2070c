package courseService

import (
	"context"
	"testing"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeSubmissionAllCorrect(t *testing.T) {
	db := newTestDB(t)
	course, lessons := seedCourse(t, db, 1)
	quiz := seedQuiz(t, db, lessons[0].ID)
	q1 := seedQuestion(t, db, quiz.ID, "Paris", 10, 1)
	q2 := seedQuestion(t, db, quiz.ID, "42", 5, 2)
	seedEnrollment(t, db, 1, course.ID)

	engine := NewGradingEngine(db)
	result, err := engine.GradeSubmission(context.Background(), 1, lessons[0].ID, course.ID, map[uint]string{
		q1.ID: "Paris",
		q2.ID: "42",
	})
	require.NoError(t, err)

	assert.Equal(t, 15, result.TotalScore)
	assert.Equal(t, 2, result.TotalQuestions)
	assert.Equal(t, 2, result.FoundQuestions)
	assert.Equal(t, 100.0, result.Percent)
	assert.True(t, result.IsLessonCompleted)

	// Single-lesson course, so one pass finishes the whole course
	assert.True(t, result.IsCoursePassed)
	assert.Equal(t, 100, result.CourseProgressPercent)

	var completion courseModels.LessonCompletion
	require.NoError(t, db.Where("user_id = ? AND lesson_id = ?", 1, lessons[0].ID).First(&completion).Error)
	assert.True(t, completion.IsCompleted)
	require.NotNil(t, completion.CompletedAt)

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", 1, course.ID).First(&enrollment).Error)
	assert.Equal(t, courseModels.EnrollmentStatusCompleted, enrollment.Status)
	assert.Equal(t, 100, enrollment.CompletionPercentage)
	assert.NotNil(t, enrollment.CompletedAt)
	assert.NotNil(t, enrollment.LastAccessedAt)
}

func TestGradeSubmissionAnswerMatchingIsLenient(t *testing.T) {
	db := newTestDB(t)
	course, lessons := seedCourse(t, db, 1)
	quiz := seedQuiz(t, db, lessons[0].ID)
	q1 := seedQuestion(t, db, quiz.ID, "Paris", 10, 1)
	seedEnrollment(t, db, 1, course.ID)

	engine := NewGradingEngine(db)
	result, err := engine.GradeSubmission(context.Background(), 1, lessons[0].ID, course.ID, map[uint]string{
		q1.ID: "  pAris ",
	})
	require.NoError(t, err)

	assert.Equal(t, 10, result.TotalScore)
	assert.Equal(t, 100.0, result.Percent)
	assert.True(t, result.IsLessonCompleted)
}

func TestGradeSubmissionFailingScoreWritesNothing(t *testing.T) {
	db := newTestDB(t)
	course, lessons := seedCourse(t, db, 1)
	quiz := seedQuiz(t, db, lessons[0].ID)
	q1 := seedQuestion(t, db, quiz.ID, "Paris", 10, 1)
	q2 := seedQuestion(t, db, quiz.ID, "42", 10, 2)
	seedEnrollment(t, db, 1, course.ID)

	engine := NewGradingEngine(db)
	result, err := engine.GradeSubmission(context.Background(), 1, lessons[0].ID, course.ID, map[uint]string{
		q1.ID: "Paris",
		q2.ID: "London",
	})
	require.NoError(t, err)

	assert.Equal(t, 10, result.TotalScore)
	assert.Equal(t, 50.0, result.Percent)
	assert.False(t, result.IsLessonCompleted)
	assert.False(t, result.IsCoursePassed)
	assert.Equal(t, 0, result.CourseProgressPercent)

	var completions int64
	db.Model(&courseModels.LessonCompletion{}).Count(&completions)
	assert.Equal(t, int64(0), completions)

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", 1, course.ID).First(&enrollment).Error)
	assert.Equal(t, courseModels.EnrollmentStatusActive, enrollment.Status)
	assert.Equal(t, 0, enrollment.CompletionPercentage)
	assert.Nil(t, enrollment.LastAccessedAt)
}

func TestGradeSubmissionPassBoundary(t *testing.T) {
	db := newTestDB(t)
	course, lessons := seedCourse(t, db, 2)
	seedEnrollment(t, db, 1, course.ID)

	// Exactly 80%: 8000 of 10000 points
	quizA := seedQuiz(t, db, lessons[0].ID)
	a1 := seedQuestion(t, db, quizA.ID, "yes", 8000, 1)
	seedQuestion(t, db, quizA.ID, "no", 2000, 2)

	engine := NewGradingEngine(db)
	result, err := engine.GradeSubmission(context.Background(), 1, lessons[0].ID, course.ID, map[uint]string{
		a1.ID: "yes",
	})
	require.NoError(t, err)
	assert.Equal(t, 80.0, result.Percent)
	assert.True(t, result.IsLessonCompleted)

	// Just below: 7999 of 10000 points is 79.99%
	quizB := seedQuiz(t, db, lessons[1].ID)
	b1 := seedQuestion(t, db, quizB.ID, "yes", 7999, 1)
	seedQuestion(t, db, quizB.ID, "no", 2001, 2)

	result, err = engine.GradeSubmission(context.Background(), 1, lessons[1].ID, course.ID, map[uint]string{
		b1.ID: "yes",
	})
	require.NoError(t, err)
	assert.Equal(t, 79.99, result.Percent)
	assert.False(t, result.IsLessonCompleted)
}

func TestGradeSubmissionEmptyAnswers(t *testing.T) {
	db := newTestDB(t)
	course, lessons := seedCourse(t, db, 1)
	seedQuiz(t, db, lessons[0].ID)
	seedEnrollment(t, db, 1, course.ID)

	engine := NewGradingEngine(db)
	result, err := engine.GradeSubmission(context.Background(), 1, lessons[0].ID, course.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, &GradeResult{}, result)

	var completions int64
	db.Model(&courseModels.LessonCompletion{}).Count(&completions)
	assert.Equal(t, int64(0), completions)
}

func TestGradeSubmissionIgnoresUnknownQuestionIDs(t *testing.T) {
	db := newTestDB(t)
	course, lessons := seedCourse(t, db, 1)
	quiz := seedQuiz(t, db, lessons[0].ID)
	q1 := seedQuestion(t, db, quiz.ID, "Paris", 10, 1)
	seedEnrollment(t, db, 1, course.ID)

	engine := NewGradingEngine(db)
	result, err := engine.GradeSubmission(context.Background(), 1, lessons[0].ID, course.ID, map[uint]string{
		q1.ID: "Paris",
		99999: "stale",
	})
	require.NoError(t, err)

	// The stale id does not count toward the score either way
	assert.Equal(t, 2, result.TotalQuestions)
	assert.Equal(t, 1, result.FoundQuestions)
	assert.Equal(t, 10, result.TotalScore)
	assert.Equal(t, 100.0, result.Percent)
	assert.True(t, result.IsLessonCompleted)
}

func TestGradeSubmissionRollsBackWithoutEnrollment(t *testing.T) {
	db := newTestDB(t)
	course, lessons := seedCourse(t, db, 1)
	quiz := seedQuiz(t, db, lessons[0].ID)
	q1 := seedQuestion(t, db, quiz.ID, "Paris", 10, 1)

	engine := NewGradingEngine(db)
	_, err := engine.GradeSubmission(context.Background(), 1, lessons[0].ID, course.ID, map[uint]string{
		q1.ID: "Paris",
	})
	require.ErrorIs(t, err, ErrGradingFailed)

	// The lesson completion upsert must have rolled back with the failure
	var completions int64
	db.Model(&courseModels.LessonCompletion{}).Count(&completions)
	assert.Equal(t, int64(0), completions)
}

func TestGradeSubmissionFinishesCourse(t *testing.T) {
	db := newTestDB(t)
	course, lessons := seedCourse(t, db, 4)
	quiz := seedQuiz(t, db, lessons[3].ID)
	q1 := seedQuestion(t, db, quiz.ID, "Paris", 5, 1)
	q2 := seedQuestion(t, db, quiz.ID, "42", 5, 2)
	seedEnrollment(t, db, 1, course.ID)

	// Three lessons already completed before this submission
	aggregator := NewProgressAggregator(db)
	for _, lesson := range lessons[:3] {
		require.NoError(t, aggregator.MarkLessonComplete(db, 1, course.ID, lesson.ID))
	}

	engine := NewGradingEngine(db)
	result, err := engine.GradeSubmission(context.Background(), 1, lessons[3].ID, course.ID, map[uint]string{
		q1.ID: "paris",
		q2.ID: "42",
	})
	require.NoError(t, err)

	assert.Equal(t, 10, result.TotalScore)
	assert.Equal(t, 100.0, result.Percent)
	assert.True(t, result.IsLessonCompleted)
	assert.True(t, result.IsCoursePassed)
	assert.Equal(t, 100, result.CourseProgressPercent)

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", 1, course.ID).First(&enrollment).Error)
	assert.Equal(t, courseModels.EnrollmentStatusCompleted, enrollment.Status)
}

func TestGradeSubmissionPartialCourseProgress(t *testing.T) {
	db := newTestDB(t)
	course, lessons := seedCourse(t, db, 4)
	quiz := seedQuiz(t, db, lessons[0].ID)
	q1 := seedQuestion(t, db, quiz.ID, "Paris", 10, 1)
	seedEnrollment(t, db, 1, course.ID)

	engine := NewGradingEngine(db)
	result, err := engine.GradeSubmission(context.Background(), 1, lessons[0].ID, course.ID, map[uint]string{
		q1.ID: "Paris",
	})
	require.NoError(t, err)

	assert.True(t, result.IsLessonCompleted)
	assert.False(t, result.IsCoursePassed)
	assert.Equal(t, 25, result.CourseProgressPercent)

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", 1, course.ID).First(&enrollment).Error)
	assert.Equal(t, courseModels.EnrollmentStatusActive, enrollment.Status)
	assert.Equal(t, 25, enrollment.CompletionPercentage)
}
