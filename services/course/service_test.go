package courseService

import (
	"testing"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database with the course schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_fk=1"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&courseModels.Course{},
		&courseModels.Lesson{},
		&courseModels.Quiz{},
		&courseModels.Question{},
		&courseModels.LessonCompletion{},
		&courseModels.Enrollment{},
	)
	require.NoError(t, err)

	// cache=shared keeps the same database alive across pool connections,
	// so it must be dropped explicitly between tests.
	t.Cleanup(func() {
		db.Exec("DELETE FROM courses")
		db.Exec("DELETE FROM lessons")
		db.Exec("DELETE FROM quizzes")
		db.Exec("DELETE FROM questions")
		db.Exec("DELETE FROM lesson_completions")
		db.Exec("DELETE FROM enrollments")
	})

	return db
}

func seedCourse(t *testing.T, db *gorm.DB, lessonCount int) (courseModels.Course, []courseModels.Lesson) {
	t.Helper()

	course := courseModels.Course{Title: "Intro to Geography", IsPublished: true}
	require.NoError(t, db.Create(&course).Error)

	lessons := make([]courseModels.Lesson, lessonCount)
	for i := range lessons {
		lessons[i] = courseModels.Lesson{
			CourseID:    course.ID,
			Title:       "Lesson",
			OrderIndex:  i + 1,
			IsPublished: true,
		}
		require.NoError(t, db.Create(&lessons[i]).Error)
	}
	return course, lessons
}

func seedQuiz(t *testing.T, db *gorm.DB, lessonID uint) courseModels.Quiz {
	t.Helper()

	quiz := courseModels.Quiz{
		Title:       "Capitals",
		LessonID:    lessonID,
		Duration:    30,
		MaxAttempts: 1,
		Status:      courseModels.QuizStatusPublished,
	}
	require.NoError(t, db.Create(&quiz).Error)
	return quiz
}

func seedQuestion(t *testing.T, db *gorm.DB, quizID uint, answer string, points, order int) courseModels.Question {
	t.Helper()

	question := courseModels.Question{
		QuizID:        quizID,
		Content:       "Question " + answer,
		Type:          courseModels.QuestionTypeShortAnswer,
		CorrectAnswer: answer,
		Points:        points,
		OrderIndex:    order,
	}
	require.NoError(t, db.Create(&question).Error)
	return question
}

func seedEnrollment(t *testing.T, db *gorm.DB, userID, courseID uint) courseModels.Enrollment {
	t.Helper()

	enrollment := courseModels.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Status:   courseModels.EnrollmentStatusActive,
	}
	require.NoError(t, db.Create(&enrollment).Error)
	return enrollment
}
