package courseService

import (
	"context"
	"log"
	"math"
	"strings"

	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// Pass thresholds. Both gates sit at 80% but are applied independently:
// LessonPassPercent against a single submission's score, CoursePassRatio
// against the share of completed lessons in a course.
const (
	LessonPassPercent = 80.0
	CoursePassRatio   = 0.8
)

// Submission is a learner's answers for one lesson's quiz, keyed by
// question id. It is consumed by grading, never persisted as its own row.
type Submission struct {
	LessonID uint            `json:"lesson_id"`
	CourseID uint            `json:"course_id"`
	Answers  map[uint]string `json:"answers"`
}

// GradeResult is returned to the caller after a submission is graded.
type GradeResult struct {
	TotalScore            int     `json:"totalScore"`
	TotalQuestions        int     `json:"totalQuestions"`
	FoundQuestions        int     `json:"foundQuestions"`
	Percent               float64 `json:"percent"`
	IsLessonCompleted     bool    `json:"isLessonCompleted"`
	IsCoursePassed        bool    `json:"isCoursePassed"`
	CourseProgressPercent int     `json:"courseProgressPercent"`
}

// GradingEngine scores submissions and, on a passing score, drives the
// lesson completion, course progress and enrollment updates inside one
// transaction.
type GradingEngine struct {
	DB          *gorm.DB
	PassPercent float64 // lesson gate, defaults to LessonPassPercent

	progress    *ProgressAggregator
	enrollments *EnrollmentStateMachine
}

func NewGradingEngine(db *gorm.DB) *GradingEngine {
	return &GradingEngine{
		DB:          db,
		PassPercent: LessonPassPercent,
		progress:    NewProgressAggregator(db),
		enrollments: NewEnrollmentStateMachine(db),
	}
}

// GradeSubmission scores the learner's answers against the stored correct
// answers and point values. Question ids with no stored row are silently
// excluded (stale client ids). If the score reaches the lesson threshold,
// the lesson completion upsert, course progress recompute and enrollment
// update all run in the same transaction; any failure rolls everything
// back. An empty answers map returns an all-zero result and writes nothing.
func (e *GradingEngine) GradeSubmission(ctx context.Context, userID, lessonID, courseID uint, answers map[uint]string) (*GradeResult, error) {
	result := &GradeResult{}

	// Degenerate submit (e.g. timer expiry with nothing answered) must
	// never touch existing progress.
	if len(answers) == 0 {
		return result, nil
	}

	questionIDs := make([]uint, 0, len(answers))
	for id := range answers {
		questionIDs = append(questionIDs, id)
	}

	err := e.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var questions []courseModels.Question
		if err := tx.Where("id IN ?", questionIDs).Find(&questions).Error; err != nil {
			return err
		}

		// Integer sums stay exact; float enters only for the percent.
		totalScore := 0
		maxScore := 0
		for _, q := range questions {
			maxScore += q.Points
			if answerMatches(answers[q.ID], q.CorrectAnswer) {
				totalScore += q.Points
			}
		}

		percent := 0.0
		if maxScore > 0 {
			percent = float64(totalScore) * 100 / float64(maxScore)
		}

		result.TotalScore = totalScore
		result.TotalQuestions = len(answers)
		result.FoundQuestions = len(questions)
		result.Percent = math.Round(percent*100) / 100
		result.IsLessonCompleted = percent >= e.PassPercent

		// Non-passing attempts are scored but must not mutate course state
		if !result.IsLessonCompleted {
			return nil
		}

		if err := e.progress.MarkLessonComplete(tx, userID, courseID, lessonID); err != nil {
			return err
		}

		agg, err := e.progress.RecomputeCourseProgress(tx, userID, courseID)
		if err != nil {
			return err
		}
		result.CourseProgressPercent = agg.CourseProgressPercent
		result.IsCoursePassed = agg.IsCoursePassed

		return e.enrollments.ApplyProgress(tx, userID, courseID, agg.CourseProgressPercent, agg.IsCoursePassed)
	})
	if err != nil {
		log.Printf("Error grading submission for user %d lesson %d: %v", userID, lessonID, err)
		return nil, ErrGradingFailed
	}

	return result, nil
}

// answerMatches compares a learner answer against the stored key using
// case-insensitive, whitespace-trimmed equality.
func answerMatches(given, correct string) bool {
	return strings.EqualFold(strings.TrimSpace(given), strings.TrimSpace(correct))
}
