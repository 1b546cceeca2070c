package courseService

import (
	"math"
	"time"

	courseModels "lms/models/course"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CourseProgress is the outcome of a course-wide progress recompute.
type CourseProgress struct {
	TotalLessons          int
	CompletedLessons      int
	CourseProgressPercent int
	IsCoursePassed        bool
}

// ProgressAggregator maintains per-lesson completion rows and recomputes a
// learner's course-wide completion ratio from scratch.
type ProgressAggregator struct {
	DB        *gorm.DB
	PassRatio float64 // course gate, defaults to CoursePassRatio
}

func NewProgressAggregator(db *gorm.DB) *ProgressAggregator {
	return &ProgressAggregator{DB: db, PassRatio: CoursePassRatio}
}

// MarkLessonComplete upserts the (user, lesson) completion row. Conflicts
// resolve on the unique index, so concurrent duplicate submits end up as a
// no-op update instead of a uniqueness violation or a read-then-write race.
// On resubmission the flag is forced true and the timestamp refreshed.
func (p *ProgressAggregator) MarkLessonComplete(tx *gorm.DB, userID, courseID, lessonID uint) error {
	now := time.Now().UTC()
	completion := courseModels.LessonCompletion{
		UserID:      userID,
		CourseID:    courseID,
		LessonID:    lessonID,
		IsCompleted: true,
		CompletedAt: &now,
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"is_completed": true,
			"completed_at": now,
			"updated_at":   now,
		}),
	}).Create(&completion).Error
}

// RecomputeCourseProgress counts the course's lessons against the user's
// distinct completed lessons. Percent is 0 for a course with no lessons;
// the pass gate is the exact ratio, independent of the rounded percent.
// Both counts derive from the same live lesson set, so a completion row
// for a since-deleted lesson cannot push the ratio past 1.
func (p *ProgressAggregator) RecomputeCourseProgress(tx *gorm.DB, userID, courseID uint) (*CourseProgress, error) {
	liveLessons := tx.Model(&courseModels.Lesson{}).
		Select("id").
		Where("course_id = ? AND is_deleted = ?", courseID, false)

	var totalLessons int64
	err := tx.Model(&courseModels.Lesson{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Count(&totalLessons).Error
	if err != nil {
		return nil, err
	}

	var completedLessons int64
	err = tx.Model(&courseModels.LessonCompletion{}).
		Where("user_id = ? AND course_id = ? AND is_completed = ?", userID, courseID, true).
		Where("lesson_id IN (?)", liveLessons).
		Distinct("lesson_id").
		Count(&completedLessons).Error
	if err != nil {
		return nil, err
	}

	progress := &CourseProgress{
		TotalLessons:     int(totalLessons),
		CompletedLessons: int(completedLessons),
	}
	if totalLessons > 0 {
		progress.CourseProgressPercent = int(math.Round(float64(completedLessons) * 100 / float64(totalLessons)))
		progress.IsCoursePassed = float64(completedLessons)/float64(totalLessons) >= p.PassRatio
	}
	return progress, nil
}
