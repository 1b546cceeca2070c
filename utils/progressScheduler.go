package utils

import (
	"fmt"
	"log"
	"time"

	"lms/database"
	courseModels "lms/models/course"
	courseService "lms/services/course"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[PROGRESS-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// reconcileEnrollmentProgress recomputes every active enrollment's
// completion percentage from the lesson_completion rows. Submissions keep
// the two in sync transactionally; this pass heals drift from authoring
// changes (lessons added to or removed from a course after students passed
// quizzes).
func reconcileEnrollmentProgress() {
	db := database.Database.Db
	progress := courseService.NewProgressAggregator(db)
	enrollments := courseService.NewEnrollmentStateMachine(db)

	var rows []courseModels.Enrollment
	if err := db.Where("is_deleted = ?", false).Find(&rows).Error; err != nil {
		logScheduler("Error fetching enrollments: " + err.Error())
		return
	}

	reconciled := 0
	for _, enrollment := range rows {
		err := db.Transaction(func(tx *gorm.DB) error {
			agg, err := progress.RecomputeCourseProgress(tx, enrollment.UserID, enrollment.CourseID)
			if err != nil {
				return err
			}
			if agg.CourseProgressPercent == enrollment.CompletionPercentage {
				return nil
			}
			reconciled++
			return enrollments.ApplyProgress(tx, enrollment.UserID, enrollment.CourseID, agg.CourseProgressPercent, agg.IsCoursePassed)
		})
		if err != nil {
			logScheduler(fmt.Sprintf("Error reconciling enrollment %d: %v", enrollment.ID, err))
		}
	}

	if reconciled > 0 {
		logScheduler(fmt.Sprintf("Reconciled %d enrollments", reconciled))
	}
}

// InitializeProgressScheduler starts the nightly enrollment reconciliation
func InitializeProgressScheduler() *cron.Cron {
	c := cron.New()

	// Nightly at 02:00 server time, outside peak submission hours
	if _, err := c.AddFunc("0 2 * * *", func() {
		logScheduler("Starting enrollment progress reconciliation")
		reconcileEnrollmentProgress()
		logScheduler("Enrollment progress reconciliation finished")
	}); err != nil {
		log.Fatalf("Failed to schedule progress reconciliation: %v", err)
	}

	c.Start()
	logScheduler("Progress scheduler started")
	return c
}
