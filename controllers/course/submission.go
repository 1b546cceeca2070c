package controllers

import (
	"log"
	"time"

	"lms/database"
	"lms/events"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	courseService "lms/services/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SubmitQuiz grades a learner's quiz submission and updates progress
func SubmitQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	submission, ok := c.Locals("validatedSubmission").(*courseService.Submission)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Check enrollment
	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, submission.CourseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	// Check the lesson belongs to the course
	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", submission.LessonID, submission.CourseID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	engine := courseService.NewGradingEngine(database.Database.Db)
	result, err := engine.GradeSubmission(c.Context(), userID, submission.LessonID, submission.CourseID, submission.Answers)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to grade submission!", nil)
	}

	events.Emit(events.QuizSubmitted, fiber.Map{
		"user_id":   userID,
		"lesson_id": submission.LessonID,
		"course_id": submission.CourseID,
		"percent":   result.Percent,
		"passed":    result.IsLessonCompleted,
	})

	if result.IsLessonCompleted {
		events.Emit(events.LessonCompleted, fiber.Map{
			"user_id":   userID,
			"lesson_id": submission.LessonID,
			"course_id": submission.CourseID,
		})
	}

	// Side effects run after the grading transaction has committed; a
	// failure here must not fail the submission.
	if result.IsCoursePassed && result.CourseProgressPercent == 100 {
		handleCourseCompletion(user, submission.CourseID, result.CourseProgressPercent)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submission graded successfully!", result)
}

// handleCourseCompletion issues a certificate and fires the completion
// notifications. It is idempotent: a re-submit on an already completed
// course does not issue a second certificate.
func handleCourseCompletion(user models.User, courseID uint, completionPercentage int) {
	var existing courseModels.Certificate
	err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, courseID, false).First(&existing).Error
	if err == nil {
		return
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		log.Printf("Course completion for missing course %d: %v", courseID, err)
		return
	}

	certificate := courseModels.Certificate{
		UserID:            user.ID,
		CourseID:          courseID,
		CertificateNumber: uuid.New().String(),
		IssuedAt:          time.Now(),
	}
	if err := database.Database.Db.Create(&certificate).Error; err != nil {
		log.Printf("Error issuing certificate for user %d course %d: %v", user.ID, courseID, err)
		return
	}

	events.Emit(events.CourseCompleted, fiber.Map{
		"user_id":            user.ID,
		"course_id":          courseID,
		"certificate_number": certificate.CertificateNumber,
	})

	go func() {
		if err := utils.SendCourseCompletionEmail(user.Email, user.Name, course.Title, certificate.CertificateNumber); err != nil {
			log.Printf("Error sending completion email to %s: %v", user.Email, err)
		}
	}()
	go utils.NotifyCourseCompletion(user.ID, courseID, completionPercentage)
}
