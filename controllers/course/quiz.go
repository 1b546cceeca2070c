package controllers

import (
	"errors"

	"lms/database"
	"lms/middleware"
	courseService "lms/services/course"

	"github.com/gofiber/fiber/v2"
)

// quizErrorResponse maps service errors to HTTP responses
func quizErrorResponse(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, courseService.ErrValidation):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	case errors.Is(err, courseService.ErrQuizNotFound), errors.Is(err, courseService.ErrQuestionNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, err.Error(), nil)
	default:
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, fallback, nil)
	}
}

// InstructorCreateQuiz creates a quiz with its questions
func InstructorCreateQuiz(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedQuiz").(*courseService.QuizInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	catalog := courseService.NewQuizCatalog(database.Database.Db)
	quiz, err := catalog.CreateWithQuestions(c.Context(), *reqData)
	if err != nil {
		return quizErrorResponse(c, err, "Failed to create quiz!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz created successfully!", quiz)
}

// GetQuiz returns a quiz with its ordered questions
func GetQuiz(c *fiber.Ctx) error {
	quizID := c.Locals("quizID").(uint)

	catalog := courseService.NewQuizCatalog(database.Database.Db)
	quiz, err := catalog.GetWithQuestions(c.Context(), quizID)
	if err != nil {
		return quizErrorResponse(c, err, "Failed to retrieve quiz!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", quiz)
}

// InstructorUpdateQuiz applies a partial update to a quiz
func InstructorUpdateQuiz(c *fiber.Ctx) error {
	quizID := c.Locals("quizID").(uint)
	reqData, ok := c.Locals("validatedQuizUpdate").(*courseService.QuizUpdate)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	catalog := courseService.NewQuizCatalog(database.Database.Db)
	quiz, err := catalog.Update(c.Context(), quizID, *reqData)
	if err != nil {
		return quizErrorResponse(c, err, "Failed to update quiz!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz updated successfully!", quiz)
}

// InstructorDeleteQuiz deletes a quiz and its questions
func InstructorDeleteQuiz(c *fiber.Ctx) error {
	quizID := c.Locals("quizID").(uint)

	catalog := courseService.NewQuizCatalog(database.Database.Db)
	if err := catalog.Delete(c.Context(), quizID); err != nil {
		return quizErrorResponse(c, err, "Failed to delete quiz!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz deleted successfully!", nil)
}

// InstructorPublishQuiz marks a quiz as published
func InstructorPublishQuiz(c *fiber.Ctx) error {
	quizID := c.Locals("quizID").(uint)

	catalog := courseService.NewQuizCatalog(database.Database.Db)
	quiz, err := catalog.Publish(c.Context(), quizID)
	if err != nil {
		return quizErrorResponse(c, err, "Failed to publish quiz!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz published successfully!", quiz)
}

// InstructorUnpublishQuiz moves a quiz back to draft
func InstructorUnpublishQuiz(c *fiber.Ctx) error {
	quizID := c.Locals("quizID").(uint)

	catalog := courseService.NewQuizCatalog(database.Database.Db)
	quiz, err := catalog.Unpublish(c.Context(), quizID)
	if err != nil {
		return quizErrorResponse(c, err, "Failed to unpublish quiz!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz unpublished successfully!", quiz)
}

// InstructorAddQuestions appends questions to an existing quiz
func InstructorAddQuestions(c *fiber.Ctx) error {
	quizID := c.Locals("quizID").(uint)
	questions, ok := c.Locals("validatedQuestions").([]courseService.QuestionInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	bank := courseService.NewQuestionBank(database.Database.Db)
	quiz, err := bank.AppendQuestions(c.Context(), quizID, questions)
	if err != nil {
		return quizErrorResponse(c, err, "Failed to add questions to quiz!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questions added successfully!", quiz)
}

// InstructorRemoveQuestion removes a question and renumbers the rest
func InstructorRemoveQuestion(c *fiber.Ctx) error {
	quizID := c.Locals("quizID").(uint)
	questionID := c.Locals("questionID").(uint)

	bank := courseService.NewQuestionBank(database.Database.Db)
	if err := bank.RemoveQuestion(c.Context(), quizID, questionID); err != nil {
		return quizErrorResponse(c, err, "Failed to remove question!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question removed successfully!", nil)
}

// SearchQuizzes finds quizzes with filters and pagination
func SearchQuizzes(c *fiber.Ctx) error {
	filters := c.Locals("searchFilters").(courseService.QuizSearchFilters)
	page := c.Locals("searchPage").(int)
	limit := c.Locals("searchLimit").(int)

	catalog := courseService.NewQuizCatalog(database.Database.Db)
	quizzes, total, err := catalog.Search(c.Context(), filters, page, limit)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to search quizzes!", nil)
	}

	response := map[string]interface{}{
		"quizzes": quizzes,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quizzes fetched successfully!", response)
}

// GetLessonQuizzes lists the quizzes of a lesson with question counts
func GetLessonQuizzes(c *fiber.Ctx) error {
	lessonID := c.Locals("quizID").(uint) // reused :id param validator

	catalog := courseService.NewQuizCatalog(database.Database.Db)
	quizzes, err := catalog.ListByLesson(c.Context(), lessonID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to retrieve quizzes by lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quizzes fetched successfully!", quizzes)
}

// InstructorQuizStats returns quiz statistics for dashboards
func InstructorQuizStats(c *fiber.Ctx) error {
	quizID := c.Locals("quizID").(uint)

	catalog := courseService.NewQuizCatalog(database.Database.Db)
	stats, err := catalog.Stats(c.Context(), quizID)
	if err != nil {
		return quizErrorResponse(c, err, "Failed to get quiz statistics!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz statistics fetched successfully!", stats)
}
