package courseValidator

import (
	"strconv"
	"strings"

	"lms/middleware"
	courseService "lms/services/course"

	"github.com/gofiber/fiber/v2"
)

// CreateQuiz validates the instructor quiz creation request
func CreateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(courseService.QuizInput)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.LessonID == 0 {
			errors["lesson_id"] = "Valid lesson_id is required!"
		}

		if reqData.Duration <= 0 {
			errors["duration"] = "Duration must be a positive number!"
		}

		if reqData.MaxAttempts < 0 {
			errors["max_attempts"] = "Max attempts cannot be negative!"
		}

		for i, q := range reqData.Questions {
			key := "questions[" + strconv.Itoa(i) + "]"
			if strings.TrimSpace(q.Content) == "" {
				errors[key] = "Question content is required!"
			} else if strings.TrimSpace(q.CorrectAnswer) == "" {
				errors[key] = "Correct answer is required!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}

// UpdateQuiz validates the instructor quiz update request
func UpdateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		quizID, err := parseQuizID(c)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Quiz ID!", nil)
		}

		reqData := new(courseService.QuizUpdate)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil && len(strings.TrimSpace(*reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.Duration != nil && *reqData.Duration <= 0 {
			errors["duration"] = "Duration must be a positive number!"
		}
		if reqData.LessonID != nil && *reqData.LessonID == 0 {
			errors["lesson_id"] = "Valid lesson_id is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("quizID", quizID)
		c.Locals("validatedQuizUpdate", reqData)
		return c.Next()
	}
}

// QuizID validates the quiz id path parameter
func QuizID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		quizID, err := parseQuizID(c)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Quiz ID!", nil)
		}

		c.Locals("quizID", quizID)
		return c.Next()
	}
}

// AddQuestions validates the add-questions request
func AddQuestions() fiber.Handler {
	return func(c *fiber.Ctx) error {
		quizID, err := parseQuizID(c)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Quiz ID!", nil)
		}

		reqData := new(struct {
			Questions []courseService.QuestionInput `json:"questions"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(reqData.Questions) == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Questions array cannot be empty!", nil)
		}

		c.Locals("quizID", quizID)
		c.Locals("validatedQuestions", reqData.Questions)
		return c.Next()
	}
}

// RemoveQuestion validates the remove-question path parameters
func RemoveQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		quizID, err := parseQuizID(c)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Quiz ID!", nil)
		}

		questionIDStr := strings.TrimSpace(c.Params("question_id"))
		questionID, err := strconv.Atoi(questionIDStr)
		if err != nil || questionID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Question ID!", nil)
		}

		c.Locals("quizID", quizID)
		c.Locals("questionID", uint(questionID))
		return c.Next()
	}
}

// SearchQuizzes validates the quiz search query parameters
func SearchQuizzes() fiber.Handler {
	return func(c *fiber.Ctx) error {
		filters := courseService.QuizSearchFilters{
			Status: strings.TrimSpace(c.Query("status")),
			Title:  strings.TrimSpace(c.Query("title")),
		}

		if lessonIDStr := c.Query("lesson_id"); lessonIDStr != "" {
			lessonID, err := strconv.Atoi(lessonIDStr)
			if err != nil || lessonID <= 0 {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson_id!", nil)
			}
			id := uint(lessonID)
			filters.LessonID = &id
		}

		page := c.QueryInt("page", 1)
		limit := c.QueryInt("limit", 10)

		c.Locals("searchFilters", filters)
		c.Locals("searchPage", page)
		c.Locals("searchLimit", limit)
		return c.Next()
	}
}

// parseQuizID parses the :id path parameter
func parseQuizID(c *fiber.Ctx) (uint, error) {
	quizIDStr := strings.TrimSpace(c.Params("id"))
	quizID, err := strconv.Atoi(quizIDStr)
	if err != nil || quizID <= 0 {
		return 0, fiber.ErrBadRequest
	}
	return uint(quizID), nil
}
