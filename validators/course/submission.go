package courseValidator

import (
	"strconv"
	"strings"

	"lms/middleware"
	courseService "lms/services/course"

	"github.com/gofiber/fiber/v2"
)

// SubmitQuiz validates a learner's quiz submission. Answer keys arrive as
// string question ids in the JSON body and are converted to numeric ids.
func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			LessonID uint              `json:"lesson_id"`
			CourseID uint              `json:"course_id"`
			Answers  map[string]string `json:"answers"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.LessonID == 0 {
			errors["lesson_id"] = "Valid lesson_id is required!"
		}
		if reqData.CourseID == 0 {
			errors["course_id"] = "Valid course_id is required!"
		}
		if len(reqData.Answers) == 0 {
			errors["answers"] = "Answers must be a non-empty object!"
		}

		answers := make(map[uint]string, len(reqData.Answers))
		for idStr, answer := range reqData.Answers {
			id, err := strconv.Atoi(strings.TrimSpace(idStr))
			if err != nil || id <= 0 {
				errors["answers"] = "Answer keys must be valid question ids!"
				break
			}
			answers[uint(id)] = answer
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSubmission", &courseService.Submission{
			LessonID: reqData.LessonID,
			CourseID: reqData.CourseID,
			Answers:  answers,
		})
		return c.Next()
	}
}

// EnrollCourse validates the course id path parameter for enrollment
func EnrollCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// EnrollmentList validates optional pagination for the enrollment listing
func EnrollmentList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := c.QueryInt("page", 1)
		limit := c.QueryInt("limit", 10)

		if page < 1 || limit < 1 || limit > 100 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid pagination parameters!", nil)
		}

		c.Locals("enrollPage", page)
		c.Locals("enrollLimit", limit)
		return c.Next()
	}
}
