package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupInstructorQuizRoutes sets up all instructor quiz authoring routes
func SetupInstructorQuizRoutes(app *fiber.App) {
	quizGroup := app.Group("/instructor/quiz", middleware.JWTMiddleware, middleware.RequireRole("INSTRUCTOR"))

	// Quiz CRUD
	quizGroup.Post("/create", validators.CreateQuiz(), controllers.InstructorCreateQuiz)
	quizGroup.Get("/search", validators.SearchQuizzes(), controllers.SearchQuizzes)
	quizGroup.Get("/:id", validators.QuizID(), controllers.GetQuiz)
	quizGroup.Put("/:id", validators.UpdateQuiz(), controllers.InstructorUpdateQuiz)
	quizGroup.Delete("/:id", validators.QuizID(), controllers.InstructorDeleteQuiz)

	// Publishing
	quizGroup.Post("/:id/publish", validators.QuizID(), controllers.InstructorPublishQuiz)
	quizGroup.Post("/:id/unpublish", validators.QuizID(), controllers.InstructorUnpublishQuiz)

	// Question management
	quizGroup.Post("/:id/questions", validators.AddQuestions(), controllers.InstructorAddQuestions)
	quizGroup.Delete("/:id/questions/:question_id", validators.RemoveQuestion(), controllers.InstructorRemoveQuestion)

	// Statistics
	quizGroup.Get("/:id/stats", validators.QuizID(), controllers.InstructorQuizStats)

	lessonGroup := app.Group("/instructor/lesson", middleware.JWTMiddleware, middleware.RequireRole("INSTRUCTOR"))
	lessonGroup.Get("/:id/quizzes", validators.QuizID(), controllers.GetLessonQuizzes)
}
