package courseService

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// QuizInput is the payload for creating a quiz, optionally with questions.
type QuizInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	LessonID    uint            `json:"lesson_id"`
	Duration    int             `json:"duration"`
	MaxAttempts int             `json:"max_attempts"`
	Questions   []QuestionInput `json:"questions"`
}

// QuizUpdate carries optional fields for a partial quiz update.
type QuizUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	LessonID    *uint   `json:"lesson_id"`
	Duration    *int    `json:"duration"`
	MaxAttempts *int    `json:"max_attempts"`
}

// QuestionView is a question with its options parsed from storage.
type QuestionView struct {
	ID            uint     `json:"id"`
	Content       string   `json:"content"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Points        int      `json:"points"`
	OrderIndex    int      `json:"order_index"`
}

// QuizWithQuestions is a quiz plus its ordered question list.
type QuizWithQuestions struct {
	courseModels.Quiz
	Questions []QuestionView `json:"questions"`
}

// QuizSummary is a quiz row with its question count, for listings.
type QuizSummary struct {
	courseModels.Quiz
	QuestionCount int64 `json:"question_count"`
}

// QuizSearchFilters narrows a quiz search.
type QuizSearchFilters struct {
	LessonID *uint
	Status   string
	Title    string
}

// QuizStats summarises a quiz for instructor dashboards.
type QuizStats struct {
	QuizID         uint   `json:"quiz_id"`
	Title          string `json:"title"`
	TotalQuestions int    `json:"total_questions"`
	TotalPoints    int    `json:"total_points"`
	Status         string `json:"status"`
	Duration       int    `json:"duration"`
	MaxAttempts    int    `json:"max_attempts"`
}

// QuizCatalog owns quiz records and composes QuestionBank to serve quizzes
// with their questions.
type QuizCatalog struct {
	DB   *gorm.DB
	bank *QuestionBank
}

func NewQuizCatalog(db *gorm.DB) *QuizCatalog {
	return &QuizCatalog{DB: db, bank: NewQuestionBank(db)}
}

// CreateWithQuestions creates a quiz and its questions in one transaction.
// The publish status is forced to draft regardless of caller input.
func (s *QuizCatalog) CreateWithQuestions(ctx context.Context, in QuizInput) (*QuizWithQuestions, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if in.LessonID == 0 {
		return nil, fmt.Errorf("%w: valid lesson_id is required", ErrValidation)
	}
	if in.Duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be greater than 0", ErrValidation)
	}
	for i, q := range in.Questions {
		if err := validateQuestionInput(q, i); err != nil {
			return nil, err
		}
	}

	maxAttempts := in.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	quiz := courseModels.Quiz{
		Title:       in.Title,
		Description: in.Description,
		LessonID:    in.LessonID,
		Duration:    in.Duration,
		MaxAttempts: maxAttempts,
		Status:      courseModels.QuizStatusDraft,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&quiz).Error; err != nil {
			return err
		}
		if len(in.Questions) > 0 {
			return appendQuestionsTx(tx, quiz.ID, in.Questions)
		}
		return nil
	})
	if err != nil {
		log.Printf("Error creating quiz: %v", err)
		return nil, ErrCreationFailed
	}

	return loadQuizWithQuestions(s.DB.WithContext(ctx), quiz.ID)
}

// GetWithQuestions returns the quiz and its ordered question list.
func (s *QuizCatalog) GetWithQuestions(ctx context.Context, quizID uint) (*QuizWithQuestions, error) {
	return loadQuizWithQuestions(s.DB.WithContext(ctx), quizID)
}

// Update applies a partial update to quiz fields.
func (s *QuizCatalog) Update(ctx context.Context, quizID uint, in QuizUpdate) (*QuizWithQuestions, error) {
	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.LessonID != nil {
		updates["lesson_id"] = *in.LessonID
	}
	if in.Duration != nil {
		updates["duration"] = *in.Duration
	}
	if in.MaxAttempts != nil {
		updates["max_attempts"] = *in.MaxAttempts
	}

	if len(updates) == 0 {
		return loadQuizWithQuestions(s.DB.WithContext(ctx), quizID)
	}

	result := s.DB.WithContext(ctx).Model(&courseModels.Quiz{}).
		Where("id = ? AND is_deleted = ?", quizID, false).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrQuizNotFound
	}

	return loadQuizWithQuestions(s.DB.WithContext(ctx), quizID)
}

// Delete removes a quiz and cascades to its questions.
func (s *QuizCatalog) Delete(ctx context.Context, quizID uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var quiz courseModels.Quiz
		if err := tx.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrQuizNotFound
			}
			return err
		}
		if err := tx.Where("quiz_id = ?", quizID).Delete(&courseModels.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&quiz).Error
	})
}

// Publish marks a quiz as published.
func (s *QuizCatalog) Publish(ctx context.Context, quizID uint) (*QuizWithQuestions, error) {
	return s.setStatus(ctx, quizID, courseModels.QuizStatusPublished)
}

// Unpublish moves a quiz back to draft.
func (s *QuizCatalog) Unpublish(ctx context.Context, quizID uint) (*QuizWithQuestions, error) {
	return s.setStatus(ctx, quizID, courseModels.QuizStatusDraft)
}

func (s *QuizCatalog) setStatus(ctx context.Context, quizID uint, status string) (*QuizWithQuestions, error) {
	result := s.DB.WithContext(ctx).Model(&courseModels.Quiz{}).
		Where("id = ? AND is_deleted = ?", quizID, false).
		Update("status", status)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrQuizNotFound
	}
	return loadQuizWithQuestions(s.DB.WithContext(ctx), quizID)
}

// ListByLesson returns the quizzes of a lesson with question counts.
func (s *QuizCatalog) ListByLesson(ctx context.Context, lessonID uint) ([]QuizSummary, error) {
	var quizzes []courseModels.Quiz
	err := s.DB.WithContext(ctx).
		Where("lesson_id = ? AND is_deleted = ?", lessonID, false).
		Order("created_at DESC").
		Find(&quizzes).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]QuizSummary, len(quizzes))
	for i, quiz := range quizzes {
		var count int64
		if err := s.DB.WithContext(ctx).Model(&courseModels.Question{}).
			Where("quiz_id = ?", quiz.ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		summaries[i] = QuizSummary{Quiz: quiz, QuestionCount: count}
	}
	return summaries, nil
}

// Search finds quizzes matching the filters, with pagination.
func (s *QuizCatalog) Search(ctx context.Context, filters QuizSearchFilters, page, limit int) ([]QuizSummary, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	db := s.DB.WithContext(ctx).Model(&courseModels.Quiz{}).Where("is_deleted = ?", false)
	if filters.LessonID != nil {
		db = db.Where("lesson_id = ?", *filters.LessonID)
	}
	if filters.Status != "" {
		db = db.Where("status = ?", filters.Status)
	}
	if filters.Title != "" {
		db = db.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filters.Title)+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var quizzes []courseModels.Quiz
	offset := (page - 1) * limit
	if err := db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&quizzes).Error; err != nil {
		return nil, 0, err
	}

	summaries := make([]QuizSummary, len(quizzes))
	for i, quiz := range quizzes {
		var count int64
		if err := s.DB.WithContext(ctx).Model(&courseModels.Question{}).
			Where("quiz_id = ?", quiz.ID).
			Count(&count).Error; err != nil {
			return nil, 0, err
		}
		summaries[i] = QuizSummary{Quiz: quiz, QuestionCount: count}
	}
	return summaries, total, nil
}

// Stats returns a summary of a quiz for instructor dashboards.
func (s *QuizCatalog) Stats(ctx context.Context, quizID uint) (*QuizStats, error) {
	full, err := loadQuizWithQuestions(s.DB.WithContext(ctx), quizID)
	if err != nil {
		return nil, err
	}

	totalPoints := 0
	for _, q := range full.Questions {
		totalPoints += q.Points
	}

	return &QuizStats{
		QuizID:         full.ID,
		Title:          full.Title,
		TotalQuestions: len(full.Questions),
		TotalPoints:    totalPoints,
		Status:         full.Status,
		Duration:       full.Duration,
		MaxAttempts:    full.MaxAttempts,
	}, nil
}

// loadQuizWithQuestions fetches a quiz and maps its questions in
// order-index order, parsing options defensively.
func loadQuizWithQuestions(db *gorm.DB, quizID uint) (*QuizWithQuestions, error) {
	var quiz courseModels.Quiz
	if err := db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	var questions []courseModels.Question
	err := db.Where("quiz_id = ?", quizID).
		Order("order_index ASC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}

	views := make([]QuestionView, len(questions))
	for i, q := range questions {
		views[i] = QuestionView{
			ID:            q.ID,
			Content:       q.Content,
			Type:          q.Type,
			Options:       q.OptionList(),
			CorrectAnswer: q.CorrectAnswer,
			Points:        q.Points,
			OrderIndex:    q.OrderIndex,
		}
	}

	return &QuizWithQuestions{Quiz: quiz, Questions: views}, nil
}
