package courseService

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	courseModels "lms/models/course"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuestionInput is the payload for adding a question to a quiz.
type QuestionInput struct {
	Content       string   `json:"content"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Points        int      `json:"points"`
}

// QuestionBank owns the question rows of a quiz: insert with order
// assignment, delete with reindex, ordered listing.
type QuestionBank struct {
	DB *gorm.DB
}

func NewQuestionBank(db *gorm.DB) *QuestionBank {
	return &QuestionBank{DB: db}
}

// AppendQuestions inserts the given questions at the end of the quiz,
// continuing the order-index sequence, and returns the quiz reloaded with
// its full ordered question list.
func (b *QuestionBank) AppendQuestions(ctx context.Context, quizID uint, questions []QuestionInput) (*QuizWithQuestions, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: questions array cannot be empty", ErrValidation)
	}
	for i, in := range questions {
		if err := validateQuestionInput(in, i); err != nil {
			return nil, err
		}
	}

	var quiz courseModels.Quiz
	if err := b.DB.WithContext(ctx).Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	err := b.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return appendQuestionsTx(tx, quizID, questions)
	})
	if err != nil {
		return nil, err
	}

	return loadQuizWithQuestions(b.DB.WithContext(ctx), quizID)
}

// RemoveQuestion deletes a question from a quiz and renumbers the remaining
// questions to a dense 1..N sequence, preserving their relative order. The
// delete and the reindex commit or roll back together.
func (b *QuestionBank) RemoveQuestion(ctx context.Context, quizID, questionID uint) error {
	return b.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var question courseModels.Question
		if err := tx.Where("id = ? AND quiz_id = ?", questionID, quizID).First(&question).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrQuestionNotFound
			}
			return err
		}

		if err := tx.Delete(&question).Error; err != nil {
			return err
		}

		// Renumber by prior order index, never by insertion time
		var remaining []courseModels.Question
		if err := tx.Where("quiz_id = ?", quizID).Order("order_index ASC").Find(&remaining).Error; err != nil {
			return err
		}
		for i := range remaining {
			newIndex := i + 1
			if remaining[i].OrderIndex == newIndex {
				continue
			}
			if err := tx.Model(&remaining[i]).Update("order_index", newIndex).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ListOrdered returns the quiz's questions sorted ascending by order index.
func (b *QuestionBank) ListOrdered(ctx context.Context, quizID uint) ([]courseModels.Question, error) {
	var questions []courseModels.Question
	err := b.DB.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Order("order_index ASC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// appendQuestionsTx inserts questions within an existing transaction,
// assigning order indices after the quiz's current maximum.
func appendQuestionsTx(tx *gorm.DB, quizID uint, questions []QuestionInput) error {
	var maxOrder int
	err := tx.Model(&courseModels.Question{}).
		Where("quiz_id = ?", quizID).
		Select("COALESCE(MAX(order_index), 0)").
		Scan(&maxOrder).Error
	if err != nil {
		return err
	}

	for i, in := range questions {
		var options datatypes.JSON
		if len(in.Options) > 0 {
			raw, err := json.Marshal(in.Options)
			if err != nil {
				return err
			}
			options = datatypes.JSON(raw)
		}

		question := courseModels.Question{
			QuizID:        quizID,
			Content:       in.Content,
			Type:          in.Type,
			Options:       options,
			CorrectAnswer: in.CorrectAnswer,
			Points:        in.Points,
			OrderIndex:    maxOrder + i + 1,
		}
		if err := tx.Create(&question).Error; err != nil {
			return err
		}
	}
	return nil
}

// validateQuestionInput checks the required fields of a question payload.
// Points default to 0 when absent; multiple-choice needs at least 2
// non-empty options.
func validateQuestionInput(in QuestionInput, index int) error {
	if strings.TrimSpace(in.Content) == "" {
		return fmt.Errorf("%w: question %d: content is required", ErrValidation, index+1)
	}

	switch in.Type {
	case courseModels.QuestionTypeMultipleChoice, courseModels.QuestionTypeTrueFalse, courseModels.QuestionTypeShortAnswer:
	default:
		return fmt.Errorf("%w: question %d: invalid type %q", ErrValidation, index+1, in.Type)
	}

	if strings.TrimSpace(in.CorrectAnswer) == "" {
		return fmt.Errorf("%w: question %d: correct answer is required", ErrValidation, index+1)
	}

	if in.Points < 0 {
		return fmt.Errorf("%w: question %d: points must be 0 or greater", ErrValidation, index+1)
	}

	if in.Type == courseModels.QuestionTypeMultipleChoice {
		valid := 0
		for _, opt := range in.Options {
			if strings.TrimSpace(opt) != "" {
				valid++
			}
		}
		if valid < 2 {
			return fmt.Errorf("%w: question %d: multiple-choice questions require at least 2 options", ErrValidation, index+1)
		}
	}

	return nil
}
