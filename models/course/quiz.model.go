package course

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quiz statuses
const (
	QuizStatusDraft     = "draft"
	QuizStatusPublished = "published"
)

// Question types
const (
	QuestionTypeMultipleChoice = "multiple-choice"
	QuestionTypeTrueFalse      = "true-false"
	QuestionTypeShortAnswer    = "short-answer"
)

// Quiz represents a quiz attached to a lesson
type Quiz struct {
	gorm.Model
	Title       string `json:"title"`
	Description string `json:"description"`
	LessonID    uint   `json:"lesson_id" gorm:"index;not null"`
	Duration    int    `json:"duration" gorm:"default:0"` // duration in minutes
	MaxAttempts int    `json:"max_attempts" gorm:"default:1"`
	Status      string `json:"status" gorm:"default:'draft'"` // draft, published
	IsDeleted   bool   `gorm:"default:false"`
}

// Question represents a single question within a quiz
type Question struct {
	gorm.Model
	QuizID        uint           `json:"quiz_id" gorm:"index;not null"`
	Content       string         `json:"content" gorm:"type:text"`
	Type          string         `json:"type" gorm:"default:'multiple-choice'"`
	Options       datatypes.JSON `json:"options"`        // JSON array of option strings, null for non-MCQ
	CorrectAnswer string         `json:"correct_answer"` // compared case-insensitively, trimmed
	Points        int            `json:"points" gorm:"default:0"`
	OrderIndex    int            `json:"order_index" gorm:"default:0"` // 1-based, dense within a quiz
}

// OptionList parses the stored options column into a string slice.
// Historical rows stored options either as a JSON array or as a
// double-encoded JSON string; anything unparsable degrades to nil so the
// learner-facing read path never hard-fails on bad data.
func (q *Question) OptionList() []string {
	raw := []byte(q.Options)
	if len(raw) == 0 {
		return nil
	}

	var opts []string
	if err := json.Unmarshal(raw, &opts); err == nil {
		return opts
	}

	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return nil
	}
	if err := json.Unmarshal([]byte(encoded), &opts); err != nil {
		return nil
	}
	return opts
}
