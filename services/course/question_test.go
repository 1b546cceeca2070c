package courseService

import (
	"context"
	"testing"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendQuestionsAssignsOrder(t *testing.T) {
	db := newTestDB(t)
	_, lessons := seedCourse(t, db, 1)
	quiz := seedQuiz(t, db, lessons[0].ID)

	bank := NewQuestionBank(db)
	full, err := bank.AppendQuestions(context.Background(), quiz.ID, []QuestionInput{
		{Content: "Capital of France?", Type: courseModels.QuestionTypeShortAnswer, CorrectAnswer: "Paris", Points: 10},
		{Content: "Water boils at 100C?", Type: courseModels.QuestionTypeTrueFalse, CorrectAnswer: "true", Points: 5},
	})
	require.NoError(t, err)
	require.Len(t, full.Questions, 2)
	assert.Equal(t, 1, full.Questions[0].OrderIndex)
	assert.Equal(t, 2, full.Questions[1].OrderIndex)

	// A second batch continues after the current maximum
	full, err = bank.AppendQuestions(context.Background(), quiz.ID, []QuestionInput{
		{Content: "2+2?", Type: courseModels.QuestionTypeShortAnswer, CorrectAnswer: "4", Points: 1},
	})
	require.NoError(t, err)
	require.Len(t, full.Questions, 3)
	assert.Equal(t, 3, full.Questions[2].OrderIndex)
}

func TestAppendQuestionsValidation(t *testing.T) {
	db := newTestDB(t)
	_, lessons := seedCourse(t, db, 1)
	quiz := seedQuiz(t, db, lessons[0].ID)

	bank := NewQuestionBank(db)

	_, err := bank.AppendQuestions(context.Background(), quiz.ID, nil)
	require.ErrorIs(t, err, ErrValidation)

	_, err = bank.AppendQuestions(context.Background(), quiz.ID, []QuestionInput{
		{Content: "", Type: courseModels.QuestionTypeShortAnswer, CorrectAnswer: "x"},
	})
	require.ErrorIs(t, err, ErrValidation)

	_, err = bank.AppendQuestions(context.Background(), quiz.ID, []QuestionInput{
		{Content: "Pick one", Type: "essay", CorrectAnswer: "x"},
	})
	require.ErrorIs(t, err, ErrValidation)

	_, err = bank.AppendQuestions(context.Background(), quiz.ID, []QuestionInput{
		{Content: "Pick one", Type: courseModels.QuestionTypeShortAnswer, CorrectAnswer: "x", Points: -1},
	})
	require.ErrorIs(t, err, ErrValidation)

	// Multiple choice needs at least two non-empty options
	_, err = bank.AppendQuestions(context.Background(), quiz.ID, []QuestionInput{
		{Content: "Pick one", Type: courseModels.QuestionTypeMultipleChoice, CorrectAnswer: "a", Options: []string{"a", " "}},
	})
	require.ErrorIs(t, err, ErrValidation)

	// Nothing from the rejected batches may have been written
	var count int64
	db.Model(&courseModels.Question{}).Where("quiz_id = ?", quiz.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAppendQuestionsQuizNotFound(t *testing.T) {
	db := newTestDB(t)

	bank := NewQuestionBank(db)
	_, err := bank.AppendQuestions(context.Background(), 12345, []QuestionInput{
		{Content: "Capital of France?", Type: courseModels.QuestionTypeShortAnswer, CorrectAnswer: "Paris"},
	})
	require.ErrorIs(t, err, ErrQuizNotFound)
}

func TestRemoveQuestionReindexes(t *testing.T) {
	db := newTestDB(t)
	_, lessons := seedCourse(t, db, 1)
	quiz := seedQuiz(t, db, lessons[0].ID)
	seedQuestion(t, db, quiz.ID, "a", 1, 1)
	q2 := seedQuestion(t, db, quiz.ID, "b", 1, 2)
	seedQuestion(t, db, quiz.ID, "c", 1, 3)
	seedQuestion(t, db, quiz.ID, "d", 1, 4)

	bank := NewQuestionBank(db)
	require.NoError(t, bank.RemoveQuestion(context.Background(), quiz.ID, q2.ID))

	remaining, err := bank.ListOrdered(context.Background(), quiz.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 3)

	// Dense 1..N with relative order preserved
	assert.Equal(t, "a", remaining[0].CorrectAnswer)
	assert.Equal(t, 1, remaining[0].OrderIndex)
	assert.Equal(t, "c", remaining[1].CorrectAnswer)
	assert.Equal(t, 2, remaining[1].OrderIndex)
	assert.Equal(t, "d", remaining[2].CorrectAnswer)
	assert.Equal(t, 3, remaining[2].OrderIndex)
}

func TestRemoveQuestionNotFound(t *testing.T) {
	db := newTestDB(t)
	_, lessons := seedCourse(t, db, 1)
	quiz := seedQuiz(t, db, lessons[0].ID)
	other := seedQuiz(t, db, lessons[0].ID)
	question := seedQuestion(t, db, other.ID, "a", 1, 1)

	bank := NewQuestionBank(db)

	err := bank.RemoveQuestion(context.Background(), quiz.ID, 9999)
	require.ErrorIs(t, err, ErrQuestionNotFound)

	// A question id belonging to another quiz is not reachable either
	err = bank.RemoveQuestion(context.Background(), quiz.ID, question.ID)
	require.ErrorIs(t, err, ErrQuestionNotFound)
}
