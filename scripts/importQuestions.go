package main

import (
	"encoding/csv"
	"encoding/json"
	"lms/config"
	"lms/database"
	courseModels "lms/models/course"
	"log"
	"os"
	"strconv"
	"strings"

	"gorm.io/datatypes"
)

// Imports quiz questions in bulk from a CSV file. Expected headers:
// quizId, content, type, options, correctAnswer, points
// where type is multiple-choice, true-false or short-answer and options
// is a pipe-separated list (multiple-choice only).
func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	file, err := os.Open("questions.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	// Skip header row
	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	// Map header indices
	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}

	inserted := 0
	skipped := 0

	// Next order index per quiz, looked up once then advanced locally
	nextOrder := make(map[uint]int)

	for i, row := range records[1:] {
		quizID := uint(parseInt(getField(row, headerIndex, "quizId")))
		content := getField(row, headerIndex, "content")
		questionType := getField(row, headerIndex, "type")
		correctAnswer := getField(row, headerIndex, "correctAnswer")
		points := parseInt(getField(row, headerIndex, "points"))

		if quizID == 0 || content == "" || correctAnswer == "" {
			skipped++
			continue
		}

		switch questionType {
		case courseModels.QuestionTypeMultipleChoice, courseModels.QuestionTypeTrueFalse, courseModels.QuestionTypeShortAnswer:
		default:
			log.Printf("Row %d: unknown question type %q, skipping", i+2, questionType)
			skipped++
			continue
		}

		// Check the quiz exists
		var quiz courseModels.Quiz
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
			log.Printf("Row %d: quiz %d not found, skipping", i+2, quizID)
			skipped++
			continue
		}

		if _, ok := nextOrder[quizID]; !ok {
			var maxOrder int
			database.Database.Db.Model(&courseModels.Question{}).
				Where("quiz_id = ?", quizID).
				Select("COALESCE(MAX(order_index), 0)").
				Scan(&maxOrder)
			nextOrder[quizID] = maxOrder + 1
		}

		var options datatypes.JSON
		if rawOptions := getField(row, headerIndex, "options"); rawOptions != "" {
			optionList := strings.Split(rawOptions, "|")
			for j := range optionList {
				optionList[j] = strings.TrimSpace(optionList[j])
			}
			encoded, err := json.Marshal(optionList)
			if err != nil {
				log.Printf("Row %d: invalid options, skipping: %v", i+2, err)
				skipped++
				continue
			}
			options = datatypes.JSON(encoded)
		}

		question := courseModels.Question{
			QuizID:        quizID,
			Content:       content,
			Type:          questionType,
			Options:       options,
			CorrectAnswer: correctAnswer,
			Points:        points,
			OrderIndex:    nextOrder[quizID],
		}

		if err := database.Database.Db.Create(&question).Error; err != nil {
			log.Printf("Row %d: error inserting question: %v", i+2, err)
			continue
		}
		nextOrder[quizID]++
		inserted++
	}

	log.Printf("Import complete: %d inserted, %d skipped", inserted, skipped)
}

func getField(row []string, headerIndex map[string]int, name string) string {
	idx, ok := headerIndex[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseInt(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}
