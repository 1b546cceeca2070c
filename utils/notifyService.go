package utils

import (
	"log"

	"lms/config"

	"github.com/go-resty/resty/v2"
)

// NotifyCourseCompletion informs the profile service that a student
// completed a course, so their public profile and achievements update.
// Best-effort; a failed callback is logged, never propagated.
func NotifyCourseCompletion(userID, courseID uint, completionPercentage int) {
	client := resty.New()

	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"user_id":               userID,
			"course_id":             courseID,
			"completion_percentage": completionPercentage,
		}).
		Post(config.AppConfig.ProfileServiceURL + "/internal/course-completions")

	if err != nil {
		log.Printf("Error notifying profile service for user %d course %d: %v", userID, courseID, err)
		return
	}

	if resp.StatusCode() >= 300 {
		log.Printf("Profile service returned status %d for user %d course %d", resp.StatusCode(), userID, courseID)
	}
}
