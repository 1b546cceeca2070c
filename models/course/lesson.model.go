package course

import "gorm.io/gorm"

// Lesson represents a single lesson within a course
type Lesson struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
	Duration    int    `json:"duration" gorm:"default:0"`    // duration in minutes
	OrderIndex  int    `json:"order_index" gorm:"default:0"` // Lesson order in course
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}
