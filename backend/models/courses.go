package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Video is the leaf unit of course content. Duration2xMinutes is derived
// from DurationMinutes and recomputed whenever the source value changes.
type Video struct {
	Title             string  `json:"title"`
	DurationMinutes   float64 `json:"duration_minutes"`
	Duration2xMinutes float64 `json:"duration_2x_minutes"`
	Completed         bool    `json:"completed"`
}

// Section groups videos; order is significant, videos are addressed by position.
type Section struct {
	Title  string  `json:"title"`
	Videos []Video `json:"videos"`
}

// Course is stored as a single document: one row per course, with the nested
// sections/videos structure in a JSON column. Every field below Sections is a
// derived statistic and never authored directly.
type Course struct {
	gorm.Model
	UserID       uint   `gorm:"index;uniqueIndex:idx_user_course_url" json:"user_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Platform     string `json:"platform"` // udemy, youtube, other
	URL          string `gorm:"uniqueIndex:idx_user_course_url" json:"url"`
	URLGenerated bool   `json:"url_generated,omitempty"`

	Sections datatypes.JSONSlice[Section] `json:"sections"`

	TotalVideos                int     `json:"total_videos"`
	CompletedVideos            int     `json:"completed_videos"`
	CompletionPercentage       float64 `json:"completion_percentage"`
	TotalDurationMinutes       float64 `json:"total_duration_minutes"`
	CompletedDurationMinutes   float64 `json:"completed_duration_minutes"`
	RemainingDurationMinutes   float64 `json:"remaining_duration_minutes"`
	RemainingDuration2xMinutes float64 `json:"remaining_duration_2x_minutes"`
	SectionsCompleted          int     `json:"sections_completed"`
	SectionsTotal              int     `json:"sections_total"`
}
