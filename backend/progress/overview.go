package progress

import "github.com/Azi26Ahmed/Study-Track/backend/models"

// Overview aggregates learning statistics across all of a user's courses for
// the dashboard: totals, overall completion and remaining watch time at
// normal and double speed, plus a per-platform course count.
type Overview struct {
	TotalCourses               int            `json:"total_courses"`
	TotalVideos                int            `json:"total_videos"`
	CompletedVideos            int            `json:"completed_videos"`
	OverallCompletion          float64        `json:"overall_completion"`
	TotalDurationMinutes       float64        `json:"total_duration_minutes"`
	CompletedDurationMinutes   float64        `json:"completed_duration_minutes"`
	RemainingDurationMinutes   float64        `json:"remaining_duration_minutes"`
	RemainingDuration2xMinutes float64        `json:"remaining_duration_2x_minutes"`
	Platforms                  map[string]int `json:"platforms"`
}

// Overall sums the stored per-course snapshots. It trusts the snapshot
// fields, which are recomputed on every mutation, instead of walking the
// nested structure again.
func Overall(courses []models.Course) Overview {
	overview := Overview{Platforms: make(map[string]int)}

	for _, course := range courses {
		overview.TotalCourses++
		overview.TotalVideos += course.TotalVideos
		overview.CompletedVideos += course.CompletedVideos
		overview.TotalDurationMinutes += course.TotalDurationMinutes
		overview.CompletedDurationMinutes += course.CompletedDurationMinutes

		platform := course.Platform
		if platform == "" {
			platform = PlatformOther
		}
		overview.Platforms[platform]++
	}

	if overview.TotalVideos > 0 {
		overview.OverallCompletion = round1(float64(overview.CompletedVideos) / float64(overview.TotalVideos) * 100)
	}

	remaining := overview.TotalDurationMinutes - overview.CompletedDurationMinutes
	overview.RemainingDurationMinutes = round1(remaining)
	if remaining > 0 {
		overview.RemainingDuration2xMinutes = round1(remaining / 2)
	}

	overview.TotalDurationMinutes = round1(overview.TotalDurationMinutes)
	overview.CompletedDurationMinutes = round1(overview.CompletedDurationMinutes)

	return overview
}
