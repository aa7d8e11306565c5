package progress

import (
	"fmt"
	"math"

	"github.com/Azi26Ahmed/Study-Track/backend/models"
)

// Snapshot holds the full set of statistics derived from a course's current
// video-completion state. Durations are minutes rounded to one decimal.
type Snapshot struct {
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

// Calculate recomputes the statistics snapshot from a course in a single pass
// over all sections and videos. It never fails on a well-formed course: zero
// sections or zero videos yield zero statistics, and a section with no videos
// counts as completed. It does not mutate its input.
func Calculate(course *models.Course) (Snapshot, error) {
	if course == nil {
		return Snapshot{}, fmt.Errorf("%w: course is nil", ErrInvalidCourse)
	}

	var (
		totalVideos       int
		completedVideos   int
		totalDuration     float64
		completedDuration float64
		sectionsCompleted int
	)

	for i, section := range course.Sections {
		sectionComplete := true
		for j, video := range section.Videos {
			if video.DurationMinutes < 0 || math.IsNaN(video.DurationMinutes) {
				return Snapshot{}, fmt.Errorf("%w: section %d video %d has invalid duration", ErrInvalidCourse, i, j)
			}

			totalVideos++
			totalDuration += video.DurationMinutes

			if video.Completed {
				completedVideos++
				completedDuration += video.DurationMinutes
			} else {
				sectionComplete = false
			}
		}
		if sectionComplete {
			sectionsCompleted++
		}
	}

	var completionPercentage float64
	if totalVideos > 0 {
		completionPercentage = float64(completedVideos) / float64(totalVideos) * 100
	}

	remainingDuration := totalDuration - completedDuration
	var remainingDuration2x float64
	if remainingDuration > 0 {
		remainingDuration2x = remainingDuration / 2
	}

	return Snapshot{
		TotalVideos:                totalVideos,
		CompletedVideos:            completedVideos,
		CompletionPercentage:       round1(completionPercentage),
		TotalDurationMinutes:       round1(totalDuration),
		CompletedDurationMinutes:   round1(completedDuration),
		RemainingDurationMinutes:   round1(remainingDuration),
		RemainingDuration2xMinutes: round1(remainingDuration2x),
		SectionsCompleted:          sectionsCompleted,
		SectionsTotal:              len(course.Sections),
	}, nil
}

// Apply returns a copy of the course with a freshly computed snapshot merged
// in. The stored snapshot fields are overwritten wholesale, never partially.
func Apply(course models.Course) (models.Course, error) {
	snapshot, err := Calculate(&course)
	if err != nil {
		return models.Course{}, err
	}

	course.TotalVideos = snapshot.TotalVideos
	course.CompletedVideos = snapshot.CompletedVideos
	course.CompletionPercentage = snapshot.CompletionPercentage
	course.TotalDurationMinutes = snapshot.TotalDurationMinutes
	course.CompletedDurationMinutes = snapshot.CompletedDurationMinutes
	course.RemainingDurationMinutes = snapshot.RemainingDurationMinutes
	course.RemainingDuration2xMinutes = snapshot.RemainingDuration2xMinutes
	course.SectionsCompleted = snapshot.SectionsCompleted
	course.SectionsTotal = snapshot.SectionsTotal

	return course, nil
}

// round1 rounds to one decimal place, halves away from zero.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
