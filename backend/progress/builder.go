package progress

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Azi26Ahmed/Study-Track/backend/models"
)

// Platforms a course can be tracked from.
const (
	PlatformUdemy   = "udemy"
	PlatformYouTube = "youtube"
	PlatformOther   = "other"
)

type VideoInput struct {
	Title           string  `json:"title"`
	DurationMinutes float64 `json:"duration_minutes"`
}

type SectionInput struct {
	Title  string       `json:"title"`
	Videos []VideoInput `json:"videos"`
}

// CourseInput is the structural input for a new course. Everything a form
// collects travels here explicitly; the builder keeps no state between calls.
type CourseInput struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Platform    string         `json:"platform"`
	URL         string         `json:"url"`
	Sections    []SectionInput `json:"sections"`
}

// BuildCourse constructs a course document from user-supplied structure.
// Videos start incomplete with their 2x duration derived, blank section and
// video titles get positional defaults, and an empty URL is replaced with a
// generated manual_course token. The statistics snapshot is seeded through
// the same recompute path used after every later mutation.
func BuildCourse(userID uint, in CourseInput) (*models.Course, error) {
	fields := make(map[string]string)

	if strings.TrimSpace(in.Title) == "" {
		fields["title"] = "Title is required!"
	}

	platform := strings.ToLower(strings.TrimSpace(in.Platform))
	if platform == "" {
		platform = PlatformOther
	}
	switch platform {
	case PlatformUdemy, PlatformYouTube, PlatformOther:
	default:
		fields["platform"] = "Platform must be udemy, youtube or other!"
	}

	if len(in.Sections) == 0 {
		fields["sections"] = "At least one section is required!"
	}

	sections := make([]models.Section, 0, len(in.Sections))
	for i, sectionIn := range in.Sections {
		if len(sectionIn.Videos) == 0 {
			fields[fmt.Sprintf("sections[%d].videos", i)] = "Section must contain at least one video!"
			continue
		}

		title := strings.TrimSpace(sectionIn.Title)
		if title == "" {
			title = fmt.Sprintf("Section %d", i+1)
		}

		videos := make([]models.Video, 0, len(sectionIn.Videos))
		for j, videoIn := range sectionIn.Videos {
			if videoIn.DurationMinutes < 0 || math.IsNaN(videoIn.DurationMinutes) {
				fields[fmt.Sprintf("sections[%d].videos[%d].duration_minutes", i, j)] = "Duration cannot be negative!"
				continue
			}

			videoTitle := strings.TrimSpace(videoIn.Title)
			if videoTitle == "" {
				videoTitle = fmt.Sprintf("Video %d", j+1)
			}

			videos = append(videos, models.Video{
				Title:             videoTitle,
				DurationMinutes:   videoIn.DurationMinutes,
				Duration2xMinutes: round1(videoIn.DurationMinutes / 2),
				Completed:         false,
			})
		}
		sections = append(sections, models.Section{Title: title, Videos: videos})
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	course := models.Course{
		UserID:      userID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Platform:    platform,
		URL:         strings.TrimSpace(in.URL),
		Sections:    datatypes.NewJSONSlice(sections),
	}

	if course.URL == "" {
		course.URL = "manual_course_" + uuid.NewString()
		course.URLGenerated = true
	}

	built, err := Apply(course)
	if err != nil {
		return nil, err
	}
	return &built, nil
}
