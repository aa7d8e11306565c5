package progress

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var manualURLPattern = regexp.MustCompile(`^manual_course_[0-9a-f-]+$`)

func courseInput() CourseInput {
	return CourseInput{
		Title:       "Algorithms",
		Description: "Sorting and searching",
		Platform:    "Udemy",
		Sections: []SectionInput{
			{
				Title: "Sorting",
				Videos: []VideoInput{
					{Title: "Bubble sort", DurationMinutes: 12.5},
					{Title: "Merge sort", DurationMinutes: 18},
				},
			},
			{
				Title: "Searching",
				Videos: []VideoInput{
					{Title: "Binary search", DurationMinutes: 9},
				},
			},
		},
	}
}

func TestBuildCourse(t *testing.T) {
	course, err := BuildCourse(7, courseInput())
	require.NoError(t, err)

	assert.Equal(t, uint(7), course.UserID)
	assert.Equal(t, "Algorithms", course.Title)
	assert.Equal(t, "udemy", course.Platform)
	require.Len(t, course.Sections, 2)
	require.Len(t, course.Sections[0].Videos, 2)

	// All videos start incomplete with their 2x duration derived.
	for _, section := range course.Sections {
		for _, video := range section.Videos {
			assert.False(t, video.Completed)
			assert.InDelta(t, round1(video.DurationMinutes/2), video.Duration2xMinutes, 1e-9)
		}
	}
	assert.InDelta(t, 6.3, course.Sections[0].Videos[0].Duration2xMinutes, 1e-9)

	// Snapshot is seeded through the engine: nothing completed yet.
	assert.Equal(t, 3, course.TotalVideos)
	assert.Equal(t, 0, course.CompletedVideos)
	assert.InDelta(t, 0, course.CompletionPercentage, 1e-9)
	assert.InDelta(t, 39.5, course.TotalDurationMinutes, 1e-9)
	assert.InDelta(t, 39.5, course.RemainingDurationMinutes, 1e-9)
	assert.InDelta(t, 19.8, course.RemainingDuration2xMinutes, 1e-9)
	assert.Equal(t, 0, course.SectionsCompleted)
	assert.Equal(t, 2, course.SectionsTotal)
}

func TestBuildCourseGeneratesURL(t *testing.T) {
	course, err := BuildCourse(1, courseInput())
	require.NoError(t, err)

	assert.True(t, course.URLGenerated)
	assert.Regexp(t, manualURLPattern, course.URL)

	other, err := BuildCourse(1, courseInput())
	require.NoError(t, err)
	assert.NotEqual(t, course.URL, other.URL)
}

func TestBuildCoursePreservesURL(t *testing.T) {
	in := courseInput()
	in.URL = "https://www.udemy.com/course/algorithms/"

	course, err := BuildCourse(1, in)
	require.NoError(t, err)

	assert.Equal(t, "https://www.udemy.com/course/algorithms/", course.URL)
	assert.False(t, course.URLGenerated)
}

func TestBuildCourseDefaultTitles(t *testing.T) {
	in := courseInput()
	in.Sections[1].Title = "  "
	in.Sections[0].Videos[1].Title = ""
	in.Platform = ""

	course, err := BuildCourse(1, in)
	require.NoError(t, err)

	assert.Equal(t, "Section 2", course.Sections[1].Title)
	assert.Equal(t, "Video 2", course.Sections[0].Videos[1].Title)
	assert.Equal(t, "other", course.Platform)
}

func TestBuildCourseValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CourseInput)
		field  string
	}{
		{
			name:   "blank title",
			mutate: func(in *CourseInput) { in.Title = "   " },
			field:  "title",
		},
		{
			name:   "no sections",
			mutate: func(in *CourseInput) { in.Sections = nil },
			field:  "sections",
		},
		{
			name:   "section without videos",
			mutate: func(in *CourseInput) { in.Sections[1].Videos = nil },
			field:  "sections[1].videos",
		},
		{
			name:   "negative duration",
			mutate: func(in *CourseInput) { in.Sections[0].Videos[0].DurationMinutes = -1 },
			field:  "sections[0].videos[0].duration_minutes",
		},
		{
			name:   "unknown platform",
			mutate: func(in *CourseInput) { in.Platform = "coursera" },
			field:  "platform",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := courseInput()
			tc.mutate(&in)

			course, err := BuildCourse(1, in)
			assert.Nil(t, course)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, validationErr.Fields, tc.field)
		})
	}
}
