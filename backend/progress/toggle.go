package progress

import (
	"fmt"

	"gorm.io/datatypes"

	"github.com/Azi26Ahmed/Study-Track/backend/models"
)

// ToggleVideo returns a copy of the course with one video's completion flag
// set and the full statistics snapshot recomputed. Indices address sections
// and videos by position. The input course is left untouched.
func ToggleVideo(course models.Course, sectionIdx, videoIdx int, completed bool) (models.Course, error) {
	if sectionIdx < 0 || sectionIdx >= len(course.Sections) {
		return models.Course{}, fmt.Errorf("%w: section %d of %d", ErrIndexOutOfRange, sectionIdx, len(course.Sections))
	}
	if videoIdx < 0 || videoIdx >= len(course.Sections[sectionIdx].Videos) {
		return models.Course{}, fmt.Errorf("%w: video %d of %d in section %d",
			ErrIndexOutOfRange, videoIdx, len(course.Sections[sectionIdx].Videos), sectionIdx)
	}

	course.Sections = cloneSections(course.Sections)
	course.Sections[sectionIdx].Videos[videoIdx].Completed = completed

	return Apply(course)
}

// cloneSections copies the nested structure so the caller's course value does
// not share video slices with the returned one.
func cloneSections(sections datatypes.JSONSlice[models.Section]) datatypes.JSONSlice[models.Section] {
	out := make(datatypes.JSONSlice[models.Section], len(sections))
	copy(out, sections)
	for i := range out {
		videos := make([]models.Video, len(out[i].Videos))
		copy(videos, out[i].Videos)
		out[i].Videos = videos
	}
	return out
}
