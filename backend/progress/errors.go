package progress

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidCourse reports a structurally malformed course handed to the
// statistics engine. It indicates a caller bug, not user error.
var ErrInvalidCourse = errors.New("invalid course data")

// ErrIndexOutOfRange reports a section or video index outside the course
// structure on a completion toggle.
var ErrIndexOutOfRange = errors.New("index out of range")

// ValidationError collects per-field messages for malformed construction
// input. A course is never partially built when one is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
