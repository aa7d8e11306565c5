package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Azi26Ahmed/Study-Track/backend/config"
	"github.com/Azi26Ahmed/Study-Track/backend/models"
	"github.com/Azi26Ahmed/Study-Track/backend/progress"
	"github.com/Azi26Ahmed/Study-Track/backend/store"
	"github.com/Azi26Ahmed/Study-Track/backend/utils"
)

type CoursesController struct {
	Store *store.CourseStore
	Cfg   *config.Config
}

func NewCoursesController(db *gorm.DB, cfg *config.Config) *CoursesController {
	return &CoursesController{Store: store.NewCourseStore(db), Cfg: cfg}
}

// courseSummary is the card-sized view of a course: identity plus the stored
// statistics snapshot, without the nested sections.
func courseSummary(course models.Course) fiber.Map {
	return fiber.Map{
		"id":                            course.ID,
		"title":                         course.Title,
		"platform":                      course.Platform,
		"url":                           course.URL,
		"url_generated":                 course.URLGenerated,
		"total_videos":                  course.TotalVideos,
		"completed_videos":              course.CompletedVideos,
		"completion_percentage":         course.CompletionPercentage,
		"total_duration_minutes":        course.TotalDurationMinutes,
		"completed_duration_minutes":    course.CompletedDurationMinutes,
		"remaining_duration_minutes":    course.RemainingDurationMinutes,
		"remaining_duration_2x_minutes": course.RemainingDuration2xMinutes,
		"sections_completed":            course.SectionsCompleted,
		"sections_total":                course.SectionsTotal,
	}
}

// findOwnedCourse loads a course and checks it belongs to userID. Courses of
// other users are reported as not found rather than forbidden.
func (cc *CoursesController) findOwnedCourse(courseID int, userID uint) (*models.Course, error) {
	course, err := cc.Store.FindByID(uint(courseID))
	if err != nil {
		return nil, err
	}
	if course.UserID != userID {
		return nil, store.ErrNotFound
	}
	return course, nil
}

func (cc *CoursesController) GetUserCourses(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	courses, err := cc.Store.FindByOwner(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(courses))
	for _, course := range courses {
		result = append(result, courseSummary(course))
	}

	return c.JSON(result)
}

func (cc *CoursesController) GetCourseDetails(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	course, err := cc.findOwnedCourse(courseID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(fiber.Map{
		"course": course,
	})
}

// CreateCourse godoc
// @Summary Add a new course
// @Description Builds a course document from its section/video structure and stores it
// @Tags courses
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 409 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses [post]
func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var input progress.CourseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	course, err := progress.BuildCourse(userID, input)
	if err != nil {
		var validationErr *progress.ValidationError
		if errors.As(err, &validationErr) {
			return utils.ValidationError(c, validationErr.Fields)
		}
		return utils.InternalServerError(c, "Could not build course")
	}

	if err := cc.Store.Insert(course); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return utils.Conflict(c, "Course with this URL already exists")
		}
		return utils.InternalServerError(c, "Could not create course")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Course created",
		"course":  course,
	})
}

// UpdateVideoStatus flips one video's completion flag, recomputes the whole
// statistics snapshot and replaces the stored document.
func (cc *CoursesController) UpdateVideoStatus(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var input struct {
		SectionIndex int  `json:"section_index"`
		VideoIndex   int  `json:"video_index"`
		Completed    bool `json:"completed"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	course, err := cc.findOwnedCourse(courseID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	updated, err := progress.ToggleVideo(*course, input.SectionIndex, input.VideoIndex, input.Completed)
	if err != nil {
		if errors.Is(err, progress.ErrIndexOutOfRange) {
			return utils.BadRequest(c, "Section or video index out of range")
		}
		return utils.InternalServerError(c, "Could not update video status")
	}

	if err := cc.Store.Replace(uint(courseID), &updated); err != nil {
		return utils.InternalServerError(c, "Could not save course")
	}

	return c.JSON(fiber.Map{
		"message": "Video status updated",
		"course":  updated,
	})
}

func (cc *CoursesController) DeleteCourse(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	if _, err := cc.findOwnedCourse(courseID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	deleted, err := cc.Store.Delete(uint(courseID))
	if err != nil {
		return utils.InternalServerError(c, "Could not delete course")
	}
	if !deleted {
		return utils.NotFound(c, "Course not found")
	}

	return c.JSON(fiber.Map{
		"message": "Course deleted",
	})
}
