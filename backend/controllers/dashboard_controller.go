package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Azi26Ahmed/Study-Track/backend/config"
	"github.com/Azi26Ahmed/Study-Track/backend/progress"
	"github.com/Azi26Ahmed/Study-Track/backend/store"
	"github.com/Azi26Ahmed/Study-Track/backend/utils"
)

type DashboardController struct {
	Store *store.CourseStore
	Cfg   *config.Config
}

func NewDashboardController(db *gorm.DB, cfg *config.Config) *DashboardController {
	return &DashboardController{Store: store.NewCourseStore(db), Cfg: cfg}
}

// GetDashboard godoc
// @Summary Get learning dashboard
// @Description Returns overall statistics across all of the user's courses
// @Tags dashboard
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /dashboard [get]
func (dc *DashboardController) GetDashboard(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, dc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	courses, err := dc.Store.FindByOwner(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	summaries := make([]fiber.Map, 0, len(courses))
	for _, course := range courses {
		summaries = append(summaries, courseSummary(course))
	}

	return c.JSON(fiber.Map{
		"stats":   progress.Overall(courses),
		"courses": summaries,
	})
}
