package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Azi26Ahmed/Study-Track/backend/config"
	"github.com/Azi26Ahmed/Study-Track/backend/utils"
)

func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		return c.Next()
	}
}
