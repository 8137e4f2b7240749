package chatbotValidator

import (
	"campus/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func Query() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Query string `json:"query"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Query = strings.TrimSpace(reqData.Query)
		if reqData.Query == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Query cannot be empty"})
		}

		c.Locals("validatedQuery", reqData.Query)

		return c.Next()
	}
}
