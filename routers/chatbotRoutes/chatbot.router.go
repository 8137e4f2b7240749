package chatbotRoutes

import (
	"campus/chatbot"
	chatbotControllers "campus/controllers/chatbot"
	"campus/middleware"
	chatbotValidators "campus/validators/chatbot"

	"github.com/gofiber/fiber/v2"
)

// SetupChatbotRoutes wires the chatbot query endpoint. The service is
// constructed once in main and passed by reference.
func SetupChatbotRoutes(app *fiber.App, svc *chatbot.Service) {
	chatbotGroup := app.Group("/chatbot")

	chatbotGroup.Post("/query", middleware.JWTMiddleware, middleware.RequireRole("STUDENT"), chatbotValidators.Query(), chatbotControllers.Query(svc))
}
