package chatbotController

import (
	"campus/chatbot"
	"campus/middleware"
	"campus/models"
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
)

// Query returns the handler that answers a student's chatbot question.
// Retrieved contexts are logged for offline answer-quality evaluation
// but never included in the response.
func Query(svc *chatbot.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(models.User)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		query, ok := c.Locals("validatedQuery").(string)
		if !ok || query == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Query cannot be empty"})
		}

		answer, contexts := svc.Answer(c.UserContext(), user.ID, query)

		if contexts != nil {
			// Evaluation log line: question, retrieved contexts, answer
			q, _ := json.Marshal(query)
			ctxs, _ := json.Marshal(contexts)
			a, _ := json.Marshal(answer)
			log.Printf("RAG DATA POINT question=%s contexts=%s answer=%s", q, ctxs, a)
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{"response": answer})
	}
}
