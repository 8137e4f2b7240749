package authRoutes

import (
	authControllers "campus/controllers/auth"
	"campus/middleware"
	authValidators "campus/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.Signup(), authControllers.Signup)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)

	app.Get("/user/me", middleware.JWTMiddleware, authControllers.Me)
}
