package user

import (
	"github.com/gofiber/fiber/v3"
)

// SetupRoutes настраивает маршруты для API пользователей
func (s *UserService) SetupRoutes(app *fiber.App) {
	api := app.Group("/api/users")

	// Маршрут для регистрации пользователя
	api.Post("/", s.CreateUser)

	// Маршрут для получения списка пользователей
	api.Get("/", s.GetUsers)
}
