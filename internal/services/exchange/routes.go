package exchange

import (
	"github.com/gofiber/fiber/v3"
)

// SetupRoutes настраивает маршруты для API обменов
func (s *ExchangeService) SetupRoutes(app *fiber.App) {
	api := app.Group("/api/exchanges")

	// Маршрут для создания предложения обмена
	api.Post("/", s.CreateExchangeRequest)

	// Маршрут для получения предложений обмена пользователя
	api.Get("/", s.GetExchangeRequests)

	// Маршрут для обновления статуса предложения обмена
	api.Put("/:id/status", s.UpdateExchangeStatus)
}
