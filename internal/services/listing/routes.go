package listing

import (
	"github.com/gofiber/fiber/v3"
)

// SetupRoutes настраивает маршруты для API объявлений
func (s *ListingService) SetupRoutes(app *fiber.App) {
	api := app.Group("/api/listings")

	// Маршрут для создания объявления
	api.Post("/", s.CreateListing)

	// Маршрут для получения списка всех объявлений
	api.Get("/", s.GetListings)

	// Маршрут для поиска объявлений по фильтрам
	api.Get("/search", s.SearchListings)
}
