package listing

import (
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/solemate/solemate-api/internal/cache"
	"github.com/solemate/solemate-api/internal/db"
	"github.com/solemate/solemate-api/internal/models"
	"github.com/solemate/solemate-api/internal/storage"
)

// listingsCacheTTL время жизни кеша списка объявлений
const listingsCacheTTL = 60 * time.Second

// ListingService представляет сервис для работы с объявлениями
type ListingService struct {
	store storage.Storage
}

// NewListingService создает новый экземпляр ListingService
func NewListingService(store storage.Storage) *ListingService {
	return &ListingService{store: store}
}

// CreateListing обрабатывает создание нового объявления об одном ботинке
func (s *ListingService) CreateListing(c fiber.Ctx) error {
	var input models.CreateListingInput
	if err := c.Bind().Body(&input); err != nil {
		log.Printf("Ошибка декодирования тела запроса: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат данных",
			"code":  "invalid_body",
		})
	}

	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат ID пользователя",
			"code":  "invalid_user_id",
		})
	}

	if err := input.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
			"code":  "validation_failed",
		})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	// Владелец должен существовать до вставки объявления
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Пользователь не найден",
				"code":  "user_not_found",
			})
		}
		log.Printf("Ошибка проверки пользователя: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Ошибка проверки пользователя",
		})
	}

	created, err := s.store.CreateListing(ctx, storage.CreateListingParams{
		UserID:      userID,
		Brand:       input.Brand,
		Model:       input.Model,
		Size:        input.Size,
		SizeSystem:  input.SizeSystem,
		Foot:        input.Foot,
		Condition:   input.Condition,
		Color:       input.Color,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	})
	if err != nil {
		log.Printf("Ошибка создания объявления: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Ошибка сохранения объявления",
		})
	}

	// Список объявлений изменился, сбрасываем кеш
	cache.Invalidate(ctx, cache.ListingsKey)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"listing": created,
	})
}

// GetListings возвращает список всех объявлений. Чтение идет через кеш:
// при промахе список берется из хранилища и сохраняется с TTL.
func (s *ListingService) GetListings(c fiber.Ctx) error {
	ctx, cancel := db.GetContext()
	defer cancel()

	var listings []models.Listing
	found, err := cache.GetJSON(ctx, cache.ListingsKey, &listings)
	if err != nil {
		log.Printf("Ошибка чтения кеша объявлений: %v", err)
	}

	if !found {
		listings, err = s.store.GetListings(ctx)
		if err != nil {
			log.Printf("Ошибка запроса объявлений: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Ошибка получения объявлений",
			})
		}
		if err := cache.SetJSON(ctx, cache.ListingsKey, listings, listingsCacheTTL); err != nil {
			log.Printf("Ошибка записи кеша объявлений: %v", err)
		}
	}

	return c.JSON(fiber.Map{
		"listings": listings,
		"count":    len(listings),
	})
}

// SearchListings ищет объявления по необязательным фильтрам из query-строки.
// Все заданные фильтры объединяются через AND, точное совпадение значений.
func (s *ListingService) SearchListings(c fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
			"code":  "validation_failed",
		})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	listings, err := s.store.SearchListings(ctx, *filter)
	if err != nil {
		log.Printf("Ошибка поиска объявлений: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Ошибка поиска объявлений",
		})
	}

	return c.JSON(fiber.Map{
		"listings": listings,
		"count":    len(listings),
	})
}

// parseFilter собирает фильтр поиска из query-параметров запроса
func parseFilter(c fiber.Ctx) (*models.ListingFilter, error) {
	filter := models.ListingFilter{}

	if brand := c.Query("brand"); brand != "" {
		filter.Brand = &brand
	}
	if sizeStr := c.Query("size"); sizeStr != "" {
		size, err := strconv.ParseFloat(sizeStr, 64)
		if err != nil || size <= 0 {
			return nil, models.NewValidationError("size", "Размер должен быть положительным числом")
		}
		filter.Size = &size
	}
	if systemStr := c.Query("size_system"); systemStr != "" {
		system := models.SizeSystem(systemStr)
		if !system.IsValid() {
			return nil, models.NewValidationError("size_system", "Недопустимая система размеров")
		}
		filter.SizeSystem = &system
	}
	if footStr := c.Query("foot"); footStr != "" {
		foot := models.Foot(footStr)
		if !foot.IsValid() {
			return nil, models.NewValidationError("foot", "Укажите левый или правый ботинок")
		}
		filter.Foot = &foot
	}
	if conditionStr := c.Query("condition"); conditionStr != "" {
		condition := models.Condition(conditionStr)
		if !condition.IsValid() {
			return nil, models.NewValidationError("condition", "Недопустимое состояние обуви")
		}
		filter.Condition = &condition
	}
	if color := c.Query("color"); color != "" {
		filter.Color = &color
	}
	if userIDStr := c.Query("user_id"); userIDStr != "" {
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return nil, models.NewValidationError("user_id", "Неверный формат ID пользователя")
		}
		filter.UserID = &userID
	}

	return &filter, nil
}
