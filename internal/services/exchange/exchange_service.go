package exchange

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/solemate/solemate-api/internal/db"
	"github.com/solemate/solemate-api/internal/models"
	"github.com/solemate/solemate-api/internal/storage"
)

// ExchangeService представляет сервис жизненного цикла предложений обмена
type ExchangeService struct {
	store storage.Storage
}

// NewExchangeService создает новый экземпляр ExchangeService
func NewExchangeService(store storage.Storage) *ExchangeService {
	return &ExchangeService{store: store}
}

// CreateExchangeRequest создает новое предложение обмена. Предусловия
// проверяются в фиксированном порядке, чтобы ошибки были детерминированными:
// объявление инициатора существует, оно доступно, целевое объявление
// существует, оно доступно, владельцы различаются. Флаг is_available при
// создании не меняется: на одно объявление может быть несколько
// конкурирующих предложений.
func (s *ExchangeService) CreateExchangeRequest(c fiber.Ctx) error {
	var input models.CreateExchangeRequestInput
	if err := c.Bind().Body(&input); err != nil {
		log.Printf("Ошибка декодирования тела запроса: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат данных",
			"code":  "invalid_body",
		})
	}

	if input.RequesterListingID == "" || input.TargetListingID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Необходимо указать ID объявлений для обмена",
			"code":  "validation_failed",
		})
	}

	requesterListingID, err := uuid.Parse(input.RequesterListingID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат ID объявления инициатора",
			"code":  "invalid_requester_listing_id",
		})
	}

	targetListingID, err := uuid.Parse(input.TargetListingID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат ID целевого объявления",
			"code":  "invalid_target_listing_id",
		})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	// 1-2: объявление инициатора существует и доступно
	requesterListing, err := s.store.GetListing(ctx, requesterListingID)
	if err != nil {
		if errors.Is(err, storage.ErrListingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Объявление инициатора не найдено",
				"code":  "requester_listing_not_found",
			})
		}
		log.Printf("Ошибка запроса объявления инициатора: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Ошибка проверки объявления",
		})
	}
	if !requesterListing.IsAvailable {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Объявление инициатора недоступно для обмена",
			"code":  "requester_listing_unavailable",
		})
	}

	// 3-4: целевое объявление существует и доступно
	targetListing, err := s.store.GetListing(ctx, targetListingID)
	if err != nil {
		if errors.Is(err, storage.ErrListingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Целевое объявление не найдено",
				"code":  "target_listing_not_found",
			})
		}
		log.Printf("Ошибка запроса целевого объявления: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Ошибка проверки объявления",
		})
	}
	if !targetListing.IsAvailable {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Целевое объявление недоступно для обмена",
			"code":  "target_listing_unavailable",
		})
	}

	// 5: нельзя предлагать обмен между объявлениями одного владельца
	if requesterListing.UserID == targetListing.UserID {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Нельзя предложить обмен на собственное объявление",
			"code":  "self_exchange_forbidden",
		})
	}

	created, err := s.store.CreateExchangeRequest(ctx, requesterListingID, targetListingID, input.Message)
	if err != nil {
		log.Printf("Ошибка создания предложения обмена: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Ошибка сохранения предложения обмена",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"exchange_request": created,
	})
}

// GetExchangeRequests возвращает предложения обмена, где пользователь владеет
// объявлением хотя бы с одной стороны. Каждое предложение встречается в
// ответе ровно один раз.
func (s *ExchangeService) GetExchangeRequests(c fiber.Ctx) error {
	userIDStr := c.Query("user_id")
	if userIDStr == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Необходимо указать ID пользователя",
			"code":  "validation_failed",
		})
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат ID пользователя",
			"code":  "invalid_user_id",
		})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	exchanges, err := s.store.GetExchangeRequestsForUser(ctx, userID)
	if err != nil {
		log.Printf("Ошибка запроса предложений обмена: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Ошибка получения предложений обмена",
		})
	}

	return c.JSON(fiber.Map{
		"exchange_requests": exchanges,
		"count":             len(exchanges),
	})
}

// UpdateExchangeStatus устанавливает новый статус предложения обмена.
// Проверяется только принадлежность статуса перечислению: таблицы переходов
// нет, любой статус можно установить из любого.
func (s *ExchangeService) UpdateExchangeStatus(c fiber.Ctx) error {
	exchangeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат ID предложения обмена",
			"code":  "invalid_exchange_id",
		})
	}

	var input models.UpdateExchangeStatusInput
	if err := c.Bind().Body(&input); err != nil {
		log.Printf("Ошибка декодирования тела запроса: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат данных",
			"code":  "invalid_body",
		})
	}

	if !input.Status.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Недопустимый статус предложения обмена",
			"code":  "validation_failed",
		})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	updated, err := s.store.UpdateExchangeStatus(ctx, exchangeID, input.Status)
	if err != nil {
		if errors.Is(err, storage.ErrExchangeRequestNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Предложение обмена не найдено",
				"code":  "exchange_request_not_found",
			})
		}
		log.Printf("Ошибка обновления статуса предложения: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Ошибка обновления статуса предложения",
		})
	}

	return c.JSON(fiber.Map{
		"exchange_request": updated,
	})
}
