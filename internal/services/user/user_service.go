package user

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/solemate/solemate-api/internal/db"
	"github.com/solemate/solemate-api/internal/models"
	"github.com/solemate/solemate-api/internal/storage"
)

// UserService представляет сервис для работы с пользователями
type UserService struct {
	store storage.Storage
}

// NewUserService создает новый экземпляр UserService
func NewUserService(store storage.Storage) *UserService {
	return &UserService{store: store}
}

// CreateUser обрабатывает регистрацию нового пользователя
func (s *UserService) CreateUser(c fiber.Ctx) error {
	var input models.CreateUserInput
	if err := c.Bind().Body(&input); err != nil {
		log.Printf("Ошибка декодирования тела запроса: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат данных",
			"code":  "invalid_body",
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

	created, err := s.store.CreateUser(ctx, input.Email, input.Name, input.Location)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Пользователь с таким email уже зарегистрирован",
				"code":  "duplicate_email",
			})
		}
		log.Printf("Ошибка создания пользователя: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Ошибка сохранения пользователя",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user": created,
	})
}

// GetUsers возвращает список всех пользователей
func (s *UserService) GetUsers(c fiber.Ctx) error {
	ctx, cancel := db.GetContext()
	defer cancel()

	users, err := s.store.GetUsers(ctx)
	if err != nil {
		log.Printf("Ошибка запроса пользователей: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Ошибка получения пользователей",
		})
	}

	return c.JSON(fiber.Map{
		"users": users,
		"count": len(users),
	})
}
