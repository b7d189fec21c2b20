package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/solemate/solemate-api/internal/models"
)

// Ошибки хранилища. Сервисы сравнивают их через errors.Is и сами решают,
// каким HTTP-статусом ответить.
var (
	ErrUserNotFound            = errors.New("пользователь не найден")
	ErrDuplicateEmail          = errors.New("email уже зарегистрирован")
	ErrListingNotFound         = errors.New("объявление не найдено")
	ErrExchangeRequestNotFound = errors.New("предложение обмена не найдено")
)

// CreateListingParams содержит данные нового объявления после валидации
// и разбора идентификаторов на границе API
type CreateListingParams struct {
	UserID      uuid.UUID
	Brand       string
	Model       string
	Size        float64
	SizeSystem  models.SizeSystem
	Foot        models.Foot
	Condition   models.Condition
	Color       string
	Description *string
	ImageURL    *string
}

// Storage описывает операции над долговременным хранилищем. Реализации:
// postgres (основная) и memory (разработка и тесты).
type Storage interface {
	CreateUser(ctx context.Context, email, name string, location *string) (*models.User, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)

	CreateListing(ctx context.Context, params CreateListingParams) (*models.Listing, error)
	GetListings(ctx context.Context) ([]models.Listing, error)
	GetListing(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	SearchListings(ctx context.Context, filter models.ListingFilter) ([]models.Listing, error)

	CreateExchangeRequest(ctx context.Context, requesterListingID, targetListingID uuid.UUID, message *string) (*models.ExchangeRequest, error)
	GetExchangeRequest(ctx context.Context, id uuid.UUID) (*models.ExchangeRequest, error)
	GetExchangeRequestsForUser(ctx context.Context, userID uuid.UUID) ([]models.ExchangeRequest, error)
	UpdateExchangeStatus(ctx context.Context, id uuid.UUID, status models.ExchangeStatus) (*models.ExchangeRequest, error)
}
