package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/solemate/solemate-api/internal/models"
	"github.com/solemate/solemate-api/internal/storage"
)

// Store реализует storage.Storage в памяти процесса. Используется в тестах
// и в режиме разработки (STORAGE_DRIVER=memory). Данные живут до перезапуска.
type Store struct {
	mu        sync.RWMutex
	users     map[uuid.UUID]models.User
	listings  map[uuid.UUID]models.Listing
	exchanges map[uuid.UUID]models.ExchangeRequest
}

var _ storage.Storage = (*Store)(nil)

// New создает пустое хранилище в памяти
func New() *Store {
	return &Store{
		users:     make(map[uuid.UUID]models.User),
		listings:  make(map[uuid.UUID]models.Listing),
		exchanges: make(map[uuid.UUID]models.ExchangeRequest),
	}
}

// CreateUser добавляет пользователя, проверяя уникальность email
func (s *Store) CreateUser(_ context.Context, email, name string, location *string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return nil, storage.ErrDuplicateEmail
		}
	}

	user := models.User{
		ID:        uuid.New(),
		Email:     email,
		Name:      name,
		Location:  location,
		CreatedAt: time.Now(),
	}
	s.users[user.ID] = user
	return &user, nil
}

// GetUsers возвращает всех пользователей
func (s *Store) GetUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.After(users[j].CreatedAt)
		}
		return users[i].ID.String() < users[j].ID.String()
	})
	return users, nil
}

// GetUser возвращает пользователя по ID
func (s *Store) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return &u, nil
}

// CreateListing добавляет объявление
func (s *Store) CreateListing(_ context.Context, params storage.CreateListingParams) (*models.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[params.UserID]; !ok {
		return nil, storage.ErrUserNotFound
	}

	listing := models.Listing{
		ID:          uuid.New(),
		UserID:      params.UserID,
		Brand:       params.Brand,
		Model:       params.Model,
		Size:        params.Size,
		SizeSystem:  params.SizeSystem,
		Foot:        params.Foot,
		Condition:   params.Condition,
		Color:       params.Color,
		Description: params.Description,
		ImageURL:    params.ImageURL,
		IsAvailable: true,
		CreatedAt:   time.Now(),
	}
	s.listings[listing.ID] = listing
	return &listing, nil
}

// GetListings возвращает все объявления
func (s *Store) GetListings(ctx context.Context) ([]models.Listing, error) {
	return s.SearchListings(ctx, models.ListingFilter{})
}

// GetListing возвращает объявление по ID
func (s *Store) GetListing(_ context.Context, id uuid.UUID) (*models.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.listings[id]
	if !ok {
		return nil, storage.ErrListingNotFound
	}
	return &l, nil
}

// SearchListings возвращает объявления, удовлетворяющие всем заданным фильтрам
func (s *Store) SearchListings(_ context.Context, filter models.ListingFilter) ([]models.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listings := []models.Listing{}
	for _, l := range s.listings {
		if filter.Matches(&l) {
			listings = append(listings, l)
		}
	}
	sortListings(listings)
	return listings, nil
}

// SetListingAvailability меняет флаг is_available объявления. Обработчики API
// этот метод не вызывают: флаг меняется только при подготовке данных.
func (s *Store) SetListingAvailability(id uuid.UUID, available bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.listings[id]
	if !ok {
		return storage.ErrListingNotFound
	}
	l.IsAvailable = available
	s.listings[id] = l
	return nil
}

// CreateExchangeRequest добавляет предложение обмена со статусом pending
func (s *Store) CreateExchangeRequest(_ context.Context, requesterListingID, targetListingID uuid.UUID, message *string) (*models.ExchangeRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	exchange := models.ExchangeRequest{
		ID:                 uuid.New(),
		RequesterListingID: requesterListingID,
		TargetListingID:    targetListingID,
		Status:             models.StatusPending,
		Message:            message,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	s.exchanges[exchange.ID] = exchange
	return &exchange, nil
}

// GetExchangeRequest возвращает предложение обмена по ID
func (s *Store) GetExchangeRequest(_ context.Context, id uuid.UUID) (*models.ExchangeRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	er, ok := s.exchanges[id]
	if !ok {
		return nil, storage.ErrExchangeRequestNotFound
	}
	return &er, nil
}

// GetExchangeRequestsForUser возвращает предложения, где пользователь владеет
// объявлением хотя бы с одной стороны. Результат собирается как объединение
// двух проходов (по стороне инициатора и по целевой стороне) с дедупликацией
// по ID предложения.
func (s *Store) GetExchangeRequestsForUser(_ context.Context, userID uuid.UUID) ([]models.ExchangeRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[uuid.UUID]bool)
	exchanges := []models.ExchangeRequest{}

	collect := func(side func(er *models.ExchangeRequest) uuid.UUID) {
		for _, er := range s.exchanges {
			if seen[er.ID] {
				continue
			}
			l, ok := s.listings[side(&er)]
			if ok && l.UserID == userID {
				seen[er.ID] = true
				exchanges = append(exchanges, er)
			}
		}
	}

	collect(func(er *models.ExchangeRequest) uuid.UUID { return er.RequesterListingID })
	collect(func(er *models.ExchangeRequest) uuid.UUID { return er.TargetListingID })

	sort.Slice(exchanges, func(i, j int) bool {
		if !exchanges[i].CreatedAt.Equal(exchanges[j].CreatedAt) {
			return exchanges[i].CreatedAt.After(exchanges[j].CreatedAt)
		}
		return exchanges[i].ID.String() < exchanges[j].ID.String()
	})
	return exchanges, nil
}

// UpdateExchangeStatus устанавливает новый статус и обновляет updated_at.
// Инвариант: updated_at строго больше created_at после обновления.
func (s *Store) UpdateExchangeStatus(_ context.Context, id uuid.UUID, status models.ExchangeStatus) (*models.ExchangeRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	er, ok := s.exchanges[id]
	if !ok {
		return nil, storage.ErrExchangeRequestNotFound
	}

	now := time.Now()
	if !now.After(er.CreatedAt) {
		now = er.CreatedAt.Add(time.Microsecond)
	}
	er.Status = status
	er.UpdatedAt = now
	s.exchanges[id] = er
	return &er, nil
}

func sortListings(listings []models.Listing) {
	sort.Slice(listings, func(i, j int) bool {
		if !listings[i].CreatedAt.Equal(listings[j].CreatedAt) {
			return listings[i].CreatedAt.After(listings[j].CreatedAt)
		}
		return listings[i].ID.String() < listings[j].ID.String()
	})
}
