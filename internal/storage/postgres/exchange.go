package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/solemate/solemate-api/internal/models"
	"github.com/solemate/solemate-api/internal/storage"
)

const exchangeColumns = `id, requester_listing_id, target_listing_id, status, message, created_at, updated_at`

func scanExchange(row pgx.Row) (*models.ExchangeRequest, error) {
	var er models.ExchangeRequest
	err := row.Scan(
		&er.ID,
		&er.RequesterListingID,
		&er.TargetListingID,
		&er.Status,
		&er.Message,
		&er.CreatedAt,
		&er.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &er, nil
}

// CreateExchangeRequest вставляет новое предложение обмена со статусом
// pending. Цепочку предусловий проверяет сервисный слой до вызова.
func (s *Store) CreateExchangeRequest(ctx context.Context, requesterListingID, targetListingID uuid.UUID, message *string) (*models.ExchangeRequest, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	id := uuid.New()

	row := tx.QueryRow(ctx, `
		INSERT INTO exchange_requests (id, requester_listing_id, target_listing_id, status, message)
		VALUES ($1, $2, $3, 'pending', $4)
		RETURNING `+exchangeColumns+`
	`, id, requesterListingID, targetListingID, message)

	exchange, err := scanExchange(row)
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании предложения обмена: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}
	return exchange, nil
}

// GetExchangeRequest возвращает предложение обмена по ID
func (s *Store) GetExchangeRequest(ctx context.Context, id uuid.UUID) (*models.ExchangeRequest, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+exchangeColumns+`
		FROM exchange_requests
		WHERE id = $1
	`, id)

	exchange, err := scanExchange(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrExchangeRequestNotFound
		}
		return nil, fmt.Errorf("ошибка запроса предложения обмена: %w", err)
	}
	return exchange, nil
}

// GetExchangeRequestsForUser возвращает предложения, где пользователь владеет
// объявлением хотя бы с одной стороны. Запрос строится как объединение двух
// выборок по сторонам: UNION убирает дубликаты по строке, так что одно
// предложение встречается в ответе ровно один раз.
func (s *Store) GetExchangeRequestsForUser(ctx context.Context, userID uuid.UUID) ([]models.ExchangeRequest, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT er.id, er.requester_listing_id, er.target_listing_id, er.status, er.message, er.created_at, er.updated_at
		FROM exchange_requests er
		JOIN shoe_listings l ON er.requester_listing_id = l.id
		WHERE l.user_id = $1
		UNION
		SELECT er.id, er.requester_listing_id, er.target_listing_id, er.status, er.message, er.created_at, er.updated_at
		FROM exchange_requests er
		JOIN shoe_listings l ON er.target_listing_id = l.id
		WHERE l.user_id = $1
		ORDER BY created_at DESC, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса предложений обмена: %w", err)
	}
	defer rows.Close()

	exchanges := []models.ExchangeRequest{}
	for rows.Next() {
		exchange, err := scanExchange(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования предложения обмена: %w", err)
		}
		exchanges = append(exchanges, *exchange)
	}
	return exchanges, rows.Err()
}

// UpdateExchangeStatus устанавливает новый статус и обновляет updated_at.
// Допустим переход из любого статуса в любой: поле статуса не является
// охраняемым конечным автоматом.
func (s *Store) UpdateExchangeStatus(ctx context.Context, id uuid.UUID, status models.ExchangeStatus) (*models.ExchangeRequest, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE exchange_requests
		SET status = $1, updated_at = clock_timestamp()
		WHERE id = $2
		RETURNING `+exchangeColumns+`
	`, status, id)

	exchange, err := scanExchange(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrExchangeRequestNotFound
		}
		return nil, fmt.Errorf("ошибка обновления статуса предложения: %w", err)
	}
	return exchange, nil
}
