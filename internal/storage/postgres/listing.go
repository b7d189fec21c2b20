package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/solemate/solemate-api/internal/models"
	"github.com/solemate/solemate-api/internal/storage"
)

const listingColumns = `id, user_id, brand, model, size, size_system, foot, condition, color, description, image_url, is_available, created_at`

func scanListing(row pgx.Row) (*models.Listing, error) {
	var l models.Listing
	err := row.Scan(
		&l.ID,
		&l.UserID,
		&l.Brand,
		&l.Model,
		&l.Size,
		&l.SizeSystem,
		&l.Foot,
		&l.Condition,
		&l.Color,
		&l.Description,
		&l.ImageURL,
		&l.IsAvailable,
		&l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// CreateListing вставляет новое объявление. Наличие владельца проверяет
// сервисный слой, внешний ключ в базе страхует от гонок.
func (s *Store) CreateListing(ctx context.Context, params storage.CreateListingParams) (*models.Listing, error) {
	id := uuid.New()

	row := s.pool.QueryRow(ctx, `
		INSERT INTO shoe_listings (id, user_id, brand, model, size, size_system, foot, condition, color, description, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+listingColumns+`
	`, id, params.UserID, params.Brand, params.Model, params.Size, params.SizeSystem,
		params.Foot, params.Condition, params.Color, params.Description, params.ImageURL)

	listing, err := scanListing(row)
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании объявления: %w", err)
	}
	return listing, nil
}

// GetListings возвращает все объявления
func (s *Store) GetListings(ctx context.Context) ([]models.Listing, error) {
	return s.queryListings(ctx, `
		SELECT `+listingColumns+`
		FROM shoe_listings
		ORDER BY created_at DESC, id
	`)
}

// GetListing возвращает объявление по ID
func (s *Store) GetListing(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+listingColumns+`
		FROM shoe_listings
		WHERE id = $1
	`, id)

	listing, err := scanListing(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrListingNotFound
		}
		return nil, fmt.Errorf("ошибка запроса объявления: %w", err)
	}
	return listing, nil
}

// SearchListings возвращает объявления, удовлетворяющие всем заданным
// фильтрам. Фильтры объединяются через AND, отсутствие фильтров означает
// выборку всех объявлений.
func (s *Store) SearchListings(ctx context.Context, filter models.ListingFilter) ([]models.Listing, error) {
	conditions := []string{}
	args := []interface{}{}

	addCondition := func(column string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if filter.Brand != nil {
		addCondition("brand", *filter.Brand)
	}
	if filter.Size != nil {
		addCondition("size", *filter.Size)
	}
	if filter.SizeSystem != nil {
		addCondition("size_system", *filter.SizeSystem)
	}
	if filter.Foot != nil {
		addCondition("foot", *filter.Foot)
	}
	if filter.Condition != nil {
		addCondition("condition", *filter.Condition)
	}
	if filter.Color != nil {
		addCondition("color", *filter.Color)
	}
	if filter.UserID != nil {
		addCondition("user_id", *filter.UserID)
	}

	query := `SELECT ` + listingColumns + ` FROM shoe_listings`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id"

	return s.queryListings(ctx, query, args...)
}

func (s *Store) queryListings(ctx context.Context, query string, args ...interface{}) ([]models.Listing, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса объявлений: %w", err)
	}
	defer rows.Close()

	listings := []models.Listing{}
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования объявления: %w", err)
		}
		listings = append(listings, *listing)
	}
	return listings, rows.Err()
}
