package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solemate/solemate-api/internal/models"
	"github.com/solemate/solemate-api/internal/storage"
)

func seedUserWithListing(t *testing.T, s *Store, email string) (*models.User, *models.Listing) {
	t.Helper()
	u, err := s.CreateUser(context.Background(), email, "Тест", nil)
	require.NoError(t, err)

	l, err := s.CreateListing(context.Background(), storage.CreateListingParams{
		UserID:     u.ID,
		Brand:      "Nike",
		Model:      "Air Max 90",
		Size:       10.5,
		SizeSystem: models.SizeSystemUS,
		Foot:       models.FootLeft,
		Condition:  models.ConditionGood,
		Color:      "белый",
	})
	require.NoError(t, err)
	return u, l
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := New()

	_, err := s.CreateUser(context.Background(), "dup@example.com", "Первый", nil)
	require.NoError(t, err)

	// Сравнение email без учета регистра, как в уникальном индексе
	_, err = s.CreateUser(context.Background(), "DUP@example.com", "Второй", nil)
	assert.ErrorIs(t, err, storage.ErrDuplicateEmail)
}

func TestCreateListingUnknownOwner(t *testing.T) {
	s := New()

	_, err := s.CreateListing(context.Background(), storage.CreateListingParams{
		UserID:     uuid.New(),
		Brand:      "Nike",
		Model:      "Air Max 90",
		Size:       10.5,
		SizeSystem: models.SizeSystemUS,
		Foot:       models.FootLeft,
		Condition:  models.ConditionGood,
		Color:      "белый",
	})
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestSearchListingsFilters(t *testing.T) {
	s := New()
	_, nike := seedUserWithListing(t, s, "a@example.com")
	_, _ = seedUserWithListing(t, s, "b@example.com")

	brand := "Nike"
	foot := models.FootLeft
	found, err := s.SearchListings(context.Background(), models.ListingFilter{Brand: &brand, Foot: &foot})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	size := 9.0
	found, err = s.SearchListings(context.Background(), models.ListingFilter{Size: &size})
	require.NoError(t, err)
	assert.Empty(t, found)

	owner := nike.UserID
	found, err = s.SearchListings(context.Background(), models.ListingFilter{UserID: &owner})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, nike.ID, found[0].ID)
}

func TestGetExchangeRequestsForUserUnionDedup(t *testing.T) {
	s := New()
	uA, lA := seedUserWithListing(t, s, "a@example.com")
	uB, lB := seedUserWithListing(t, s, "b@example.com")

	created, err := s.CreateExchangeRequest(context.Background(), lA.ID, lB.ID, nil)
	require.NoError(t, err)

	// Обе стороны видят предложение ровно один раз
	for _, userID := range []uuid.UUID{uA.ID, uB.ID} {
		requests, err := s.GetExchangeRequestsForUser(context.Background(), userID)
		require.NoError(t, err)
		require.Len(t, requests, 1)
		assert.Equal(t, created.ID, requests[0].ID)
	}

	// Пользователь без объявлений в предложении не видит ничего
	outsider, err := s.CreateUser(context.Background(), "c@example.com", "Тест", nil)
	require.NoError(t, err)
	requests, err := s.GetExchangeRequestsForUser(context.Background(), outsider.ID)
	require.NoError(t, err)
	assert.Empty(t, requests)
}

func TestGetExchangeRequestsForUserOrdering(t *testing.T) {
	s := New()
	_, lA := seedUserWithListing(t, s, "a@example.com")
	uB, lB := seedUserWithListing(t, s, "b@example.com")

	first, err := s.CreateExchangeRequest(context.Background(), lA.ID, lB.ID, nil)
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	second, err := s.CreateExchangeRequest(context.Background(), lB.ID, lA.ID, nil)
	require.NoError(t, err)

	// Новые предложения идут первыми
	requests, err := s.GetExchangeRequestsForUser(context.Background(), uB.ID)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, second.ID, requests[0].ID)
	assert.Equal(t, first.ID, requests[1].ID)
}

func TestUpdateExchangeStatus(t *testing.T) {
	s := New()
	_, lA := seedUserWithListing(t, s, "a@example.com")
	_, lB := seedUserWithListing(t, s, "b@example.com")

	created, err := s.CreateExchangeRequest(context.Background(), lA.ID, lB.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, created.Status)

	_, err = s.UpdateExchangeStatus(context.Background(), uuid.New(), models.StatusAccepted)
	assert.ErrorIs(t, err, storage.ErrExchangeRequestNotFound)

	updated, err := s.UpdateExchangeStatus(context.Background(), created.ID, models.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, updated.Status)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}
