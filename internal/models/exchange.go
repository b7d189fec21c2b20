package models

import (
	"time"

	"github.com/google/uuid"
)

// ExchangeStatus определяет статус предложения обмена
type ExchangeStatus string

const (
	StatusPending   ExchangeStatus = "pending"
	StatusAccepted  ExchangeStatus = "accepted"
	StatusCompleted ExchangeStatus = "completed"
	StatusCancelled ExchangeStatus = "cancelled"
)

// IsValid проверяет допустимость значения статуса
func (s ExchangeStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ExchangeRequest представляет предложение обмена между двумя объявлениями.
// Стороны ссылаются на объявления, а не на пользователей напрямую: владелец
// определяется транзитивно через объявление.
type ExchangeRequest struct {
	ID                 uuid.UUID      `json:"id"`
	RequesterListingID uuid.UUID      `json:"requester_listing_id"`
	TargetListingID    uuid.UUID      `json:"target_listing_id"`
	Status             ExchangeStatus `json:"status"`
	Message            *string        `json:"message"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// CreateExchangeRequestInput представляет данные для создания предложения обмена
type CreateExchangeRequestInput struct {
	RequesterListingID string  `json:"requester_listing_id"`
	TargetListingID    string  `json:"target_listing_id"`
	Message            *string `json:"message"`
}

// UpdateExchangeStatusInput представляет данные для смены статуса
type UpdateExchangeStatusInput struct {
	Status ExchangeStatus `json:"status"`
}
