package models

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User представляет пользователя в системе
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Location  *string   `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUserInput представляет данные для создания пользователя
type CreateUserInput struct {
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	Location *string `json:"location"`
}

// Validate проверяет входные данные на уровне границы API
func (in *CreateUserInput) Validate() error {
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return NewValidationError("email", "Неверный формат email")
	}
	if strings.TrimSpace(in.Name) == "" {
		return NewValidationError("name", "Имя обязательно")
	}
	return nil
}
