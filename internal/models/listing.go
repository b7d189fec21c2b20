package models

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SizeSystem определяет систему размеров обуви
type SizeSystem string

const (
	SizeSystemUS SizeSystem = "us"
	SizeSystemEU SizeSystem = "eu"
	SizeSystemUK SizeSystem = "uk"
)

// IsValid проверяет допустимость значения системы размеров
func (s SizeSystem) IsValid() bool {
	switch s {
	case SizeSystemUS, SizeSystemEU, SizeSystemUK:
		return true
	}
	return false
}

// Foot определяет, для какой ноги предназначен ботинок
type Foot string

const (
	FootLeft  Foot = "left"
	FootRight Foot = "right"
)

// IsValid проверяет допустимость значения ноги
func (f Foot) IsValid() bool {
	return f == FootLeft || f == FootRight
}

// Condition определяет состояние обуви
type Condition string

const (
	ConditionNew     Condition = "new"
	ConditionLikeNew Condition = "like_new"
	ConditionGood    Condition = "good"
	ConditionFair    Condition = "fair"
	ConditionPoor    Condition = "poor"
)

// IsValid проверяет допустимость значения состояния
func (c Condition) IsValid() bool {
	switch c {
	case ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}

// Listing представляет объявление об одном ботинке (не паре)
type Listing struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Brand       string     `json:"brand"`
	Model       string     `json:"model"`
	Size        float64    `json:"size"`
	SizeSystem  SizeSystem `json:"size_system"`
	Foot        Foot       `json:"foot"`
	Condition   Condition  `json:"condition"`
	Color       string     `json:"color"`
	Description *string    `json:"description"`
	ImageURL    *string    `json:"image_url"`
	IsAvailable bool       `json:"is_available"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreateListingInput представляет данные для создания объявления
type CreateListingInput struct {
	UserID      string     `json:"user_id"`
	Brand       string     `json:"brand"`
	Model       string     `json:"model"`
	Size        float64    `json:"size"`
	SizeSystem  SizeSystem `json:"size_system"`
	Foot        Foot       `json:"foot"`
	Condition   Condition  `json:"condition"`
	Color       string     `json:"color"`
	Description *string    `json:"description"`
	ImageURL    *string    `json:"image_url"`
}

// Validate проверяет входные данные на уровне границы API
func (in *CreateListingInput) Validate() error {
	if strings.TrimSpace(in.Brand) == "" {
		return NewValidationError("brand", "Бренд обязателен")
	}
	if strings.TrimSpace(in.Model) == "" {
		return NewValidationError("model", "Модель обязательна")
	}
	if in.Size <= 0 {
		return NewValidationError("size", "Размер должен быть положительным числом")
	}
	if !in.SizeSystem.IsValid() {
		return NewValidationError("size_system", "Недопустимая система размеров")
	}
	if !in.Foot.IsValid() {
		return NewValidationError("foot", "Укажите левый или правый ботинок")
	}
	if !in.Condition.IsValid() {
		return NewValidationError("condition", "Недопустимое состояние обуви")
	}
	if strings.TrimSpace(in.Color) == "" {
		return NewValidationError("color", "Цвет обязателен")
	}
	if in.ImageURL != nil && *in.ImageURL != "" {
		u, err := url.Parse(*in.ImageURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return NewValidationError("image_url", "Неверный формат URL изображения")
		}
	}
	return nil
}

// ListingFilter описывает необязательные фильтры поиска объявлений.
// Отсутствующий фильтр не накладывает ограничений, присутствующие
// объединяются логическим AND.
type ListingFilter struct {
	Brand      *string
	Size       *float64
	SizeSystem *SizeSystem
	Foot       *Foot
	Condition  *Condition
	Color      *string
	UserID     *uuid.UUID
}

// Matches проверяет, удовлетворяет ли объявление всем заданным фильтрам
func (f *ListingFilter) Matches(l *Listing) bool {
	if f.Brand != nil && l.Brand != *f.Brand {
		return false
	}
	if f.Size != nil && l.Size != *f.Size {
		return false
	}
	if f.SizeSystem != nil && l.SizeSystem != *f.SizeSystem {
		return false
	}
	if f.Foot != nil && l.Foot != *f.Foot {
		return false
	}
	if f.Condition != nil && l.Condition != *f.Condition {
		return false
	}
	if f.Color != nil && l.Color != *f.Color {
		return false
	}
	if f.UserID != nil && l.UserID != *f.UserID {
		return false
	}
	return true
}
