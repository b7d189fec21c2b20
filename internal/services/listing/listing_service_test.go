package listing

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solemate/solemate-api/internal/models"
	"github.com/solemate/solemate-api/internal/storage/memory"
)

func setupTestApp() (*fiber.App, *memory.Store) {
	store := memory.New()
	app := fiber.New()
	NewListingService(store).SetupRoutes(app)
	return app, store
}

func createTestUser(t *testing.T, store *memory.Store, email string) *models.User {
	t.Helper()
	u, err := store.CreateUser(context.Background(), email, "Тестовый пользователь", nil)
	require.NoError(t, err)
	return u
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func getJSON(t *testing.T, app *fiber.App, path string, dest any) *http.Response {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	if dest != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
	}
	return resp
}

func validInput(userID string) models.CreateListingInput {
	return models.CreateListingInput{
		UserID:     userID,
		Brand:      "Nike",
		Model:      "Air Max 90",
		Size:       10.5,
		SizeSystem: models.SizeSystemUS,
		Foot:       models.FootLeft,
		Condition:  models.ConditionGood,
		Color:      "белый",
	}
}

func TestCreateListingRoundTrip(t *testing.T) {
	app, store := setupTestApp()
	owner := createTestUser(t, store, "owner@example.com")

	// Размер 10.5 должен вернуться числом во всех системах размеров
	for _, system := range []models.SizeSystem{models.SizeSystemUS, models.SizeSystemEU, models.SizeSystemUK} {
		input := validInput(owner.ID.String())
		input.SizeSystem = system

		resp := postJSON(t, app, "/api/listings", input)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var body struct {
			Listing models.Listing `json:"listing"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, 10.5, body.Listing.Size)
		assert.Equal(t, system, body.Listing.SizeSystem)
		assert.Equal(t, owner.ID, body.Listing.UserID)
		assert.True(t, body.Listing.IsAvailable, "новое объявление доступно по умолчанию")
	}
}

func TestCreateListingUserNotFound(t *testing.T) {
	app, _ := setupTestApp()

	resp := postJSON(t, app, "/api/listings", validInput("0e8f1c8a-5f6e-4d2b-9a77-3c1b2a4d5e6f"))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "user_not_found", body["code"])
}

func TestCreateListingValidation(t *testing.T) {
	app, store := setupTestApp()
	owner := createTestUser(t, store, "owner@example.com")

	tests := []struct {
		name   string
		mutate func(in *models.CreateListingInput)
	}{
		{"пустой бренд", func(in *models.CreateListingInput) { in.Brand = "" }},
		{"пустая модель", func(in *models.CreateListingInput) { in.Model = " " }},
		{"нулевой размер", func(in *models.CreateListingInput) { in.Size = 0 }},
		{"отрицательный размер", func(in *models.CreateListingInput) { in.Size = -9 }},
		{"неизвестная система размеров", func(in *models.CreateListingInput) { in.SizeSystem = "jp" }},
		{"неизвестная нога", func(in *models.CreateListingInput) { in.Foot = "both" }},
		{"неизвестное состояние", func(in *models.CreateListingInput) { in.Condition = "broken" }},
		{"пустой цвет", func(in *models.CreateListingInput) { in.Color = "" }},
		{"кривой URL изображения", func(in *models.CreateListingInput) {
			bad := "not a url"
			in.ImageURL = &bad
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput(owner.ID.String())
			tt.mutate(&input)

			resp := postJSON(t, app, "/api/listings", input)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}

	// Ничего из невалидного не должно было сохраниться
	var body struct {
		Count int `json:"count"`
	}
	getJSON(t, app, "/api/listings", &body)
	assert.Equal(t, 0, body.Count)
}

func TestSearchListings(t *testing.T) {
	app, store := setupTestApp()
	owner := createTestUser(t, store, "owner@example.com")
	other := createTestUser(t, store, "other@example.com")

	seed := []models.CreateListingInput{
		{UserID: owner.ID.String(), Brand: "Nike", Model: "Air Max 90", Size: 10.5, SizeSystem: models.SizeSystemUS, Foot: models.FootLeft, Condition: models.ConditionGood, Color: "белый"},
		{UserID: owner.ID.String(), Brand: "Nike", Model: "Pegasus 40", Size: 9, SizeSystem: models.SizeSystemUS, Foot: models.FootRight, Condition: models.ConditionNew, Color: "черный"},
		{UserID: other.ID.String(), Brand: "Adidas", Model: "Gazelle", Size: 10.5, SizeSystem: models.SizeSystemEU, Foot: models.FootLeft, Condition: models.ConditionFair, Color: "белый"},
	}
	for _, in := range seed {
		resp := postJSON(t, app, "/api/listings", in)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	type listResponse struct {
		Listings []models.Listing `json:"listings"`
		Count    int              `json:"count"`
	}

	// Поиск без фильтров совпадает с полным списком
	var all, searched listResponse
	getJSON(t, app, "/api/listings", &all)
	getJSON(t, app, "/api/listings/search", &searched)
	assert.Equal(t, all.Count, searched.Count)
	assert.ElementsMatch(t, all.Listings, searched.Listings)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"по бренду", "?brand=Nike", 2},
		{"бренд и нога одновременно", "?brand=Nike&foot=left", 1},
		{"точный размер", "?size=10.5", 2},
		{"размер и система", "?size=10.5&size_system=eu", 1},
		{"по цвету", "?color=" + url.QueryEscape("белый"), 2},
		{"по владельцу", "?user_id=" + other.ID.String(), 1},
		{"без совпадений", "?brand=Puma", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body listResponse
			resp := getJSON(t, app, "/api/listings/search"+tt.query, &body)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.want, body.Count)
			for _, l := range body.Listings {
				// Каждый найденный элемент обязан удовлетворять всем фильтрам
				if tt.query == "?brand=Nike&foot=left" {
					assert.Equal(t, "Nike", l.Brand)
					assert.Equal(t, models.FootLeft, l.Foot)
				}
			}
		})
	}
}

func TestSearchListingsBadFilters(t *testing.T) {
	app, _ := setupTestApp()

	tests := []struct {
		name  string
		query string
	}{
		{"нечисловой размер", "?size=huge"},
		{"неизвестная система размеров", "?size_system=jp"},
		{"неизвестная нога", "?foot=both"},
		{"неизвестное состояние", "?condition=broken"},
		{"кривой ID владельца", "?user_id=abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := getJSON(t, app, "/api/listings/search"+tt.query, nil)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}
