package user

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
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
	NewUserService(store).SetupRoutes(app)
	return app, store
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

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func TestCreateUser(t *testing.T) {
	app, _ := setupTestApp()

	location := "Москва"
	resp := postJSON(t, app, "/api/users", models.CreateUserInput{
		Email:    "ivan@example.com",
		Name:     "Иван",
		Location: &location,
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body struct {
		User models.User `json:"user"`
	}
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body.User.ID)
	assert.Equal(t, "ivan@example.com", body.User.Email)
	assert.Equal(t, "Иван", body.User.Name)
	require.NotNil(t, body.User.Location)
	assert.Equal(t, "Москва", *body.User.Location)
	assert.False(t, body.User.CreatedAt.IsZero())
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	app, _ := setupTestApp()

	resp := postJSON(t, app, "/api/users", models.CreateUserInput{
		Email: "dup@example.com",
		Name:  "Первый",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Повторная регистрация с тем же email должна завершиться конфликтом
	resp = postJSON(t, app, "/api/users", models.CreateUserInput{
		Email: "dup@example.com",
		Name:  "Второй",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Equal(t, "duplicate_email", body["code"])
}

func TestCreateUserValidation(t *testing.T) {
	app, _ := setupTestApp()

	tests := []struct {
		name  string
		input models.CreateUserInput
	}{
		{"некорректный email", models.CreateUserInput{Email: "не-адрес", Name: "Иван"}},
		{"пустое имя", models.CreateUserInput{Email: "ok@example.com", Name: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, app, "/api/users", tt.input)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

			var body map[string]interface{}
			decodeBody(t, resp, &body)
			assert.Equal(t, "validation_failed", body["code"])
		})
	}
}

func TestGetUsers(t *testing.T) {
	app, _ := setupTestApp()

	for _, email := range []string{"a@example.com", "b@example.com"} {
		resp := postJSON(t, app, "/api/users", models.CreateUserInput{Email: email, Name: "Тест"})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	req := httptest.NewRequest("GET", "/api/users", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Users []models.User `json:"users"`
		Count int           `json:"count"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, 2, body.Count)
	assert.Len(t, body.Users, 2)
}
