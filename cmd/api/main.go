package main

import (
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/solemate/solemate-api/internal/cache"
	"github.com/solemate/solemate-api/internal/config"
	"github.com/solemate/solemate-api/internal/db"
	"github.com/solemate/solemate-api/internal/services/exchange"
	"github.com/solemate/solemate-api/internal/services/listing"
	"github.com/solemate/solemate-api/internal/services/user"
	"github.com/solemate/solemate-api/internal/storage"
	"github.com/solemate/solemate-api/internal/storage/memory"
	"github.com/solemate/solemate-api/internal/storage/postgres"
)

func main() {
	// Загружаем конфигурацию
	cfg := config.LoadConfig()

	// Выбираем хранилище
	var store storage.Storage
	switch cfg.StorageDriver {
	case "memory":
		log.Println("⚠️ Используется хранилище в памяти, данные не переживут перезапуск")
		store = memory.New()
	default:
		if err := db.InitDB(cfg); err != nil {
			log.Fatalf("❌ Ошибка при инициализации базы данных: %v", err)
		}
		defer db.CloseDB()
		store = postgres.New(db.Pool)
	}

	// Подключаем Redis (необязательный кеш)
	cache.InitRedis(cfg.RedisAddr)

	// Создаём экземпляр Fiber
	app := fiber.New(fiber.Config{
		AppName:      "Solemate API",
		ErrorHandler: errorHandler,
	})

	// Добавляем middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowCredentials: false,
	}))

	// Проверка живости
	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Создаём сервисы и регистрируем маршруты
	user.NewUserService(store).SetupRoutes(app)
	listing.NewListingService(store).SetupRoutes(app)
	exchange.NewExchangeService(store).SetupRoutes(app)

	// Запускаем сервер
	log.Printf("✅ Solemate API запущен на порту %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}

// errorHandler обрабатывает ошибки Fiber
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	// Проверяем, является ли ошибка из Fiber
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	// Отправляем ошибку в JSON
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
