package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client глобальный клиент Redis. Если Redis недоступен или не настроен,
// клиент равен nil и все операции кеша превращаются в no-op.
var Client *redis.Client

// ListingsKey ключ кеша для полного списка объявлений
const ListingsKey = "listings:all"

// InitRedis подключается к Redis. Отсутствие Redis не является фатальной
// ошибкой: API продолжает работать без кеша.
func InitRedis(addr string) {
	if addr == "" {
		log.Println("⚠️ REDIS_ADDR не задан, кеш отключен")
		return
	}

	Client = redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis недоступен: %v (продолжаем без кеша)", err)
		Client = nil
		return
	}
	log.Println("✅ Успешное подключение к Redis")
}

// GetJSON читает ключ и раскладывает JSON в dest.
// Возвращает (true, nil) при попадании и (false, nil) при промахе.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if Client == nil {
		return false, nil
	}
	s, err := Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON сериализует значение и сохраняет его с TTL
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if Client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return Client.Set(ctx, key, b, ttl).Err()
}

// Invalidate удаляет ключи из кеша. Ошибки игнорируются: кеш вторичен
// по отношению к базе данных.
func Invalidate(ctx context.Context, keys ...string) {
	if Client == nil || len(keys) == 0 {
		return
	}
	if err := Client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("Ошибка инвалидации кеша: %v", err)
	}
}
