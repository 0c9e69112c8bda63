package cache

import (
	"log"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient crea el cliente de Redis para el caché de auditoría.
func NewRedisClient(addr, password string, db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	log.Printf("[REDIS] Conectando a %s (DB %d)", addr, db)
	return client
}
