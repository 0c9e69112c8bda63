// Package cache mantiene un registro acotado de auditoría de consultas de
// recomendación en Redis: las últimas N consultas por usuario, best-effort.
// Una falla de Redis nunca afecta la respuesta al usuario.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// AuditEntry es una consulta de recomendación registrada.
type AuditEntry struct {
	ID      string    `json:"id"`
	UserID  int       `json:"user_id"`
	Seeds   []string  `json:"seeds"`
	Results []string  `json:"results"`
	At      time.Time `json:"at"`
}

// Audit escribe y lee el registro acotado por usuario.
type Audit struct {
	client *redis.Client
	limit  int64
}

// NewAudit crea el registro de auditoría. Con client nil queda deshabilitado
// (Record es no-op y Recent devuelve vacío).
func NewAudit(client *redis.Client, limit int64) *Audit {
	if limit <= 0 {
		limit = 20
	}
	return &Audit{client: client, limit: limit}
}

func auditKey(userID int) string {
	return fmt.Sprintf("audit:recs:%d", userID)
}

// Record agrega la consulta al frente de la lista del usuario y recorta al
// límite. Best-effort: los errores van al log, nunca al caller.
func (a *Audit) Record(ctx context.Context, userID int, seeds, results []string) {
	if a.client == nil {
		return
	}
	entry := AuditEntry{
		ID:      uuid.New().String(),
		UserID:  userID,
		Seeds:   seeds,
		Results: results,
		At:      time.Now().UTC(),
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		log.Printf("[AUDIT] marshal: %v", err)
		return
	}

	key := auditKey(userID)
	pipe := a.client.TxPipeline()
	pipe.LPush(ctx, key, raw)
	pipe.LTrim(ctx, key, 0, a.limit-1)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("[AUDIT] registrar consulta de %d: %v", userID, err)
	}
}

// Recent devuelve las últimas n consultas del usuario, más reciente primero.
func (a *Audit) Recent(ctx context.Context, userID int, n int64) ([]AuditEntry, error) {
	if a.client == nil {
		return nil, nil
	}
	if n <= 0 || n > a.limit {
		n = a.limit
	}
	raws, err := a.client.LRange(ctx, auditKey(userID), 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("cache: leyendo auditoría: %w", err)
	}

	entries := make([]AuditEntry, 0, len(raws))
	for _, raw := range raws {
		var e AuditEntry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}
