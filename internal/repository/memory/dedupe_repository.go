package memory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// DedupeRepository remembers recently completed (topic, document) deliveries
// so the consumer can drop obvious redeliveries without touching the
// database. Delivery is still at-least-once; the state guards inside the
// stages remain the authoritative defense.
type DedupeRepository struct {
	cache *cache.Cache
}

func NewDedupeRepository(ttl time.Duration) *DedupeRepository {
	return &DedupeRepository{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (r *DedupeRepository) key(topic string, id uuid.UUID) string {
	return fmt.Sprintf("%s:%s", topic, id)
}

// Seen reports whether this delivery completed successfully within the TTL.
func (r *DedupeRepository) Seen(topic string, id uuid.UUID) bool {
	_, found := r.cache.Get(r.key(topic, id))
	return found
}

// MarkDone records a successful completion.
func (r *DedupeRepository) MarkDone(topic string, id uuid.UUID) {
	r.cache.Set(r.key(topic, id), struct{}{}, cache.DefaultExpiration)
}
