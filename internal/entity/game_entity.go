package entity

import (
	"time"

	"github.com/google/uuid"
)

// Game is one playable exercise payload derived from a learning pack,
// created once per (pack, type).
type Game struct {
	Id        uuid.UUID
	PackId    uuid.UUID
	Type      string
	Status    string
	Payload   map[string]interface{}
	CreatedAt time.Time
}
