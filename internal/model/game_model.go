package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Game struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PackId    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_games_pack_type"`
	Type      string         `gorm:"type:varchar(32);not null;uniqueIndex:idx_games_pack_type"`
	Status    string         `gorm:"type:varchar(20);not null;default:'ready'"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (Game) TableName() string {
	return "games"
}
