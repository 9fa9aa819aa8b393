package schema

import (
	"time"
)

type Base struct {
	ID        uint64    `gorm:"primaryKey; autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
