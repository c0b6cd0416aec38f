package entity

import (
	"encoding/json"
	"time"
)

// CartSnapshot is the persisted partial snapshot of a register's cart
// state, keyed by a fixed name per register. It is a plain key-value
// blob row: the engine replays it on startup and never queries inside it.
type CartSnapshot struct {
	Key       string          `gorm:"size:100;primary_key" json:"key"`
	Blob      json.RawMessage `gorm:"type:jsonb" json:"blob"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName returns the table name for the CartSnapshot model
func (CartSnapshot) TableName() string {
	return "cart_snapshots"
}
