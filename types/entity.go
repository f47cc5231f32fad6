package types

import "time"

// Entity carries the creation and modification timestamps shared by every
// Khata record. Domain types embed it; mutations call Touch after changing
// any field so UpdatedAt tracks the last write.
type Entity struct {
	CreatedAt time.Time `json:"created_at" bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `json:"updated_at" bun:"updated_at,notnull,default:current_timestamp"`
}

// NewEntity returns an Entity stamped with the current UTC time.
func NewEntity() Entity {
	now := time.Now().UTC()
	return Entity{CreatedAt: now, UpdatedAt: now}
}

// Touch records a modification.
func (e *Entity) Touch() {
	e.UpdatedAt = time.Now().UTC()
}
