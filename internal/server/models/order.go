// Package models defines the gateway's data models, both persisted and
// transient, together with their JSON field names.
package models

import "time"

// Order is the persisted record of one completed payment. Token is the only
// cardholder-derived value it carries; it is stored in the legacy
// card_number column.
type Order struct {
	ID        int64      `json:"id"`
	Token     string     `json:"token"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}
