package models

import "time"

type Player struct {
	ID       int     `json:"id" db:"id"`
	Name     string  `json:"name" db:"name"`
	Position string  `json:"position,omitempty" db:"position"`
	Rating   float64 `json:"rating" db:"rating"`
	PeladaID int     `json:"pelada_id" db:"pelada_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
