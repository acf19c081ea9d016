package models

import "time"

// Player is a registered sportdag participant. Players are immutable after
// registration except for the optional picture reference.
type Player struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Number       int       `json:"number" db:"number"` // start number, unique
	RegisteredAt time.Time `json:"registered_at" db:"registered_at"`
	PictureKey   *string   `json:"-" db:"picture_key"`
	PictureURL   *string   `json:"picture,omitempty" db:"-"`
}
