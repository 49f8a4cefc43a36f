package models

import "time"

// LibraryEntry rows are append-only: a lapsed rental followed by a later
// purchase produces two rows for the same (user, game). Conflict checks
// only ever consult the most recent row by DateAdded.
type LibraryEntry struct {
	ID         uint       `gorm:"primaryKey" json:"library_id"`
	UserID     uint       `gorm:"not null;index" json:"userId"`
	GameID     uint       `gorm:"not null" json:"gameId"`
	Type       string     `gorm:"not null" json:"type"`
	ExpiryDate *time.Time `json:"expiry_date"` // nil for buy, always set for rent
	DateAdded  time.Time  `gorm:"autoCreateTime" json:"date_added"`
	Game       Game       `gorm:"foreignKey:GameID" json:"game"`
}
