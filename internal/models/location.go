package models

import "time"

// Location represents a row of the locations table.
type Location struct {
	LocationID string   `db:"location_id"`
	UserID     string   `db:"user_id"`
	Name       string   `db:"name"`
	Address    string   `db:"address"`
	Latitude   *float64 `db:"latitude"`
	Longitude  *float64 `db:"longitude"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}

// TableName returns the table backing this model.
func (Location) TableName() string {
	return "locations"
}
