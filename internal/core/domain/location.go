package domain

import "time"

// Location represents a saved place a route can start or end at.
type Location struct {
	LocationID string   `json:"locationID"` // Primary key (UUID)
	UserID     string   `json:"userID"`
	Name       string   `json:"name"`
	Address    string   `json:"address,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
