package models

import "time"

// Event represents a campus event.
type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Location    string    `json:"location"`
	MaxCapacity int       `json:"max_capacity"`
	Institute   string    `json:"institute"`
	CreatedAt   time.Time `json:"created_at"`
}
