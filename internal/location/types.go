package location

import "time"

// Location is a venue a match can be played at.
type Location struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   *string   `json:"address"`
	City      *string   `json:"city"`
	State     *string   `json:"state"`
	Country   *string   `json:"country"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateInput is the payload for registering a location.
type CreateInput struct {
	Name    string  `json:"name"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	Country *string `json:"country"`
}
