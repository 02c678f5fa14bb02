package models

import "time"

// User represents a tracked person in the system
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// WeightRecord represents a single timestamped body-weight measurement
// belonging to a user. Weight is in kilograms. Date is the user-supplied
// measurement moment; CreatedAt is the insertion time.
type WeightRecord struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Weight    float64   `json:"weight"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// Photo represents a progress photo uploaded by a user. ImagePath is the
// server-generated filename in the blob store; ImageURL is derived when
// listing and not persisted.
type Photo struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ImagePath string    `json:"image_path"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
	ImageURL  string    `json:"image_url,omitempty"`
}
