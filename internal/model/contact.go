package model

import "time"

// CityAll marks a contact that applies to every city.
const CityAll = "All"

// Sort keys accepted by ContactQuery. Ordering is always descending.
const (
	OrderByUpvotes   = "upvotes"
	OrderByCreatedAt = "created_at"
)

// Contact represents an emergency contact entry
type Contact struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Category    string    `json:"category"`
	City        string    `json:"city"`
	Description *string   `json:"description"` // null when not provided
	IsVerified  bool      `json:"is_verified"`
	Upvotes     int       `json:"upvotes"`
	CreatedAt   time.Time `json:"created_at"`
}

// SubmitContactRequest is the public submission body.
// Required fields are checked by the service so the caller gets a single
// "missing fields" answer instead of binding noise.
type SubmitContactRequest struct {
	Name        string  `json:"name"`
	Phone       string  `json:"phone"`
	Category    string  `json:"category"`
	City        string  `json:"city"`
	Description *string `json:"description"`
}

// LoginRequest is the admin login body
type LoginRequest struct {
	Password string `json:"password"`
}

// ContactQuery describes a filtered listing against the contact store
type ContactQuery struct {
	Verified bool
	// CityIn matches contacts whose city equals any of the values.
	// Empty means no city predicate.
	CityIn  []string
	OrderBy string
}
