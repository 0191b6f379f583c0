package models

import "time"

// UserProfile extends a user with the fields shown on posts and the
// permission flags consulted by pin/delete checks.
type UserProfile struct {
	UserID       string    `json:"uid" db:"user_id"`
	DisplayName  string    `json:"displayName" db:"display_name"`
	EmailAddress string    `json:"emailAddress" db:"email_address"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	PositionRole string    `json:"positionRole" db:"position_role"`
	CanPinOwn    bool      `json:"canPinOwn" db:"can_pin_own"`
	CanPinAny    bool      `json:"canPinAny" db:"can_pin_any"`
	CanDeleteAny bool      `json:"canDeleteAny" db:"can_delete_any"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
