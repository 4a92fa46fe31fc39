package models

import "time"

// RoleType represents a user's role within the organization
type RoleType string

const (
	RoleStudent    RoleType = "STUDENT"
	RoleAdmin      RoleType = "ADMIN"
	RoleSuperAdmin RoleType = "SUPER_ADMIN"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        string    `json:"id" db:"id" example:"6e9c6b0a-6f3c-4f9f-9f2a-1df2b8f7b8f0"`
	Username  string    `json:"username" db:"username" example:"aziza.karimova"`
	Email     string    `json:"email" db:"email" example:"aziza@example.com"`
	Password  string    `json:"-" db:"password"` // hashed, excluded from JSON
	Role      RoleType  `json:"role" db:"role" example:"STUDENT"`
	ImageURL  *string   `json:"imageUrl,omitempty" db:"image_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
