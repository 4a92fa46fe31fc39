package models

import "time"

// Group represents a learning group
type Group struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title" example:"Algorithms 101"`
	Description string    `json:"description" db:"description"`
	ImageURL    *string   `json:"imageUrl,omitempty" db:"image_url"`
	Level       string    `json:"level,omitempty" db:"level" example:"beginner"`
	Achievement string    `json:"achievement,omitempty" db:"achievement"`
	Author      string    `json:"author" db:"author"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// GroupMember is one row of the group membership table. CreatedAt is when the
// user joined the group.
type GroupMember struct {
	GroupID   string    `json:"groupId" db:"group_id"`
	UserID    string    `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
