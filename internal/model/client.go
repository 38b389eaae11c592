package model

import "time"

// Client represents a purchasing profile owned one-to-one by a user.
type Client struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	FullName  string    `json:"fullName" db:"full_name"`
	Contact   string    `json:"contact" db:"contact"`
	Address   string    `json:"address" db:"address"`
	IsActive  bool      `json:"isActive" db:"is_active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// ClientRequest is the payload for creating or replacing a client.
type ClientRequest struct {
	UserID   int64  `json:"userId"`
	FullName string `json:"fullName"`
	Contact  string `json:"contact"`
	Address  string `json:"address"`
	IsActive *bool  `json:"isActive,omitempty"`
}
