package domain

import (
	"encoding/json"
	"time"
)

type Barber struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Name      string          `json:"name"`
	Specialty string          `json:"specialty,omitempty"`
	Bio       string          `json:"bio,omitempty"`
	AvatarURL string          `json:"avatar_url,omitempty"`
	Schedule  json.RawMessage `json:"schedule,omitempty" gorm:"type:json"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CatalogService is an item on the shop's service menu.
type CatalogService struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Duration  int       `json:"duration"` // minutes
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
