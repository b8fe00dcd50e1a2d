package models

import (
	"time"

	"gorm.io/gorm"
)

// APIToken backs the read-only JSON API. OwnerID is a farmer or buyer id
// depending on Role.
type APIToken struct {
	gorm.Model
	OwnerID   uint      `gorm:"not null;index" json:"owner_id"`
	Role      string    `gorm:"not null" json:"role"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`
	Label     string    `gorm:"" json:"label,omitempty"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
}
