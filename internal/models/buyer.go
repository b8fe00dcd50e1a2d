package models

import (
	"gorm.io/gorm"
)

type Buyer struct {
	gorm.Model
	Name     string `gorm:"not null" json:"name"`
	Phone    string `gorm:"uniqueIndex;not null" json:"phone"`
	Password string `gorm:"not null" json:"-"`
}
