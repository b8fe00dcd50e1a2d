package models

import (
	"gorm.io/gorm"
)

type Farmer struct {
	gorm.Model
	Name     string `gorm:"not null" json:"name"`
	Phone    string `gorm:"uniqueIndex;not null" json:"phone"`
	District string `gorm:"" json:"district,omitempty"`
	Password string `gorm:"not null" json:"-"`
	Crops    []Crop `gorm:"foreignKey:FarmerID" json:"-"`
}
