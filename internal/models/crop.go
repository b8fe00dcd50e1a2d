package models

import (
	"time"

	"gorm.io/gorm"
)

type Crop struct {
	gorm.Model
	Name      string    `gorm:"not null;index" json:"name"`
	Price     float64   `gorm:"not null" json:"price"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	ListedOn  time.Time `gorm:"autoCreateTime" json:"listed_on"`
	ImagePath string    `gorm:"" json:"image_path,omitempty"`
	FarmerID  uint      `gorm:"not null;index" json:"farmer_id"`
	Farmer    Farmer    `gorm:"foreignKey:FarmerID" json:"farmer,omitempty"`
}
