package models

import (
	"gorm.io/gorm"
)

// Request statuses. A request is mutated exactly once: Pending moves to
// Accepted or Rejected and never back.
const (
	RequestPending  = "Pending"
	RequestAccepted = "Accepted"
	RequestRejected = "Rejected"
)

type Request struct {
	gorm.Model
	Quantity int    `gorm:"not null" json:"quantity"`
	Status   string `gorm:"not null;default:Pending;index" json:"status"`
	CropID   uint   `gorm:"not null;index" json:"crop_id"`
	Crop     Crop   `gorm:"foreignKey:CropID" json:"crop,omitempty"`
	BuyerID  uint   `gorm:"not null;index" json:"buyer_id"`
	Buyer    Buyer  `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
}
