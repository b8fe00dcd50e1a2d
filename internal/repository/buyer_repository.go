package repository

import (
	"errors"

	"github.com/kavya410004/cultivating-connections/internal/models"
	"gorm.io/gorm"
)

type BuyerRepository struct {
	db *gorm.DB
}

func NewBuyerRepository(db *gorm.DB) *BuyerRepository {
	return &BuyerRepository{db: db}
}

func (r *BuyerRepository) Create(buyer *models.Buyer) error {
	return r.db.Create(buyer).Error
}

func (r *BuyerRepository) FindByPhone(phone string) (*models.Buyer, error) {
	var buyer models.Buyer
	err := r.db.Where("phone = ?", phone).First(&buyer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &buyer, nil
}

func (r *BuyerRepository) FindByID(id uint) (*models.Buyer, error) {
	var buyer models.Buyer
	err := r.db.First(&buyer, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &buyer, nil
}

func (r *BuyerRepository) Update(buyer *models.Buyer) error {
	return r.db.Save(buyer).Error
}
