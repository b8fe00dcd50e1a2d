package repository

import (
	"errors"

	"github.com/kavya410004/cultivating-connections/internal/models"
	"gorm.io/gorm"
)

type FarmerRepository struct {
	db *gorm.DB
}

func NewFarmerRepository(db *gorm.DB) *FarmerRepository {
	return &FarmerRepository{db: db}
}

func (r *FarmerRepository) Create(farmer *models.Farmer) error {
	return r.db.Create(farmer).Error
}

func (r *FarmerRepository) FindByPhone(phone string) (*models.Farmer, error) {
	var farmer models.Farmer
	err := r.db.Where("phone = ?", phone).First(&farmer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &farmer, nil
}

func (r *FarmerRepository) FindByID(id uint) (*models.Farmer, error) {
	var farmer models.Farmer
	err := r.db.First(&farmer, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &farmer, nil
}

func (r *FarmerRepository) Update(farmer *models.Farmer) error {
	return r.db.Save(farmer).Error
}
