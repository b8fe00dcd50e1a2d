package repository

import (
	"errors"

	"github.com/kavya410004/cultivating-connections/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CropRepository struct {
	db *gorm.DB
}

func NewCropRepository(db *gorm.DB) *CropRepository {
	return &CropRepository{db: db}
}

func (r *CropRepository) Create(crop *models.Crop) error {
	return r.db.Create(crop).Error
}

func (r *CropRepository) FindByID(id uint) (*models.Crop, error) {
	var crop models.Crop
	err := r.db.First(&crop, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &crop, nil
}

func (r *CropRepository) FindByIDForUpdate(tx *gorm.DB, id uint) (*models.Crop, error) {
	var crop models.Crop
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&crop, id).Error
	if err != nil {
		return nil, err
	}
	return &crop, nil
}

// FindActiveByFarmer lists a farmer's crops that are still in play: stock
// remaining, or sold out but with a pending request the farmer has to answer.
func (r *CropRepository) FindActiveByFarmer(farmerID uint) ([]models.Crop, error) {
	var crops []models.Crop
	err := r.db.
		Where("farmer_id = ?", farmerID).
		Where("quantity > 0 OR EXISTS (SELECT 1 FROM requests WHERE requests.crop_id = crops.id AND requests.status = ? AND requests.deleted_at IS NULL)", models.RequestPending).
		Order("listed_on DESC").
		Find(&crops).Error
	return crops, err
}

// Search matches crop names case-insensitively; empty text matches every
// in-stock crop.
func (r *CropRepository) Search(text string) ([]models.Crop, error) {
	var crops []models.Crop
	db := r.db.Where("quantity > 0")

	if text != "" {
		db = db.Where("LOWER(name) LIKE LOWER(?)", "%"+text+"%")
	}

	err := db.Order("listed_on DESC").Find(&crops).Error
	return crops, err
}

// UpdateQuantity overwrites a crop's quantity and reports whether a row was
// touched.
func (r *CropRepository) UpdateQuantity(id uint, quantity int) (bool, error) {
	result := r.db.Model(&models.Crop{}).Where("id = ?", id).Update("quantity", quantity)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *CropRepository) UpdateInTx(tx *gorm.DB, crop *models.Crop) error {
	return tx.Save(crop).Error
}

// FindOwner returns the farmer who listed the crop, for buyer contact pages.
func (r *CropRepository) FindOwner(cropID uint) (*models.Farmer, error) {
	var farmer models.Farmer
	err := r.db.
		Joins("JOIN crops ON crops.farmer_id = farmers.id").
		Where("crops.id = ?", cropID).
		First(&farmer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &farmer, nil
}
