package repository

import (
	"errors"

	"github.com/kavya410004/cultivating-connections/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Create(tx *gorm.DB, request *models.Request) error {
	return tx.Create(request).Error
}

func (r *RequestRepository) FindByID(id uint) (*models.Request, error) {
	var request models.Request
	err := r.db.Preload("Crop").Preload("Buyer").First(&request, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *RequestRepository) FindByIDForUpdate(tx *gorm.DB, id uint) (*models.Request, error) {
	var request models.Request
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&request, id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// FindPendingByCrop lists a crop's open requests with the requesting buyer
// preloaded, most recent first.
func (r *RequestRepository) FindPendingByCrop(cropID uint) ([]models.Request, error) {
	var requests []models.Request
	err := r.db.
		Where("crop_id = ? AND status = ?", cropID, models.RequestPending).
		Preload("Buyer").
		Order("id DESC").
		Find(&requests).Error
	return requests, err
}

// FindPendingByFarmer lists open requests across all of a farmer's crops.
func (r *RequestRepository) FindPendingByFarmer(farmerID uint) ([]models.Request, error) {
	var requests []models.Request
	err := r.db.
		Joins("JOIN crops ON crops.id = requests.crop_id").
		Where("crops.farmer_id = ? AND requests.status = ?", farmerID, models.RequestPending).
		Preload("Crop").
		Preload("Buyer").
		Order("requests.id DESC").
		Find(&requests).Error
	return requests, err
}

// FindAcceptedByFarmer lists completed sales for a farmer, joined with the
// buyer and crop for the sold-crops page.
func (r *RequestRepository) FindAcceptedByFarmer(farmerID uint) ([]models.Request, error) {
	var requests []models.Request
	err := r.db.
		Joins("JOIN crops ON crops.id = requests.crop_id").
		Where("crops.farmer_id = ? AND requests.status = ?", farmerID, models.RequestAccepted).
		Preload("Crop").
		Preload("Buyer").
		Order("requests.id DESC").
		Find(&requests).Error
	return requests, err
}

func (r *RequestRepository) FindByBuyer(buyerID uint) ([]models.Request, error) {
	var requests []models.Request
	err := r.db.
		Where("buyer_id = ?", buyerID).
		Preload("Crop").
		Order("id DESC").
		Find(&requests).Error
	return requests, err
}

func (r *RequestRepository) UpdateInTx(tx *gorm.DB, request *models.Request) error {
	return tx.Save(request).Error
}
