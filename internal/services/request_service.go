package services

import (
	"errors"

	"github.com/kavya410004/cultivating-connections/internal/models"
	"github.com/kavya410004/cultivating-connections/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrRequestNotFound     = errors.New("request not found")
	ErrRequestAlreadyDone  = errors.New("request has already been answered")
	ErrInvalidRequestQty   = errors.New("requested quantity must be positive")
	ErrInsufficientStock   = errors.New("not enough stock to cover the request")
	ErrNotRequestRecipient = errors.New("request belongs to another farmer's crop")
)

type RequestService struct {
	requestRepo *repository.RequestRepository
	cropRepo    *repository.CropRepository
	db          *gorm.DB
}

func NewRequestService(requestRepo *repository.RequestRepository, cropRepo *repository.CropRepository, db *gorm.DB) *RequestService {
	return &RequestService{
		requestRepo: requestRepo,
		cropRepo:    cropRepo,
		db:          db,
	}
}

// CreateRequest inserts a pending purchase request. The stock check runs
// against a locked crop row so two concurrent requests cannot both validate
// against the same stale quantity.
func (s *RequestService) CreateRequest(cropID uint, quantity int, buyerID uint) (*models.Request, error) {
	if quantity <= 0 {
		return nil, ErrInvalidRequestQty
	}

	var request *models.Request
	err := s.db.Transaction(func(tx *gorm.DB) error {
		crop, err := s.cropRepo.FindByIDForUpdate(tx, cropID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCropNotFound
			}
			return err
		}

		if quantity > crop.Quantity {
			return ErrInsufficientStock
		}

		request = &models.Request{
			Quantity: quantity,
			Status:   models.RequestPending,
			CropID:   crop.ID,
			BuyerID:  buyerID,
		}
		return s.requestRepo.Create(tx, request)
	})
	if err != nil {
		return nil, err
	}

	return request, nil
}

// Accept decrements the crop's stock and marks the request accepted in a
// single transaction, with both rows locked. farmerID must own the crop.
// Accepting more than the current stock fails instead of driving the
// quantity negative.
func (s *RequestService) Accept(requestID, farmerID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		request, err := s.requestRepo.FindByIDForUpdate(tx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}

		if request.Status != models.RequestPending {
			return ErrRequestAlreadyDone
		}

		crop, err := s.cropRepo.FindByIDForUpdate(tx, request.CropID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCropNotFound
			}
			return err
		}

		if crop.FarmerID != farmerID {
			return ErrNotRequestRecipient
		}

		if request.Quantity > crop.Quantity {
			return ErrInsufficientStock
		}

		crop.Quantity -= request.Quantity
		if err := s.cropRepo.UpdateInTx(tx, crop); err != nil {
			return err
		}

		request.Status = models.RequestAccepted
		return s.requestRepo.UpdateInTx(tx, request)
	})
}

// Reject marks a pending request rejected. Stock is untouched.
func (s *RequestService) Reject(requestID, farmerID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		request, err := s.requestRepo.FindByIDForUpdate(tx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}

		if request.Status != models.RequestPending {
			return ErrRequestAlreadyDone
		}

		crop, err := s.cropRepo.FindByIDForUpdate(tx, request.CropID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCropNotFound
			}
			return err
		}
		if crop.FarmerID != farmerID {
			return ErrNotRequestRecipient
		}

		request.Status = models.RequestRejected
		return s.requestRepo.UpdateInTx(tx, request)
	})
}

// PendingForCrop lists a crop's open requests, most recent first.
func (s *RequestService) PendingForCrop(cropID uint) ([]models.Request, error) {
	return s.requestRepo.FindPendingByCrop(cropID)
}

// PendingForFarmer lists open requests across all of a farmer's crops.
func (s *RequestService) PendingForFarmer(farmerID uint) ([]models.Request, error) {
	return s.requestRepo.FindPendingByFarmer(farmerID)
}

// SalesForFarmer lists the farmer's accepted requests with buyer and crop
// details, for the sold-crops page.
func (s *RequestService) SalesForFarmer(farmerID uint) ([]models.Request, error) {
	return s.requestRepo.FindAcceptedByFarmer(farmerID)
}

// RequestsForBuyer lists every request the buyer has made, any status.
func (s *RequestService) RequestsForBuyer(buyerID uint) ([]models.Request, error) {
	return s.requestRepo.FindByBuyer(buyerID)
}
