package services

import (
	"errors"
	"log"

	"github.com/kavya410004/cultivating-connections/internal/images"
	"github.com/kavya410004/cultivating-connections/internal/models"
	"github.com/kavya410004/cultivating-connections/internal/repository"
)

var (
	ErrCropNotFound    = errors.New("crop not found")
	ErrInvalidQuantity = errors.New("quantity must not be negative")
	ErrInvalidPrice    = errors.New("price must be positive")
)

type CropService struct {
	cropRepo  *repository.CropRepository
	processor images.Processor
	store     *images.Store
}

func NewCropService(cropRepo *repository.CropRepository, store *images.Store, processor images.Processor) *CropService {
	return &CropService{
		cropRepo:  cropRepo,
		processor: processor,
		store:     store,
	}
}

// ListCrop creates a new listing. Image post-processing runs after the row is
// persisted; if it fails the crop still stands with the raw upload, and the
// failure is only logged.
func (s *CropService) ListCrop(name string, quantity int, price float64, imagePath string, farmerID uint) (*models.Crop, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	if price <= 0 {
		return nil, ErrInvalidPrice
	}

	crop := &models.Crop{
		Name:      name,
		Price:     price,
		Quantity:  quantity,
		ImagePath: imagePath,
		FarmerID:  farmerID,
	}
	if err := s.cropRepo.Create(crop); err != nil {
		return nil, err
	}

	if imagePath != "" && s.processor != nil {
		if err := s.processor.Process(s.store.Path(imagePath)); err != nil {
			log.Printf("image post-processing failed for crop %d (%s): %v", crop.ID, imagePath, err)
		}
	}

	return crop, nil
}

// CropsForFarmer returns the farmer's active listings, newest first. Sold-out
// crops stay visible while a pending request needs an answer.
func (s *CropService) CropsForFarmer(farmerID uint) ([]models.Crop, error) {
	return s.cropRepo.FindActiveByFarmer(farmerID)
}

func (s *CropService) GetCrop(id uint) (*models.Crop, error) {
	return s.cropRepo.FindByID(id)
}

// Search matches crop names case-insensitively among in-stock listings.
// Empty text matches everything.
func (s *CropService) Search(text string) ([]models.Crop, error) {
	return s.cropRepo.Search(text)
}

// AdjustQuantity overwrites a crop's stock, for farmers reconciling sales
// made off the platform. Reports whether the crop existed.
func (s *CropService) AdjustQuantity(id uint, quantity int) (bool, error) {
	if quantity < 0 {
		return false, ErrInvalidQuantity
	}
	return s.cropRepo.UpdateQuantity(id, quantity)
}

// SellerContact returns the listing farmer's name and phone so a buyer can
// follow up on a request.
func (s *CropService) SellerContact(cropID uint) (*models.Farmer, error) {
	return s.cropRepo.FindOwner(cropID)
}
