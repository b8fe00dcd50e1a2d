package services

import (
	"testing"

	"github.com/kavya410004/cultivating-connections/internal/database"
	"github.com/kavya410004/cultivating-connections/internal/images"
	"github.com/kavya410004/cultivating-connections/internal/models"
	"github.com/kavya410004/cultivating-connections/internal/repository"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type requestTestEnv struct {
	db             *gorm.DB
	cropService    *CropService
	requestService *RequestService
	farmer         *models.Farmer
	buyer          *models.Buyer
}

func setupRequestTestDB(t *testing.T) *requestTestEnv {
	db, err := database.Connect(":memory:")
	assert.NoError(t, err)

	err = database.Migrate(db)
	assert.NoError(t, err)

	store, err := images.NewStore(t.TempDir())
	assert.NoError(t, err)

	cropRepo := repository.NewCropRepository(db)
	requestRepo := repository.NewRequestRepository(db)

	farmer := &models.Farmer{Name: "Kavya", Phone: "9876543210", District: "Guntur", Password: "x"}
	assert.NoError(t, db.Create(farmer).Error)
	buyer := &models.Buyer{Name: "Bhavana", Phone: "9000000001", Password: "x"}
	assert.NoError(t, db.Create(buyer).Error)

	return &requestTestEnv{
		db:             db,
		cropService:    NewCropService(cropRepo, store, nil),
		requestService: NewRequestService(requestRepo, cropRepo, db),
		farmer:         farmer,
		buyer:          buyer,
	}
}

func TestRequestService_AcceptFlow(t *testing.T) {
	env := setupRequestTestDB(t)

	crop, err := env.cropService.ListCrop("Tomato", 100, 20.50, "", env.farmer.ID)
	assert.NoError(t, err)

	request, err := env.requestService.CreateRequest(crop.ID, 30, env.buyer.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.RequestPending, request.Status)

	err = env.requestService.Accept(request.ID, env.farmer.ID)
	assert.NoError(t, err)

	cropAfter, _ := env.cropService.GetCrop(crop.ID)
	assert.Equal(t, 70, cropAfter.Quantity)

	crops, err := env.cropService.CropsForFarmer(env.farmer.ID)
	assert.NoError(t, err)
	assert.Len(t, crops, 1)
	assert.Equal(t, 70, crops[0].Quantity)

	sales, err := env.requestService.SalesForFarmer(env.farmer.ID)
	assert.NoError(t, err)
	assert.Len(t, sales, 1)
	assert.Equal(t, "Tomato", sales[0].Crop.Name)
	assert.Equal(t, 30, sales[0].Quantity)
	assert.Equal(t, "Bhavana", sales[0].Buyer.Name)

	buyerRequests, err := env.requestService.RequestsForBuyer(env.buyer.ID)
	assert.NoError(t, err)
	assert.Len(t, buyerRequests, 1)
	assert.Equal(t, models.RequestAccepted, buyerRequests[0].Status)
}

func TestRequestService_CreateRequestValidation(t *testing.T) {
	env := setupRequestTestDB(t)

	crop, err := env.cropService.ListCrop("Tomato", 100, 20.50, "", env.farmer.ID)
	assert.NoError(t, err)

	_, err = env.requestService.CreateRequest(crop.ID, 0, env.buyer.ID)
	assert.Equal(t, ErrInvalidRequestQty, err)

	_, err = env.requestService.CreateRequest(crop.ID, -5, env.buyer.ID)
	assert.Equal(t, ErrInvalidRequestQty, err)

	_, err = env.requestService.CreateRequest(crop.ID, 101, env.buyer.ID)
	assert.Equal(t, ErrInsufficientStock, err)

	_, err = env.requestService.CreateRequest(999, 10, env.buyer.ID)
	assert.Equal(t, ErrCropNotFound, err)

	var count int64
	env.db.Model(&models.Request{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRequestService_AcceptInsufficientStock(t *testing.T) {
	env := setupRequestTestDB(t)

	crop, err := env.cropService.ListCrop("Tomato", 100, 20.50, "", env.farmer.ID)
	assert.NoError(t, err)

	request, err := env.requestService.CreateRequest(crop.ID, 30, env.buyer.ID)
	assert.NoError(t, err)

	// Farmer reconciles an off-platform sale before answering.
	updated, err := env.cropService.AdjustQuantity(crop.ID, 10)
	assert.NoError(t, err)
	assert.True(t, updated)

	err = env.requestService.Accept(request.ID, env.farmer.ID)
	assert.Equal(t, ErrInsufficientStock, err)

	cropAfter, _ := env.cropService.GetCrop(crop.ID)
	assert.Equal(t, 10, cropAfter.Quantity)

	requests, _ := env.requestService.PendingForCrop(crop.ID)
	assert.Len(t, requests, 1)
}

func TestRequestService_StatusMonotonic(t *testing.T) {
	env := setupRequestTestDB(t)

	crop, err := env.cropService.ListCrop("Tomato", 100, 20.50, "", env.farmer.ID)
	assert.NoError(t, err)

	request, err := env.requestService.CreateRequest(crop.ID, 30, env.buyer.ID)
	assert.NoError(t, err)

	err = env.requestService.Accept(request.ID, env.farmer.ID)
	assert.NoError(t, err)

	err = env.requestService.Accept(request.ID, env.farmer.ID)
	assert.Equal(t, ErrRequestAlreadyDone, err)
	err = env.requestService.Reject(request.ID, env.farmer.ID)
	assert.Equal(t, ErrRequestAlreadyDone, err)

	// The double accept must not decrement twice.
	cropAfter, _ := env.cropService.GetCrop(crop.ID)
	assert.Equal(t, 70, cropAfter.Quantity)
}

func TestRequestService_Reject(t *testing.T) {
	env := setupRequestTestDB(t)

	crop, err := env.cropService.ListCrop("Tomato", 100, 20.50, "", env.farmer.ID)
	assert.NoError(t, err)

	request, err := env.requestService.CreateRequest(crop.ID, 30, env.buyer.ID)
	assert.NoError(t, err)

	err = env.requestService.Reject(request.ID, env.farmer.ID)
	assert.NoError(t, err)

	cropAfter, _ := env.cropService.GetCrop(crop.ID)
	assert.Equal(t, 100, cropAfter.Quantity)

	buyerRequests, _ := env.requestService.RequestsForBuyer(env.buyer.ID)
	assert.Len(t, buyerRequests, 1)
	assert.Equal(t, models.RequestRejected, buyerRequests[0].Status)
}

func TestRequestService_AcceptWrongFarmer(t *testing.T) {
	env := setupRequestTestDB(t)

	other := &models.Farmer{Name: "Other", Phone: "9111111111", Password: "x"}
	assert.NoError(t, env.db.Create(other).Error)

	crop, err := env.cropService.ListCrop("Tomato", 100, 20.50, "", env.farmer.ID)
	assert.NoError(t, err)

	request, err := env.requestService.CreateRequest(crop.ID, 30, env.buyer.ID)
	assert.NoError(t, err)

	err = env.requestService.Accept(request.ID, other.ID)
	assert.Equal(t, ErrNotRequestRecipient, err)
	err = env.requestService.Reject(request.ID, other.ID)
	assert.Equal(t, ErrNotRequestRecipient, err)

	cropAfter, _ := env.cropService.GetCrop(crop.ID)
	assert.Equal(t, 100, cropAfter.Quantity)
}

func TestRequestService_AcceptMissingRequest(t *testing.T) {
	env := setupRequestTestDB(t)

	err := env.requestService.Accept(999, env.farmer.ID)
	assert.Equal(t, ErrRequestNotFound, err)
}

func TestRequestService_PendingForCropOrdering(t *testing.T) {
	env := setupRequestTestDB(t)

	crop, err := env.cropService.ListCrop("Tomato", 100, 20.50, "", env.farmer.ID)
	assert.NoError(t, err)

	first, err := env.requestService.CreateRequest(crop.ID, 10, env.buyer.ID)
	assert.NoError(t, err)
	second, err := env.requestService.CreateRequest(crop.ID, 20, env.buyer.ID)
	assert.NoError(t, err)

	requests, err := env.requestService.PendingForCrop(crop.ID)
	assert.NoError(t, err)
	assert.Len(t, requests, 2)
	assert.Equal(t, second.ID, requests[0].ID)
	assert.Equal(t, first.ID, requests[1].ID)
	assert.Equal(t, "Bhavana", requests[0].Buyer.Name)
}

func TestRequestService_PendingForFarmer(t *testing.T) {
	env := setupRequestTestDB(t)

	tomato, err := env.cropService.ListCrop("Tomato", 100, 20.50, "", env.farmer.ID)
	assert.NoError(t, err)
	onion, err := env.cropService.ListCrop("Onion", 50, 15, "", env.farmer.ID)
	assert.NoError(t, err)

	_, err = env.requestService.CreateRequest(tomato.ID, 10, env.buyer.ID)
	assert.NoError(t, err)
	_, err = env.requestService.CreateRequest(onion.ID, 20, env.buyer.ID)
	assert.NoError(t, err)

	requests, err := env.requestService.PendingForFarmer(env.farmer.ID)
	assert.NoError(t, err)
	assert.Len(t, requests, 2)
}
