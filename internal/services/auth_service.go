package services

import (
	"errors"

	"github.com/kavya410004/cultivating-connections/internal/auth"
	"github.com/kavya410004/cultivating-connections/internal/models"
	"github.com/kavya410004/cultivating-connections/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPhoneTaken         = errors.New("an account already exists for this phone number")
	ErrInvalidCredentials = errors.New("invalid phone number or password")
	ErrUnknownRole        = errors.New("unknown role")
	ErrAccountNotFound    = errors.New("account not found")
)

type AuthService struct {
	farmerRepo *repository.FarmerRepository
	buyerRepo  *repository.BuyerRepository
}

func NewAuthService(farmerRepo *repository.FarmerRepository, buyerRepo *repository.BuyerRepository) *AuthService {
	return &AuthService{
		farmerRepo: farmerRepo,
		buyerRepo:  buyerRepo,
	}
}

// RegisterFarmer creates a farmer account and returns the principal for the
// new session. The phone uniqueness constraint, not the pre-check, is the
// authoritative conflict signal.
func (s *AuthService) RegisterFarmer(name, phone, district, password, confirm string) (*auth.Principal, error) {
	if password != confirm {
		return nil, ErrPasswordMismatch
	}

	existing, err := s.farmerRepo.FindByPhone(phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPhoneTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	farmer := &models.Farmer{
		Name:     name,
		Phone:    phone,
		District: district,
		Password: string(hash),
	}
	if err := s.farmerRepo.Create(farmer); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPhoneTaken
		}
		return nil, err
	}

	return &auth.Principal{
		ID:    farmer.ID,
		Role:  auth.RoleFarmer,
		Name:  farmer.Name,
		Phone: farmer.Phone,
	}, nil
}

func (s *AuthService) RegisterBuyer(name, phone, password, confirm string) (*auth.Principal, error) {
	if password != confirm {
		return nil, ErrPasswordMismatch
	}

	existing, err := s.buyerRepo.FindByPhone(phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPhoneTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	buyer := &models.Buyer{
		Name:     name,
		Phone:    phone,
		Password: string(hash),
	}
	if err := s.buyerRepo.Create(buyer); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPhoneTaken
		}
		return nil, err
	}

	return &auth.Principal{
		ID:    buyer.ID,
		Role:  auth.RoleBuyer,
		Name:  buyer.Name,
		Phone: buyer.Phone,
	}, nil
}

// Login verifies credentials against the role's table. Unknown phone and
// wrong password both come back as ErrInvalidCredentials.
func (s *AuthService) Login(role, phone, password string) (*auth.Principal, error) {
	switch role {
	case auth.RoleFarmer:
		farmer, err := s.farmerRepo.FindByPhone(phone)
		if err != nil {
			return nil, err
		}
		if farmer == nil {
			return nil, ErrInvalidCredentials
		}
		if bcrypt.CompareHashAndPassword([]byte(farmer.Password), []byte(password)) != nil {
			return nil, ErrInvalidCredentials
		}
		return &auth.Principal{ID: farmer.ID, Role: auth.RoleFarmer, Name: farmer.Name, Phone: farmer.Phone}, nil
	case auth.RoleBuyer:
		buyer, err := s.buyerRepo.FindByPhone(phone)
		if err != nil {
			return nil, err
		}
		if buyer == nil {
			return nil, ErrInvalidCredentials
		}
		if bcrypt.CompareHashAndPassword([]byte(buyer.Password), []byte(password)) != nil {
			return nil, ErrInvalidCredentials
		}
		return &auth.Principal{ID: buyer.ID, Role: auth.RoleBuyer, Name: buyer.Name, Phone: buyer.Phone}, nil
	default:
		return nil, ErrUnknownRole
	}
}

// UpdateFarmerProfile applies a field-level partial update: blank inputs
// leave the stored value alone.
func (s *AuthService) UpdateFarmerProfile(id uint, name, phone, district string) (*auth.Principal, error) {
	farmer, err := s.farmerRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if farmer == nil {
		return nil, ErrAccountNotFound
	}

	if name != "" {
		farmer.Name = name
	}
	if phone != "" {
		farmer.Phone = phone
	}
	if district != "" {
		farmer.District = district
	}

	if err := s.farmerRepo.Update(farmer); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPhoneTaken
		}
		return nil, err
	}

	return &auth.Principal{ID: farmer.ID, Role: auth.RoleFarmer, Name: farmer.Name, Phone: farmer.Phone}, nil
}

func (s *AuthService) UpdateBuyerProfile(id uint, name, phone string) (*auth.Principal, error) {
	buyer, err := s.buyerRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if buyer == nil {
		return nil, ErrAccountNotFound
	}

	if name != "" {
		buyer.Name = name
	}
	if phone != "" {
		buyer.Phone = phone
	}

	if err := s.buyerRepo.Update(buyer); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPhoneTaken
		}
		return nil, err
	}

	return &auth.Principal{ID: buyer.ID, Role: auth.RoleBuyer, Name: buyer.Name, Phone: buyer.Phone}, nil
}

// ChangePassword verifies the current password before storing the new hash.
func (s *AuthService) ChangePassword(role string, id uint, current, newPassword, confirm string) error {
	if newPassword != confirm {
		return ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	switch role {
	case auth.RoleFarmer:
		farmer, err := s.farmerRepo.FindByID(id)
		if err != nil {
			return err
		}
		if farmer == nil {
			return ErrAccountNotFound
		}
		if bcrypt.CompareHashAndPassword([]byte(farmer.Password), []byte(current)) != nil {
			return ErrInvalidCredentials
		}
		farmer.Password = string(hash)
		return s.farmerRepo.Update(farmer)
	case auth.RoleBuyer:
		buyer, err := s.buyerRepo.FindByID(id)
		if err != nil {
			return err
		}
		if buyer == nil {
			return ErrAccountNotFound
		}
		if bcrypt.CompareHashAndPassword([]byte(buyer.Password), []byte(current)) != nil {
			return ErrInvalidCredentials
		}
		buyer.Password = string(hash)
		return s.buyerRepo.Update(buyer)
	default:
		return ErrUnknownRole
	}
}
