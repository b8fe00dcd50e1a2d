package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kavya410004/cultivating-connections/internal/auth"
	"github.com/kavya410004/cultivating-connections/internal/middleware"
	"github.com/kavya410004/cultivating-connections/internal/services"
)

// APIHandler serves the read-only JSON API so a farmer's stock system or a
// buyer's purchasing tool can poll without a browser session.
type APIHandler struct {
	cropService    *services.CropService
	requestService *services.RequestService
	tokenService   *services.TokenService
}

func NewAPIHandler(
	cropService *services.CropService,
	requestService *services.RequestService,
	tokenService *services.TokenService,
) *APIHandler {
	return &APIHandler{
		cropService:    cropService,
		requestService: requestService,
		tokenService:   tokenService,
	}
}

type CropResponse struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	ListedOn string  `json:"listed_on"`
}

type RequestResponse struct {
	ID       uint   `json:"id"`
	CropName string `json:"crop_name"`
	Quantity int    `json:"quantity"`
	Status   string `json:"status"`
}

// Crops returns the caller's active listings (farmer tokens only).
func (h *APIHandler) Crops(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	if !principal.IsFarmer() {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "farmer token required"})
		return
	}

	crops, err := h.cropService.CropsForFarmer(principal.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	response := make([]CropResponse, len(crops))
	for i, crop := range crops {
		response[i] = CropResponse{
			ID:       crop.ID,
			Name:     crop.Name,
			Price:    crop.Price,
			Quantity: crop.Quantity,
			ListedOn: crop.ListedOn.Format(time.RFC3339),
		}
	}

	c.JSON(http.StatusOK, response)
}

// Requests returns pending requests across the farmer's crops, or the
// buyer's own requests, depending on the token's role.
func (h *APIHandler) Requests(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	var err error
	var requests []RequestResponse

	switch principal.Role {
	case auth.RoleFarmer:
		pending, ferr := h.requestService.PendingForFarmer(principal.ID)
		err = ferr
		for _, r := range pending {
			requests = append(requests, RequestResponse{ID: r.ID, CropName: r.Crop.Name, Quantity: r.Quantity, Status: r.Status})
		}
	case auth.RoleBuyer:
		own, berr := h.requestService.RequestsForBuyer(principal.ID)
		err = berr
		for _, r := range own {
			requests = append(requests, RequestResponse{ID: r.ID, CropName: r.Crop.Name, Quantity: r.Quantity, Status: r.Status})
		}
	default:
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "unknown token role"})
		return
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, requests)
}

type CreateTokenRequest struct {
	Label     string `json:"label"`
	ExpiresIn string `json:"expires_in" binding:"required"`
}

type CreateTokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

type TokenListResponse struct {
	ID        uint   `json:"id"`
	Label     string `json:"label,omitempty"`
	ExpiresAt string `json:"expires_at"`
	CreatedAt string `json:"created_at"`
}

// CreateToken mints an API token for the session's principal.
func (h *APIHandler) CreateToken(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	var req CreateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return
	}

	duration, err := time.ParseDuration(req.ExpiresIn)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid expires_in format, use a duration like 24h or 720h"})
		return
	}
	if duration <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "expires_in must be positive"})
		return
	}

	token, err := h.tokenService.Generate(principal.ID, principal.Role, req.Label, duration)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, CreateTokenResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(duration).Format(time.RFC3339),
	})
}

func (h *APIHandler) ListTokens(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	tokens, err := h.tokenService.List(principal.ID, principal.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	response := make([]TokenListResponse, len(tokens))
	for i, token := range tokens {
		response[i] = TokenListResponse{
			ID:        token.ID,
			Label:     token.Label,
			ExpiresAt: token.ExpiresAt.Format(time.RFC3339),
			CreatedAt: token.CreatedAt.Format(time.RFC3339),
		}
	}

	c.JSON(http.StatusOK, response)
}

func (h *APIHandler) DeleteToken(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid token id"})
		return
	}

	if err := h.tokenService.Delete(uint(id), principal.ID, principal.Role); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "token deleted"})
}
