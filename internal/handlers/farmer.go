package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kavya410004/cultivating-connections/internal/auth"
	"github.com/kavya410004/cultivating-connections/internal/images"
	"github.com/kavya410004/cultivating-connections/internal/middleware"
	"github.com/kavya410004/cultivating-connections/internal/services"
)

type FarmerHandler struct {
	cropService    *services.CropService
	requestService *services.RequestService
	authService    *services.AuthService
	store          *images.Store
}

func NewFarmerHandler(
	cropService *services.CropService,
	requestService *services.RequestService,
	authService *services.AuthService,
	store *images.Store,
) *FarmerHandler {
	return &FarmerHandler{
		cropService:    cropService,
		requestService: requestService,
		authService:    authService,
		store:          store,
	}
}

func (h *FarmerHandler) Home(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	crops, err := h.cropService.CropsForFarmer(principal.ID)
	if err != nil {
		renderInternalError(c, err)
		return
	}

	c.HTML(http.StatusOK, "farmer-home.html", gin.H{
		"Farmer": principal,
		"Crops":  crops,
	})
}

func (h *FarmerHandler) SoldCrops(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	sales, err := h.requestService.SalesForFarmer(principal.ID)
	if err != nil {
		renderInternalError(c, err)
		return
	}

	c.HTML(http.StatusOK, "sold-crops.html", gin.H{
		"Farmer": principal,
		"Sales":  sales,
	})
}

// CropDetails shows one listing with its open requests.
func (h *FarmerHandler) CropDetails(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	cropID, err := strconv.ParseUint(c.Param("cropId"), 10, 32)
	if err != nil {
		renderError(c, http.StatusOK, "Crop not found")
		return
	}

	crop, err := h.cropService.GetCrop(uint(cropID))
	if err != nil {
		renderInternalError(c, err)
		return
	}
	if crop == nil || crop.FarmerID != principal.ID {
		renderError(c, http.StatusOK, "Crop not found")
		return
	}

	requests, err := h.requestService.PendingForCrop(crop.ID)
	if err != nil {
		renderInternalError(c, err)
		return
	}

	c.HTML(http.StatusOK, "crop-details.html", gin.H{
		"Farmer":   principal,
		"Crop":     crop,
		"Requests": requests,
	})
}

func (h *FarmerHandler) AddCrop(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	quantity, err := strconv.Atoi(c.PostForm("quantity"))
	if err != nil || quantity < 0 {
		renderError(c, http.StatusOK, "Quantity must be a non-negative whole number")
		return
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price <= 0 {
		renderError(c, http.StatusOK, "Price must be a positive number")
		return
	}

	var imagePath string
	if file, err := c.FormFile("image"); err == nil {
		src, err := file.Open()
		if err != nil {
			renderInternalError(c, err)
			return
		}
		imagePath, err = h.store.Save(src, file.Filename)
		src.Close()
		if err != nil {
			renderInternalError(c, err)
			return
		}
	}

	_, err = h.cropService.ListCrop(c.PostForm("name"), quantity, price, imagePath, principal.ID)
	if err != nil {
		switch err {
		case services.ErrInvalidQuantity, services.ErrInvalidPrice:
			renderError(c, http.StatusOK, err.Error())
		default:
			renderInternalError(c, err)
		}
		return
	}

	c.Redirect(http.StatusFound, "/farmer-home")
}

// EditQuantity overwrites a crop's stock, for sales made off the platform.
func (h *FarmerHandler) EditQuantity(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	cropID, err := strconv.ParseUint(c.Param("cropId"), 10, 32)
	if err != nil {
		renderError(c, http.StatusOK, "Crop not found")
		return
	}

	quantity, err := strconv.Atoi(c.PostForm("quantity"))
	if err != nil {
		renderError(c, http.StatusOK, "Quantity must be a whole number")
		return
	}

	crop, err := h.cropService.GetCrop(uint(cropID))
	if err != nil {
		renderInternalError(c, err)
		return
	}
	if crop == nil || crop.FarmerID != principal.ID {
		renderError(c, http.StatusOK, "Crop not found")
		return
	}

	updated, err := h.cropService.AdjustQuantity(crop.ID, quantity)
	if err != nil {
		if err == services.ErrInvalidQuantity {
			renderError(c, http.StatusOK, err.Error())
			return
		}
		renderInternalError(c, err)
		return
	}
	if !updated {
		renderError(c, http.StatusOK, "Crop not found")
		return
	}

	c.Redirect(http.StatusFound, "/farmer-home")
}

func (h *FarmerHandler) AcceptRequest(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	requestID, err := strconv.ParseUint(c.Param("requestId"), 10, 32)
	if err != nil {
		renderError(c, http.StatusOK, "Request not found")
		return
	}

	if err := h.requestService.Accept(uint(requestID), principal.ID); err != nil {
		switch err {
		case services.ErrRequestNotFound, services.ErrNotRequestRecipient:
			renderError(c, http.StatusOK, "Request not found")
		case services.ErrRequestAlreadyDone:
			renderError(c, http.StatusOK, "This request has already been answered")
		case services.ErrInsufficientStock:
			renderError(c, http.StatusOK, "Not enough stock left to accept this request")
		default:
			renderInternalError(c, err)
		}
		return
	}

	c.Redirect(http.StatusFound, "/farmer-home")
}

func (h *FarmerHandler) RejectRequest(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	requestID, err := strconv.ParseUint(c.Param("requestId"), 10, 32)
	if err != nil {
		renderError(c, http.StatusOK, "Request not found")
		return
	}

	if err := h.requestService.Reject(uint(requestID), principal.ID); err != nil {
		switch err {
		case services.ErrRequestNotFound, services.ErrNotRequestRecipient:
			renderError(c, http.StatusOK, "Request not found")
		case services.ErrRequestAlreadyDone:
			renderError(c, http.StatusOK, "This request has already been answered")
		default:
			renderInternalError(c, err)
		}
		return
	}

	c.Redirect(http.StatusFound, "/farmer-home")
}

func (h *FarmerHandler) Settings(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	c.HTML(http.StatusOK, "settings.html", gin.H{"Farmer": principal})
}

func (h *FarmerHandler) EditProfile(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	updated, err := h.authService.UpdateFarmerProfile(
		principal.ID,
		c.PostForm("name"),
		c.PostForm("phone"),
		c.PostForm("district"),
	)
	if err != nil {
		switch err {
		case services.ErrPhoneTaken:
			c.HTML(http.StatusOK, "settings.html", gin.H{"Farmer": principal, "Error": err.Error()})
		default:
			renderInternalError(c, err)
		}
		return
	}

	if err := auth.SaveToSession(c, *updated); err != nil {
		renderInternalError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/settings")
}

func (h *FarmerHandler) ChangePassword(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	err := h.authService.ChangePassword(
		auth.RoleFarmer,
		principal.ID,
		c.PostForm("current_password"),
		c.PostForm("password"),
		c.PostForm("confirm_password"),
	)
	if err != nil {
		switch err {
		case services.ErrPasswordMismatch, services.ErrInvalidCredentials:
			c.HTML(http.StatusOK, "settings.html", gin.H{"Farmer": principal, "Error": err.Error()})
		default:
			renderInternalError(c, err)
		}
		return
	}

	c.Redirect(http.StatusFound, "/settings")
}
