package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kavya410004/cultivating-connections/internal/auth"
	"github.com/kavya410004/cultivating-connections/internal/middleware"
	"github.com/kavya410004/cultivating-connections/internal/services"
)

type BuyerHandler struct {
	cropService    *services.CropService
	requestService *services.RequestService
	authService    *services.AuthService
}

func NewBuyerHandler(
	cropService *services.CropService,
	requestService *services.RequestService,
	authService *services.AuthService,
) *BuyerHandler {
	return &BuyerHandler{
		cropService:    cropService,
		requestService: requestService,
		authService:    authService,
	}
}

// Home is public; it personalizes when a buyer session exists.
func (h *BuyerHandler) Home(c *gin.Context) {
	crops, err := h.cropService.Search("")
	if err != nil {
		renderInternalError(c, err)
		return
	}

	data := gin.H{"Crops": crops, "Query": ""}
	if principal, ok := middleware.GetPrincipal(c); ok && principal.IsBuyer() {
		data["Buyer"] = principal
	}

	c.HTML(http.StatusOK, "buyer-home.html", data)
}

// Search is public; empty text matches every in-stock crop.
func (h *BuyerHandler) Search(c *gin.Context) {
	query := c.PostForm("query")

	crops, err := h.cropService.Search(query)
	if err != nil {
		renderInternalError(c, err)
		return
	}

	data := gin.H{"Crops": crops, "Query": query}
	if principal, ok := middleware.GetPrincipal(c); ok && principal.IsBuyer() {
		data["Buyer"] = principal
	}

	c.HTML(http.StatusOK, "buyer-home.html", data)
}

func (h *BuyerHandler) Requests(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	requests, err := h.requestService.RequestsForBuyer(principal.ID)
	if err != nil {
		renderInternalError(c, err)
		return
	}

	c.HTML(http.StatusOK, "buyer-requests.html", gin.H{
		"Buyer":    principal,
		"Requests": requests,
	})
}

func (h *BuyerHandler) SendRequest(c *gin.Context) {
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

	_, err = h.requestService.CreateRequest(uint(cropID), quantity, principal.ID)
	if err != nil {
		switch err {
		case services.ErrCropNotFound:
			renderError(c, http.StatusOK, "Crop not found")
		case services.ErrInvalidRequestQty:
			renderError(c, http.StatusOK, "Requested quantity must be positive")
		case services.ErrInsufficientStock:
			renderError(c, http.StatusOK, "Requested quantity exceeds the available stock")
		default:
			renderInternalError(c, err)
		}
		return
	}

	c.Redirect(http.StatusFound, "/buyer-requests")
}

// Connect shows the listing farmer's contact details.
func (h *BuyerHandler) Connect(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	cropID, err := strconv.ParseUint(c.Param("cropId"), 10, 32)
	if err != nil {
		renderError(c, http.StatusOK, "Crop not found")
		return
	}

	farmer, err := h.cropService.SellerContact(uint(cropID))
	if err != nil {
		renderInternalError(c, err)
		return
	}
	if farmer == nil {
		renderError(c, http.StatusOK, "Crop not found")
		return
	}

	c.HTML(http.StatusOK, "connect.html", gin.H{
		"Buyer":  principal,
		"Seller": farmer,
	})
}

func (h *BuyerHandler) Settings(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	c.HTML(http.StatusOK, "buyer-settings.html", gin.H{"Buyer": principal})
}

func (h *BuyerHandler) EditProfile(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	updated, err := h.authService.UpdateBuyerProfile(principal.ID, c.PostForm("name"), c.PostForm("phone"))
	if err != nil {
		switch err {
		case services.ErrPhoneTaken:
			c.HTML(http.StatusOK, "buyer-settings.html", gin.H{"Buyer": principal, "Error": err.Error()})
		default:
			renderInternalError(c, err)
		}
		return
	}

	if err := auth.SaveToSession(c, *updated); err != nil {
		renderInternalError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/buyer-settings")
}

func (h *BuyerHandler) ChangePassword(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	err := h.authService.ChangePassword(
		auth.RoleBuyer,
		principal.ID,
		c.PostForm("current_password"),
		c.PostForm("password"),
		c.PostForm("confirm_password"),
	)
	if err != nil {
		switch err {
		case services.ErrPasswordMismatch, services.ErrInvalidCredentials:
			c.HTML(http.StatusOK, "buyer-settings.html", gin.H{"Buyer": principal, "Error": err.Error()})
		default:
			renderInternalError(c, err)
		}
		return
	}

	c.Redirect(http.StatusFound, "/buyer-settings")
}
