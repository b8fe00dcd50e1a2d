package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kavya410004/cultivating-connections/internal/auth"
	"github.com/kavya410004/cultivating-connections/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{})
}

func (h *AuthHandler) RegisterFarmer(c *gin.Context) {
	principal, err := h.authService.RegisterFarmer(
		c.PostForm("name"),
		c.PostForm("phone"),
		c.PostForm("district"),
		c.PostForm("password"),
		c.PostForm("confirm_password"),
	)
	if err != nil {
		switch err {
		case services.ErrPasswordMismatch, services.ErrPhoneTaken:
			c.HTML(http.StatusOK, "register.html", gin.H{"Error": err.Error(), "Role": auth.RoleFarmer})
		default:
			renderInternalError(c, err)
		}
		return
	}

	if err := auth.SaveToSession(c, *principal); err != nil {
		renderInternalError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/farmer-home")
}

func (h *AuthHandler) RegisterBuyer(c *gin.Context) {
	principal, err := h.authService.RegisterBuyer(
		c.PostForm("name"),
		c.PostForm("phone"),
		c.PostForm("password"),
		c.PostForm("confirm_password"),
	)
	if err != nil {
		switch err {
		case services.ErrPasswordMismatch, services.ErrPhoneTaken:
			c.HTML(http.StatusOK, "register.html", gin.H{"Error": err.Error(), "Role": auth.RoleBuyer})
		default:
			renderInternalError(c, err)
		}
		return
	}

	if err := auth.SaveToSession(c, *principal); err != nil {
		renderInternalError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/buyer-home")
}

func (h *AuthHandler) Login(c *gin.Context) {
	role := c.PostForm("role")

	principal, err := h.authService.Login(role, c.PostForm("phone"), c.PostForm("password"))
	if err != nil {
		switch err {
		case services.ErrInvalidCredentials, services.ErrUnknownRole:
			c.HTML(http.StatusOK, "login.html", gin.H{"Error": "Invalid phone number or password"})
		default:
			renderInternalError(c, err)
		}
		return
	}

	if err := auth.SaveToSession(c, *principal); err != nil {
		renderInternalError(c, err)
		return
	}

	if principal.IsFarmer() {
		c.Redirect(http.StatusFound, "/farmer-home")
		return
	}
	c.Redirect(http.StatusFound, "/buyer-home")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := auth.ClearSession(c); err != nil {
		renderInternalError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/login")
}
