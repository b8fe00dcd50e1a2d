package server

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/kavya410004/cultivating-connections/internal/auth"
	"github.com/kavya410004/cultivating-connections/internal/config"
	"github.com/kavya410004/cultivating-connections/internal/handlers"
	"github.com/kavya410004/cultivating-connections/internal/images"
	"github.com/kavya410004/cultivating-connections/internal/middleware"
	"github.com/kavya410004/cultivating-connections/internal/repository"
	"github.com/kavya410004/cultivating-connections/internal/services"
	"gorm.io/gorm"
)

// NewRouter wires repositories, services, and handlers onto a gin engine.
// templateGlob lets tests point at the template dir from their own working
// directory.
func NewRouter(cfg *config.Config, db *gorm.DB, templateGlob string) (*gin.Engine, error) {
	store, err := images.NewStore(cfg.Uploads.Dir)
	if err != nil {
		return nil, err
	}

	farmerRepo := repository.NewFarmerRepository(db)
	buyerRepo := repository.NewBuyerRepository(db)
	cropRepo := repository.NewCropRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	authService := services.NewAuthService(farmerRepo, buyerRepo)
	cropService := services.NewCropService(cropRepo, store, images.NewCardProcessor())
	requestService := services.NewRequestService(requestRepo, cropRepo, db)
	tokenService := services.NewTokenService(tokenRepo, cfg.JWT.Secret)

	authHandler := handlers.NewAuthHandler(authService)
	farmerHandler := handlers.NewFarmerHandler(cropService, requestService, authService, store)
	buyerHandler := handlers.NewBuyerHandler(cropService, requestService, authService)
	apiHandler := handlers.NewAPIHandler(cropService, requestService, tokenService)

	apiAuth := middleware.NewAPIAuth(tokenService)

	router := gin.Default()

	cookieStore := cookie.NewStore([]byte(cfg.Session.Secret))
	cookieStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions("cc_session", cookieStore))

	router.LoadHTMLGlob(templateGlob)
	router.Static("/uploads", store.Dir())

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/buyer-home")
	})

	router.GET("/login", authHandler.ShowLogin)
	router.GET("/register", authHandler.ShowRegister)
	router.POST("/login", authHandler.Login)
	router.POST("/farmerRegister", authHandler.RegisterFarmer)
	router.POST("/buyerRegister", authHandler.RegisterBuyer)
	router.GET("/logout", authHandler.Logout)

	router.GET("/buyer-home", buyerHandler.Home)
	router.POST("/search", buyerHandler.Search)

	farmer := router.Group("", middleware.RequireRole(auth.RoleFarmer))
	{
		farmer.GET("/farmer-home", farmerHandler.Home)
		farmer.GET("/sold-crops", farmerHandler.SoldCrops)
		farmer.GET("/crop-details/:cropId", farmerHandler.CropDetails)
		farmer.GET("/accept/:requestId", farmerHandler.AcceptRequest)
		farmer.GET("/reject/:requestId", farmerHandler.RejectRequest)
		farmer.POST("/add-crop", farmerHandler.AddCrop)
		farmer.POST("/edit-quantity/:cropId", farmerHandler.EditQuantity)
		farmer.GET("/settings", farmerHandler.Settings)
		farmer.POST("/edit-profile", farmerHandler.EditProfile)
		farmer.POST("/change-password", farmerHandler.ChangePassword)
	}

	buyer := router.Group("", middleware.RequireRole(auth.RoleBuyer))
	{
		buyer.GET("/buyer-requests", buyerHandler.Requests)
		buyer.GET("/connect/:cropId", buyerHandler.Connect)
		buyer.POST("/send-request/:cropId", buyerHandler.SendRequest)
		buyer.GET("/buyer-settings", buyerHandler.Settings)
		buyer.POST("/buyer-edit-profile", buyerHandler.EditProfile)
		buyer.POST("/buyer-change-password", buyerHandler.ChangePassword)
	}

	api := router.Group("/api/v1")
	{
		tokens := api.Group("/tokens", middleware.RequireSession())
		{
			tokens.POST("", apiHandler.CreateToken)
			tokens.GET("", apiHandler.ListTokens)
			tokens.DELETE("/:id", apiHandler.DeleteToken)
		}

		authed := api.Group("", apiAuth.RequireToken())
		{
			authed.GET("/crops", apiHandler.Crops)
			authed.GET("/requests", apiHandler.Requests)
		}
	}

	return router, nil
}
