package api

import (
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hisma-backend-go/internal/core"
	"hisma-backend-go/internal/db"
	"hisma-backend-go/internal/middleware"
)

// SetupRoutes configures all the application routes with their handlers and
// middleware. Global middleware (Logging, Recovery, CORS) are applied to the
// router before this is called, in main.go.
func SetupRoutes(
	router *gin.Engine,
	logger *zap.Logger,
	authClient *auth.Client,
	accounts db.AuthAccounts,
	userService core.UserService,
	lubricenterService core.LubricenterService,
	subscriptionService core.SubscriptionService,
	oilChangeService core.OilChangeService,
	registrationService core.RegistrationService,
) {
	if authClient == nil {
		logger.Fatal("CRITICAL_SETUP_ERROR: Firebase Auth client is nil during route setup. Ensure db.InitFirebase() succeeded.")
	}
	authMW := middleware.NewAuthMiddleware(authClient)

	authHandler := NewAuthHandler(registrationService, accounts)
	userHandler := NewUserHandler(userService)
	lubricenterHandler := NewLubricenterHandler(lubricenterService)
	subscriptionHandler := NewSubscriptionHandler(subscriptionService)
	oilChangeHandler := NewOilChangeHandler(oilChangeService)

	apiV1 := router.Group("/api/v1")
	{
		// Registration and account recovery. The owner sign-up and password
		// reset are public; hiring an employee requires an authenticated admin.
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.RegisterLubricenter)
			authGroup.POST("/password-reset", authHandler.RequestPasswordReset)
			authGroup.POST("/employees", authMW.VerifyToken(), authHandler.RegisterEmployee)
		}

		usersGroup := apiV1.Group("/users")
		{
			usersGroup.GET("/me", authMW.VerifyToken(), userHandler.GetCurrentUserProfile)
		}

		lubricentersGroup := apiV1.Group("/lubricenters", authMW.VerifyToken())
		{
			lubricentersGroup.GET("/:lubricenterId", lubricenterHandler.GetLubricenter)
			lubricentersGroup.PUT("/:lubricenterId", lubricenterHandler.UpdateLubricenter)
			lubricentersGroup.POST("/:lubricenterId/logo", lubricenterHandler.UploadLogo)

			subscriptionGroup := lubricentersGroup.Group("/:lubricenterId/subscription")
			{
				subscriptionGroup.GET("", subscriptionHandler.GetSubscription)
				subscriptionGroup.GET("/check", subscriptionHandler.CheckSubscription)
				subscriptionGroup.POST("/renew", subscriptionHandler.RenewSubscription)
			}
		}

		// Oil-change records are scoped to the caller's shop, resolved from
		// the authenticated user rather than a path parameter.
		oilChangesGroup := apiV1.Group("/oil-changes", authMW.VerifyToken())
		{
			oilChangesGroup.POST("", oilChangeHandler.CreateOilChange)
			oilChangesGroup.GET("", oilChangeHandler.ListOilChanges)
			oilChangesGroup.GET("/:recordId", oilChangeHandler.GetOilChange)
			oilChangesGroup.PUT("/:recordId", oilChangeHandler.UpdateOilChange)
			oilChangesGroup.DELETE("/:recordId", oilChangeHandler.DeleteOilChange)
			oilChangesGroup.GET("/:recordId/pdf", oilChangeHandler.DownloadTicket)
			oilChangesGroup.GET("/:recordId/share/whatsapp", oilChangeHandler.WhatsAppShare)
			oilChangesGroup.GET("/:recordId/share/email", oilChangeHandler.EmailShare)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Hisma backend is healthy."})
	})

	logger.Info("API routes configured successfully under /api/v1 and /health.")
}
