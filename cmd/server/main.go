package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hisma-backend-go/internal/api"
	"hisma-backend-go/internal/config"
	"hisma-backend-go/internal/core"
	"hisma-backend-go/internal/db"
	"hisma-backend-go/internal/middleware"
	"hisma-backend-go/internal/storage"
)

func main() {
	// --- 1. Initialize Logger (Zap) ---
	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Zap logger initialized successfully.")

	// --- 2. Load Application Configuration ---
	appConfig, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to load application configuration", zap.Error(err))
	}
	zapLogger.Info("Application configuration loaded successfully.")

	// --- 3. Initialize Firebase Admin SDK clients ---
	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()
	clients, err := db.InitFirebase(initCtx, appConfig)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize Firebase Admin SDK", zap.Error(err))
	}
	defer clients.Close()
	zapLogger.Info("Firebase Admin SDK (Firestore, Auth, Storage) initialized successfully.")

	// --- 4. Initialize Repositories ---
	userRepo := db.NewFirestoreUserRepository(clients.Firestore)
	lubricenterRepo := db.NewFirestoreLubricenterRepository(clients.Firestore)
	subscriptionRepo := db.NewFirestoreSubscriptionRepository(clients.Firestore)
	oilChangeRepo := db.NewFirestoreOilChangeRepository(clients.Firestore)
	auditRepo := db.NewFirestoreAuditRepository(clients.Firestore)
	accounts := db.NewFirebaseAuthAccounts(clients.Auth)
	zapLogger.Info("Repositories initialized successfully.")

	// --- 5. Initialize Services ---
	auditService := core.NewAuditService(auditRepo)
	userService := core.NewUserService(userRepo, lubricenterRepo)
	subscriptionService := core.NewSubscriptionService(subscriptionRepo, lubricenterRepo, auditService, nil)

	// Logo uploads are optional; without a bucket the endpoint reports
	// storage as unconfigured instead of failing startup.
	var logoUploader core.LogoUploader
	if appConfig.StorageBucket != "" {
		logoStore, err := storage.NewLogoStore(clients.Storage, appConfig.StorageBucket)
		if err != nil {
			zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize logo store", zap.Error(err))
		}
		logoUploader = logoStore
	} else {
		zapLogger.Warn("STORAGE_BUCKET is not configured; logo uploads are disabled.")
	}

	lubricenterService := core.NewLubricenterService(lubricenterRepo, userService, logoUploader, auditService)
	oilChangeService := core.NewOilChangeService(oilChangeRepo, lubricenterRepo, userService, subscriptionService, auditService, nil)
	registrationService := core.NewRegistrationService(accounts, userRepo, lubricenterRepo, subscriptionService, auditService)
	zapLogger.Info("Core services initialized successfully.")

	// --- 6. Setup Gin HTTP Engine ---
	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
		zapLogger.Info("Gin mode set to 'release'.")
	} else {
		gin.SetMode(gin.DebugMode)
		zapLogger.Info("Gin mode set to 'debug'.")
	}
	router := gin.New()

	// --- 7. Apply Global Middleware (Order is important) ---
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))

	if appConfig.ClientURL != "" {
		router.Use(middleware.CORSMiddleware(appConfig))
		zapLogger.Info("CORS Middleware enabled", zap.String("clientURL", appConfig.ClientURL))
	} else {
		zapLogger.Warn("CORS Middleware SKIPPED: CLIENT_URL is not configured. API might not be accessible from a web frontend.")
	}

	// --- 8. Setup API Routes ---
	api.SetupRoutes(
		router,
		zapLogger,
		clients.Auth,
		accounts,
		userService,
		lubricenterService,
		subscriptionService,
		oilChangeService,
		registrationService,
	)

	// --- 9. Configure and Start HTTP Server ---
	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	zapLogger.Info("Starting HTTP server...", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// --- 10. Graceful Shutdown Handling ---
	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	zapLogger.Info("Attempting graceful shutdown of HTTP server...")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("Server forced to shutdown due to error during graceful shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting gracefully.")
}
