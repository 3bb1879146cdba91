package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"training-backend/config"
	"training-backend/controllers"
	"training-backend/routes"
	"training-backend/services"
	"training-backend/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	// Connect database (config.ConnectDatabase sets config.DB)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied")

	// Initialize services
	bookingService := services.NewBookingService(db)
	lifecycleService := services.NewLifecycleService(db)
	backupService := services.NewBackupService(db, config.DatabasePath(),
		utils.EnvOrDefault("BACKUP_DIR", "database_backups"))
	userService := services.NewUserService(db)
	certificateService := services.NewCertificateService(db)
	postService := services.NewPostService(db)

	// Initialize controllers
	bookingController := controllers.NewBookingController(bookingService, lifecycleService)
	backupController := controllers.NewBackupController(backupService)
	userController := controllers.NewUserController(userService)
	certificateController := controllers.NewCertificateController(certificateService)
	postController := controllers.NewPostController(postService)

	// Build router
	router := routes.SetupRouter(bookingController, backupController,
		userController, certificateController, postController)

	// Background loops: backup schedule and lifecycle sweep
	bgCtx, bgCancel := context.WithCancel(context.Background())
	go backupService.Run(bgCtx)
	go lifecycleService.Run(bgCtx, time.Hour)

	// Port from env (prefer), fallback to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	// Stop background loops first; an in-flight snapshot completes
	bgCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
