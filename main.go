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

	"hotel-reservation/config"
	"hotel-reservation/controllers"
	"hotel-reservation/routes"
	"hotel-reservation/services"
	"hotel-reservation/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	jwtSecret := os.Getenv("JWT_SECRET_KEY")
	if jwtSecret == "" {
		log.Fatal("ERROR: JWT_SECRET_KEY environment variable is not set.")
	}

	db, err := config.Connect()
	if err != nil {
		log.Fatalf("Database connect failed: %v", err)
	}
	defer config.Close(db)
	log.Println("Database connection established and migrations applied.")

	// Initialize services
	userService := services.NewUserService(db, jwtSecret)
	roomRegistry := services.NewRoomRegistry(db)
	bookingLedger := services.NewBookingLedger(db)
	allocator := services.NewAllocationService(roomRegistry, bookingLedger, userService)

	// Initialize controllers
	userController := controllers.NewUserController(userService)
	roomController := controllers.NewRoomController(roomRegistry)
	bookingController := controllers.NewBookingController(allocator, bookingLedger)

	router := routes.SetupRouter(userController, roomController, bookingController, jwtSecret)

	addr := ":" + utils.EnvOrDefault("PORT", "8080")

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal, then shut down with a deadline.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}
