package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-reservation/controllers"
	"hotel-reservation/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controller instances onto the route tree.
func SetupRouter(
	uc *controllers.UserController,
	rc *controllers.RoomController,
	bc *controllers.BookingController,
	jwtSecret string,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		users := api.Group("/user/auth")
		{
			users.POST("/register", uc.Register)
			users.POST("/login", uc.Login)
		}

		rooms := api.Group("/room")
		{
			rooms.POST("/add-room", rc.CreateRoom)
			rooms.GET("/get-room-list", rc.GetRooms)
			rooms.GET("/get-available-rooms", rc.GetAvailableRooms)
			rooms.GET("/get-room/:id", rc.GetRoomByID)
		}

		bookings := api.Group("/bookings")
		bookings.Use(middleware.RequireAuth(jwtSecret))
		{
			bookings.POST("/booking-room", bc.CreateBooking)
			bookings.GET("/get-booking/:id", bc.GetBookingByID)
			bookings.GET("/get-booking-by-email/:email", bc.GetBookingsByEmail)
			bookings.DELETE("/cancel-booking", bc.CancelBooking)
			bookings.PUT("/update-booking-check-in-and-check-out", bc.RescheduleBooking)
			bookings.GET("/get-all-bookings", bc.GetAllBookings)
			bookings.GET("/get-current-guest-list", bc.GetGuestList)
		}
	}

	return r
}
