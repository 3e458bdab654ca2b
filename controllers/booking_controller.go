package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"hotel-reservation/services"
	"hotel-reservation/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateBookingRequest struct {
	UserID       uint     `json:"userId" binding:"required"`
	CheckIn      string   `json:"checkIn" binding:"required"`
	CheckOut     string   `json:"checkOut" binding:"required"`
	TotalAmount  float64  `json:"totalAmount" binding:"required"`
	NameOfGuests []string `json:"nameOfGuests"`
}

type CancelBookingRequest struct {
	Email      string `json:"email" binding:"required,email"`
	RoomNumber string `json:"roomNumber" binding:"required"`
}

type RescheduleBookingRequest struct {
	Email      string `json:"email" binding:"required,email"`
	RoomNumber string `json:"roomNumber" binding:"required"`
	CheckIn    string `json:"checkIn"`
	CheckOut   string `json:"checkOut"`
}

// GuestListEntry is the projection returned by the current-guest-list
// endpoint.
type GuestListEntry struct {
	NameOfGuests []string  `json:"nameOfGuests"`
	RoomNumber   string    `json:"roomNumber"`
	CheckIn      time.Time `json:"checkIn"`
	CheckOut     time.Time `json:"checkOut"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	Allocator *services.AllocationService
	Ledger    *services.BookingLedger
}

func NewBookingController(allocator *services.AllocationService, ledger *services.BookingLedger) *BookingController {
	return &BookingController{Allocator: allocator, Ledger: ledger}
}

// respondAllocationError maps the service error taxonomy onto HTTP statuses:
// validation and not-found recover as 4xx, storage and integrity faults
// propagate as 5xx.
func respondAllocationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidDate):
		utils.JSONError(c, http.StatusBadRequest, "Invalid date format")
	case errors.Is(err, services.ErrInvalidRange):
		utils.JSONError(c, http.StatusBadRequest, "Check-in date must be earlier than check-out date")
	case errors.Is(err, services.ErrNoAvailableRooms):
		utils.JSONError(c, http.StatusBadRequest, "No available rooms")
	case errors.Is(err, services.ErrRoomAllocationConflict):
		utils.JSONError(c, http.StatusConflict, "Room was taken by another booking, please retry")
	case errors.Is(err, services.ErrUserNotFound):
		utils.JSONError(c, http.StatusNotFound, "You are not registered")
	case errors.Is(err, services.ErrBookingNotFound):
		utils.JSONError(c, http.StatusNotFound, "No booking found")
	case errors.Is(err, services.ErrRoomNotFound):
		utils.JSONError(c, http.StatusNotFound, "Room not found")
	default:
		log.Printf("booking operation failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Something went wrong, please try again later")
	}
}

// CreateBooking allocates a random available room for the requested dates.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := bc.Allocator.CreateBooking(req.UserID, req.CheckIn, req.CheckOut, req.TotalAmount, req.NameOfGuests)
	if err != nil {
		respondAllocationError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, "Booking created successfully", booking)
}

// GetBookingsByEmail returns the guest's upcoming bookings.
func (bc *BookingController) GetBookingsByEmail(c *gin.Context) {
	email := c.Param("email")

	bookings, err := bc.Allocator.UpcomingBookings(email)
	if err != nil {
		respondAllocationError(c, err)
		return
	}
	if len(bookings) == 0 {
		utils.JSONError(c, http.StatusNotFound, "You have no upcoming bookings")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Upcoming bookings fetched successfully", bookings)
}

// CancelBooking cancels the guest's active booking and releases the room.
func (bc *BookingController) CancelBooking(c *gin.Context) {
	var req CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := bc.Allocator.CancelBooking(req.Email, req.RoomNumber)
	if err != nil {
		respondAllocationError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Booking cancelled successfully", booking)
}

// RescheduleBooking updates check-in/check-out on the active booking.
func (bc *BookingController) RescheduleBooking(c *gin.Context) {
	var req RescheduleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.CheckIn == "" && req.CheckOut == "" {
		utils.JSONError(c, http.StatusBadRequest, "Provide a new check-in or check-out date")
		return
	}

	booking, err := bc.Allocator.RescheduleBooking(req.Email, req.RoomNumber, req.CheckIn, req.CheckOut)
	if err != nil {
		respondAllocationError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Booking updated successfully", booking)
}

// GetBookingByID fetches one booking regardless of status.
func (bc *BookingController) GetBookingByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	booking, err := bc.Ledger.GetByID(uint(id))
	if err != nil {
		respondAllocationError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Booking fetched successfully", booking)
}

// GetAllBookings lists every booking on record.
func (bc *BookingController) GetAllBookings(c *gin.Context) {
	bookings, err := bc.Ledger.ListAll()
	if err != nil {
		respondAllocationError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Bookings fetched successfully", bookings)
}

// GetGuestList projects active bookings into the guest roster.
func (bc *BookingController) GetGuestList(c *gin.Context) {
	bookings, err := bc.Ledger.ListAll()
	if err != nil {
		respondAllocationError(c, err)
		return
	}

	guests := make([]GuestListEntry, 0, len(bookings))
	for _, b := range bookings {
		if !b.Active() {
			continue
		}
		var names []string
		if len(b.NameOfGuests) > 0 {
			if err := json.Unmarshal(b.NameOfGuests, &names); err != nil {
				log.Printf("warning: booking %d has malformed guest list: %v", b.ID, err)
			}
		}
		guests = append(guests, GuestListEntry{
			NameOfGuests: names,
			RoomNumber:   b.RoomNumber,
			CheckIn:      b.CheckIn,
			CheckOut:     b.CheckOut,
		})
	}
	utils.JSONSuccess(c, http.StatusOK, "Guest list fetched successfully", guests)
}
