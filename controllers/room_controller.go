package controllers

import (
	"net/http"
	"strconv"

	"hotel-reservation/models"
	"hotel-reservation/services"
	"hotel-reservation/utils"

	"github.com/gin-gonic/gin"
)

type CreateRoomRequest struct {
	HotelName   string  `json:"hotelName" binding:"required"`
	RoomNumber  string  `json:"roomNumber" binding:"required"`
	RoomType    string  `json:"roomType" binding:"omitempty,oneof=Single Double Suite"`
	Price       float64 `json:"roomPrice"`
	Capacity    int     `json:"roomCapacity" binding:"omitempty,min=1,max=5"`
	Location    string  `json:"location"`
	Description string  `json:"roomDescription"`
	Thumbnail   string  `json:"roomThumbnailImage"`
}

type RoomController struct {
	Registry *services.RoomRegistry
}

func NewRoomController(registry *services.RoomRegistry) *RoomController {
	return &RoomController{Registry: registry}
}

// CreateRoom adds a room to the inventory.
func (rc *RoomController) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	room := models.Room{
		HotelName:   req.HotelName,
		RoomNumber:  req.RoomNumber,
		RoomType:    req.RoomType,
		Price:       req.Price,
		Capacity:    req.Capacity,
		Location:    req.Location,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
	}
	if err := rc.Registry.Create(&room); err != nil {
		respondAllocationError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, "Room created successfully", room)
}

// GetRooms lists the whole inventory.
func (rc *RoomController) GetRooms(c *gin.Context) {
	rooms, err := rc.Registry.ListAll()
	if err != nil {
		respondAllocationError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Rooms fetched successfully", rooms)
}

// GetAvailableRooms lists rooms currently open for allocation.
func (rc *RoomController) GetAvailableRooms(c *gin.Context) {
	rooms, err := rc.Registry.ListAvailable()
	if err != nil {
		respondAllocationError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Available rooms fetched successfully", rooms)
}

// GetRoomByID fetches one room.
func (rc *RoomController) GetRoomByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid room ID")
		return
	}

	room, err := rc.Registry.GetByID(uint(id))
	if err != nil {
		respondAllocationError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Room fetched successfully", room)
}
