package models

import (
	"gorm.io/gorm"
)

// Room types offered by the hotel.
const (
	RoomTypeSingle = "Single"
	RoomTypeDouble = "Double"
	RoomTypeSuite  = "Suite"
)

// Room occupancy statuses. Transitions between Available and Booked go
// through the allocation service only.
const (
	RoomStatusAvailable   = "Available"
	RoomStatusBooked      = "Booked"
	RoomStatusMaintenance = "Under Maintenance"
)

type Room struct {
	gorm.Model

	RoomUID    string `json:"roomUid" gorm:"column:room_uid;type:varchar(64)"`
	HotelName  string `json:"hotelName" gorm:"column:hotel_name;type:varchar(191)"`
	RoomNumber string `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`

	RoomType string  `json:"roomType" gorm:"column:room_type;type:varchar(32);default:Single"`
	Status   string  `json:"roomStatus" gorm:"column:status;type:varchar(32);default:Available"`
	Price    float64 `json:"roomPrice"`
	Capacity int     `json:"roomCapacity" gorm:"column:capacity"`

	Location    string `json:"location" gorm:"type:varchar(191)"`
	Thumbnail   string `json:"roomThumbnailImage" gorm:"column:thumbnail;type:text"`
	Description string `json:"roomDescription" gorm:"column:description;type:text"`
}
