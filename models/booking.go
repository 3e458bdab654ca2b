package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Booking statuses. Confirmed -> Cancelled is the only transition the
// allocation service performs; Pending exists in the stored enum but is not
// produced by any current operation.
const (
	BookingStatusPending   = "Pending"
	BookingStatusConfirmed = "Confirmed"
	BookingStatusCancelled = "Cancelled"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID uint `gorm:"index;column:user_id;uniqueIndex:idx_active_user_room" json:"userId"`
	RoomID uint `gorm:"index;column:room_id;uniqueIndex:idx_active_user_room" json:"roomId"`

	// Denormalized copy of the room's number at assignment time. Fixed for
	// the life of the booking, like RoomID.
	RoomNumber string `gorm:"column:room_number;type:varchar(50)" json:"roomNumber"`

	CheckIn      time.Time `gorm:"column:check_in" json:"checkIn"`
	CheckOut     time.Time `gorm:"column:check_out" json:"checkOut"`
	StayDuration string    `gorm:"column:stay_duration;type:varchar(32)" json:"stayDuration"`

	TotalAmount  float64        `gorm:"column:total_amount" json:"totalAmount"`
	NameOfGuests datatypes.JSON `gorm:"column:name_of_guests" json:"nameOfGuests,omitempty"`

	Status string `gorm:"column:status;type:varchar(32);default:Confirmed" json:"bookingStatus"`

	// ActiveKey is 1 while the booking is Confirmed and NULL once it is
	// cancelled. MySQL unique indexes skip NULL rows, so the composite index
	// (user_id, room_id, active_key) rejects a second concurrent Confirmed
	// booking for the same pair while leaving cancelled history alone.
	ActiveKey *uint8 `gorm:"column:active_key;uniqueIndex:idx_active_user_room" json:"-"`

	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	User User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}

// Active reports whether the booking still holds its room.
func (b *Booking) Active() bool {
	return b.Status == BookingStatusConfirmed
}
