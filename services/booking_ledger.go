package services

import (
	"errors"
	"log"
	"time"

	"hotel-reservation/models"

	"gorm.io/gorm"
)

// BookingLedger owns Booking records. Bookings reference rooms by id and
// denormalized room number only; the ledger never mutates Room state.
//
// Lookups keyed by (userID, roomNumber) rely on at most one active booking
// per pair. The schema enforces that with the unique index on
// (user_id, room_id, active_key), where active_key goes NULL on cancellation.
type BookingLedger struct {
	DB *gorm.DB
}

func NewBookingLedger(db *gorm.DB) *BookingLedger {
	return &BookingLedger{DB: db}
}

func activeKey() *uint8 {
	one := uint8(1)
	return &one
}

// Create persists a new booking. Bookings start Confirmed.
func (l *BookingLedger) Create(booking *models.Booking) error {
	if booking.Status == "" {
		booking.Status = models.BookingStatusConfirmed
	}
	if booking.Status == models.BookingStatusConfirmed {
		booking.ActiveKey = activeKey()
	}
	if err := l.DB.Create(booking).Error; err != nil {
		return persistenceErr("create booking", err)
	}
	return nil
}

// FindActiveByUser returns the user's upcoming Confirmed bookings, soonest
// check-in first. Past stays are not included.
func (l *BookingLedger) FindActiveByUser(userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := l.DB.
		Where("user_id = ? AND status = ? AND check_in >= ?", userID, models.BookingStatusConfirmed, time.Now()).
		Order("check_in ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, persistenceErr("list bookings by user", err)
	}
	return bookings, nil
}

// FindActiveByUserAndRoom locates the single active booking for a
// (user, room number) pair. More than one match means the storage-level
// uniqueness guarantee was broken and is reported as an integrity fault.
func (l *BookingLedger) FindActiveByUserAndRoom(userID uint, roomNumber string) (models.Booking, error) {
	var bookings []models.Booking
	err := l.DB.
		Where("user_id = ? AND room_number = ? AND status = ?", userID, roomNumber, models.BookingStatusConfirmed).
		Find(&bookings).Error
	if err != nil {
		return models.Booking{}, persistenceErr("find booking", err)
	}
	switch len(bookings) {
	case 0:
		return models.Booking{}, ErrBookingNotFound
	case 1:
		return bookings[0], nil
	default:
		log.Printf("integrity fault: %d active bookings for user=%d room=%s", len(bookings), userID, roomNumber)
		return models.Booking{}, integrityErr("%d active bookings for user=%d room=%s", len(bookings), userID, roomNumber)
	}
}

// MarkCancelled transitions the matched active booking to Cancelled and
// releases its slot in the uniqueness index. The status condition on the
// write makes a concurrent double-cancel lose cleanly with ErrBookingNotFound.
func (l *BookingLedger) MarkCancelled(userID uint, roomNumber string) (models.Booking, error) {
	booking, err := l.FindActiveByUserAndRoom(userID, roomNumber)
	if err != nil {
		return models.Booking{}, err
	}

	res := l.DB.Model(&models.Booking{}).
		Where("id = ? AND status = ?", booking.ID, models.BookingStatusConfirmed).
		Updates(map[string]interface{}{
			"status":     models.BookingStatusCancelled,
			"active_key": nil,
		})
	if res.Error != nil {
		return models.Booking{}, persistenceErr("cancel booking", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.Booking{}, ErrBookingNotFound
	}

	if err := l.DB.First(&booking, booking.ID).Error; err != nil {
		return models.Booking{}, persistenceErr("reload booking", err)
	}
	return booking, nil
}

// UpdateDates overwrites the date pair and derived stay duration on the
// matched active booking in a single write.
func (l *BookingLedger) UpdateDates(userID uint, roomNumber string, checkIn, checkOut time.Time, stayDuration string) (models.Booking, error) {
	booking, err := l.FindActiveByUserAndRoom(userID, roomNumber)
	if err != nil {
		return models.Booking{}, err
	}

	res := l.DB.Model(&models.Booking{}).
		Where("id = ? AND status = ?", booking.ID, models.BookingStatusConfirmed).
		Updates(map[string]interface{}{
			"check_in":      checkIn,
			"check_out":     checkOut,
			"stay_duration": stayDuration,
		})
	if res.Error != nil {
		return models.Booking{}, persistenceErr("update booking dates", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.Booking{}, ErrBookingNotFound
	}

	if err := l.DB.First(&booking, booking.ID).Error; err != nil {
		return models.Booking{}, persistenceErr("reload booking", err)
	}
	return booking, nil
}

// Delete removes a booking row outright. Only the allocation service uses it,
// to roll back a booking whose room commit failed before anyone could
// observe it.
func (l *BookingLedger) Delete(bookingID uint) error {
	if err := l.DB.Unscoped().Delete(&models.Booking{}, bookingID).Error; err != nil {
		return persistenceErr("delete booking", err)
	}
	return nil
}

// ListAll returns every booking, newest first.
func (l *BookingLedger) ListAll() ([]models.Booking, error) {
	var bookings []models.Booking
	if err := l.DB.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, persistenceErr("list bookings", err)
	}
	return bookings, nil
}

// GetByID returns a single booking regardless of status.
func (l *BookingLedger) GetByID(id uint) (models.Booking, error) {
	var booking models.Booking
	if err := l.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, ErrBookingNotFound
		}
		return models.Booking{}, persistenceErr("get booking", err)
	}
	return booking, nil
}
