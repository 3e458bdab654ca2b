package services

import (
	"encoding/json"
	"errors"
	"log"
	"math/rand/v2"
	"time"

	"hotel-reservation/models"
	"hotel-reservation/utils"

	"gorm.io/datatypes"
)

// Collaborator surfaces the allocator needs, satisfied by RoomRegistry,
// BookingLedger and UserService.

type roomPool interface {
	ListAvailable() ([]models.Room, error)
	SetStatus(roomID uint, roomNumber, status string) (models.Room, error)
	SetStatusIf(roomID uint, roomNumber, expected, status string) (models.Room, error)
}

type bookingStore interface {
	Create(booking *models.Booking) error
	FindActiveByUser(userID uint) ([]models.Booking, error)
	FindActiveByUserAndRoom(userID uint, roomNumber string) (models.Booking, error)
	MarkCancelled(userID uint, roomNumber string) (models.Booking, error)
	UpdateDates(userID uint, roomNumber string, checkIn, checkOut time.Time, stayDuration string) (models.Booking, error)
	Delete(bookingID uint) error
}

type userResolver interface {
	ResolveByEmail(email string) (models.User, error)
}

// AllocationService is the only component allowed to mutate a Room and a
// Booking as part of one logical operation. Each allocation spans two
// aggregates with no shared transaction, so every step that can fail after a
// write has a compensating action.
type AllocationService struct {
	Rooms  roomPool
	Ledger bookingStore
	Users  userResolver

	// attempts bounds the list-pick-commit loop in CreateBooking.
	attempts int
	// pick selects an index in [0,n); swapped out in tests.
	pick func(n int) int
}

const defaultAllocationAttempts = 3

func NewAllocationService(rooms roomPool, ledger bookingStore, users userResolver) *AllocationService {
	return &AllocationService{
		Rooms:    rooms,
		Ledger:   ledger,
		Users:    users,
		attempts: defaultAllocationAttempts,
		pick:     rand.IntN,
	}
}

// CreateBooking assigns a random Available room to a new booking.
//
// The room is picked uniformly from the freshly listed pool so repeated
// retries don't starve rooms behind a deterministic first choice. The pick is
// only tentative: the booking is persisted first, then the room flip
// Available->Booked is a conditional write. Losing that write means another
// request took the room between listing and committing; the booking is rolled
// back and the whole attempt repeats against a fresh pool.
func (s *AllocationService) CreateBooking(userID uint, checkIn, checkOut string, totalAmount float64, guestNames []string) (models.Booking, error) {
	ci, err := utils.ParseDate(checkIn)
	if err != nil {
		return models.Booking{}, err
	}
	co, err := utils.ParseDate(checkOut)
	if err != nil {
		return models.Booking{}, err
	}
	days, err := utils.StayDuration(ci, co)
	if err != nil {
		return models.Booking{}, err
	}

	var names datatypes.JSON
	if len(guestNames) > 0 {
		raw, err := json.Marshal(guestNames)
		if err != nil {
			return models.Booking{}, persistenceErr("encode guest names", err)
		}
		names = datatypes.JSON(raw)
	}

	for attempt := 0; attempt < s.attempts; attempt++ {
		pool, err := s.Rooms.ListAvailable()
		if err != nil {
			return models.Booking{}, err
		}
		if len(pool) == 0 {
			return models.Booking{}, ErrNoAvailableRooms
		}
		room := pool[s.pick(len(pool))]

		booking := models.Booking{
			UserID:       userID,
			RoomID:       room.ID,
			RoomNumber:   room.RoomNumber,
			CheckIn:      ci,
			CheckOut:     co,
			StayDuration: utils.FormatStayDuration(days),
			TotalAmount:  totalAmount,
			NameOfGuests: names,
			Status:       models.BookingStatusConfirmed,
		}
		if err := s.Ledger.Create(&booking); err != nil {
			return models.Booking{}, err
		}

		if _, err := s.Rooms.SetStatusIf(room.ID, room.RoomNumber, models.RoomStatusAvailable, models.RoomStatusBooked); err != nil {
			// A Confirmed booking must never point at a room that was not
			// flipped to Booked. Undo the booking before anything else.
			if delErr := s.Ledger.Delete(booking.ID); delErr != nil {
				log.Printf("integrity fault: booking %d rollback failed after room commit failure: %v", booking.ID, delErr)
				return models.Booking{}, integrityErr("booking %d rollback failed: %v", booking.ID, delErr)
			}
			if errors.Is(err, ErrRoomNotFound) {
				// Race lost: the room stopped being Available between the
				// listing and the write. Re-list and try again.
				continue
			}
			return models.Booking{}, err
		}

		return booking, nil
	}

	return models.Booking{}, ErrRoomAllocationConflict
}

// CancelBooking marks the guest's active booking Cancelled, then releases the
// room. The booking write goes first on purpose: a crash in between leaves a
// cancelled booking with a room still marked Booked, which reconciliation can
// fix, instead of an Available room still tied to a Confirmed booking, which
// double-books.
func (s *AllocationService) CancelBooking(email, roomNumber string) (models.Booking, error) {
	user, err := s.Users.ResolveByEmail(email)
	if err != nil {
		return models.Booking{}, err
	}

	booking, err := s.Ledger.MarkCancelled(user.ID, roomNumber)
	if err != nil {
		return models.Booking{}, err
	}

	if _, err := s.Rooms.SetStatus(booking.RoomID, booking.RoomNumber, models.RoomStatusAvailable); err != nil {
		log.Printf("booking %d cancelled but room %s not released: %v", booking.ID, booking.RoomNumber, err)
		return models.Booking{}, err
	}

	return booking, nil
}

// RescheduleBooking moves the active booking's dates and recomputes the stay
// duration. Omitted dates keep their current values. Only the booking record
// is written, so there is no cross-entity risk here.
func (s *AllocationService) RescheduleBooking(email, roomNumber, checkIn, checkOut string) (models.Booking, error) {
	user, err := s.Users.ResolveByEmail(email)
	if err != nil {
		return models.Booking{}, err
	}

	booking, err := s.Ledger.FindActiveByUserAndRoom(user.ID, roomNumber)
	if err != nil {
		return models.Booking{}, err
	}

	ci := booking.CheckIn
	if checkIn != "" {
		if ci, err = utils.ParseDate(checkIn); err != nil {
			return models.Booking{}, err
		}
	}
	co := booking.CheckOut
	if checkOut != "" {
		if co, err = utils.ParseDate(checkOut); err != nil {
			return models.Booking{}, err
		}
	}

	days, err := utils.StayDuration(ci, co)
	if err != nil {
		return models.Booking{}, err
	}

	return s.Ledger.UpdateDates(user.ID, roomNumber, ci, co, utils.FormatStayDuration(days))
}

// UpcomingBookings returns the guest's future Confirmed bookings, looked up
// by email.
func (s *AllocationService) UpcomingBookings(email string) ([]models.Booking, error) {
	user, err := s.Users.ResolveByEmail(email)
	if err != nil {
		return nil, err
	}
	return s.Ledger.FindActiveByUser(user.ID)
}
