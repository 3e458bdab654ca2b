package services

import (
	"errors"
	"fmt"

	"hotel-reservation/utils"
)

// Outcome taxonomy for the reservation core. Validation and not-found
// sentinels are recoverable at the HTTP boundary; ErrPersistence and
// ErrDataIntegrity are storage-level faults that surface as 5xx.
var (
	ErrInvalidDate  = utils.ErrInvalidDate
	ErrInvalidRange = utils.ErrInvalidRange

	ErrNoAvailableRooms       = errors.New("no_available_rooms")
	ErrRoomAllocationConflict = errors.New("room_allocation_conflict")

	ErrUserNotFound       = errors.New("user_not_found")
	ErrUserExists         = errors.New("user_already_exists")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrBookingNotFound    = errors.New("booking_not_found")
	ErrRoomNotFound       = errors.New("room_not_found")

	ErrPersistence   = errors.New("persistence_error")
	ErrDataIntegrity = errors.New("data_integrity_fault")
)

func persistenceErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}

func integrityErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrDataIntegrity, fmt.Sprintf(format, args...))
}
