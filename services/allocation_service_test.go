package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"hotel-reservation/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAllocator(db *gorm.DB) *AllocationService {
	return NewAllocationService(NewRoomRegistry(db), NewBookingLedger(db), NewUserService(db, "test-secret"))
}

func TestCreateBookingAssignsRoomAndFlipsStatus(t *testing.T) {
	db := newTestDB(t)
	svc := newAllocator(db)

	user := seedUser(t, db, "guest@example.com")
	room := seedRoom(t, db, "R1", models.RoomStatusAvailable)

	booking, err := svc.CreateBooking(user.ID, "2025-06-01", "2025-06-05", 400, []string{"Alice", "Bob"})
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, room.ID, booking.RoomID)
	assert.Equal(t, "R1", booking.RoomNumber)
	assert.Equal(t, "4 days", booking.StayDuration)
	assert.Equal(t, 400.0, booking.TotalAmount)

	var reloaded models.Room
	require.NoError(t, db.First(&reloaded, room.ID).Error)
	assert.Equal(t, models.RoomStatusBooked, reloaded.Status)

	// Exactly one active booking references the room.
	var active int64
	require.NoError(t, db.Model(&models.Booking{}).
		Where("room_id = ? AND status = ?", room.ID, models.BookingStatusConfirmed).
		Count(&active).Error)
	assert.EqualValues(t, 1, active)
}

func TestCreateBookingValidationWritesNothing(t *testing.T) {
	db := newTestDB(t)
	svc := newAllocator(db)

	user := seedUser(t, db, "guest@example.com")
	seedRoom(t, db, "R1", models.RoomStatusAvailable)

	_, err := svc.CreateBooking(user.ID, "2025-06-05", "2025-06-01", 400, nil)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = svc.CreateBooking(user.ID, "not-a-date", "2025-06-01", 400, nil)
	assert.ErrorIs(t, err, ErrInvalidDate)

	var bookings int64
	require.NoError(t, db.Model(&models.Booking{}).Count(&bookings).Error)
	assert.EqualValues(t, 0, bookings)

	var room models.Room
	require.NoError(t, db.Where("room_number = ?", "R1").First(&room).Error)
	assert.Equal(t, models.RoomStatusAvailable, room.Status)
}

func TestCreateBookingEmptyPool(t *testing.T) {
	db := newTestDB(t)
	svc := newAllocator(db)

	user := seedUser(t, db, "guest@example.com")
	seedRoom(t, db, "R1", models.RoomStatusBooked)
	seedRoom(t, db, "R2", models.RoomStatusMaintenance)

	_, err := svc.CreateBooking(user.ID, "2025-06-01", "2025-06-05", 400, nil)
	assert.ErrorIs(t, err, ErrNoAvailableRooms)
}

func TestCreateBookingPicksFromPool(t *testing.T) {
	db := newTestDB(t)
	svc := newAllocator(db)

	user := seedUser(t, db, "guest@example.com")
	seedRoom(t, db, "R1", models.RoomStatusAvailable)
	seedRoom(t, db, "R2", models.RoomStatusAvailable)

	// Force the pick to the second candidate to show the selection is over
	// the listed pool, not a hardcoded first room.
	svc.pick = func(n int) int { return n - 1 }

	booking, err := svc.CreateBooking(user.ID, "2025-06-01", "2025-06-05", 400, nil)
	require.NoError(t, err)
	assert.Equal(t, "R2", booking.RoomNumber)
}

func TestCancelBookingReleasesRoom(t *testing.T) {
	db := newTestDB(t)
	svc := newAllocator(db)

	user := seedUser(t, db, "guest@example.com")
	room := seedRoom(t, db, "R1", models.RoomStatusAvailable)

	_, err := svc.CreateBooking(user.ID, "2025-06-01", "2025-06-05", 400, nil)
	require.NoError(t, err)

	cancelled, err := svc.CancelBooking("guest@example.com", "R1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)

	var reloaded models.Room
	require.NoError(t, db.First(&reloaded, room.ID).Error)
	assert.Equal(t, models.RoomStatusAvailable, reloaded.Status)

	// Second cancel on the same pair has nothing left to act on.
	_, err = svc.CancelBooking("guest@example.com", "R1")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancelBookingUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := newAllocator(db)

	_, err := svc.CancelBooking("nobody@example.com", "R1")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRescheduleBookingRecomputesDuration(t *testing.T) {
	db := newTestDB(t)
	svc := newAllocator(db)

	user := seedUser(t, db, "guest@example.com")
	room := seedRoom(t, db, "R1", models.RoomStatusAvailable)

	_, err := svc.CreateBooking(user.ID, "2025-06-01", "2025-06-05", 400, nil)
	require.NoError(t, err)

	updated, err := svc.RescheduleBooking("guest@example.com", "R1", "", "2025-06-08")
	require.NoError(t, err)
	assert.Equal(t, "7 days", updated.StayDuration)
	assert.Equal(t, "2025-06-01", updated.CheckIn.Format("2006-01-02"), "omitted check-in keeps its value")
	assert.Equal(t, "2025-06-08", updated.CheckOut.Format("2006-01-02"))

	// Room state is untouched by a reschedule.
	var reloaded models.Room
	require.NoError(t, db.First(&reloaded, room.ID).Error)
	assert.Equal(t, models.RoomStatusBooked, reloaded.Status)
}

func TestRescheduleBookingRejectsInvertedRange(t *testing.T) {
	db := newTestDB(t)
	svc := newAllocator(db)

	user := seedUser(t, db, "guest@example.com")
	seedRoom(t, db, "R1", models.RoomStatusAvailable)

	_, err := svc.CreateBooking(user.ID, "2025-06-01", "2025-06-05", 400, nil)
	require.NoError(t, err)

	_, err = svc.RescheduleBooking("guest@example.com", "R1", "", "2025-05-30")
	assert.ErrorIs(t, err, ErrInvalidRange)

	// The stored dates survived the rejected update.
	ledger := NewBookingLedger(db)
	booking, err := ledger.FindActiveByUserAndRoom(user.ID, "R1")
	require.NoError(t, err)
	assert.Equal(t, "4 days", booking.StayDuration)
}

func TestUpcomingBookings(t *testing.T) {
	db := newTestDB(t)
	svc := newAllocator(db)

	user := seedUser(t, db, "guest@example.com")
	seedRoom(t, db, "R1", models.RoomStatusAvailable)

	in := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	out := time.Now().AddDate(0, 0, 9).Format("2006-01-02")
	_, err := svc.CreateBooking(user.ID, in, out, 280, nil)
	require.NoError(t, err)

	bookings, err := svc.UpcomingBookings("guest@example.com")
	require.NoError(t, err)
	assert.Len(t, bookings, 1)

	_, err = svc.UpcomingBookings("nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// ---------------------------
// Failure injection stubs
// ---------------------------

type stubPool struct {
	mu    sync.Mutex
	rooms []*models.Room

	failSetStatusIf error // when set, SetStatusIf always fails with this
}

func (p *stubPool) ListAvailable() ([]models.Room, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []models.Room
	for _, r := range p.rooms {
		if r.Status == models.RoomStatusAvailable {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (p *stubPool) SetStatus(roomID uint, roomNumber, status string) (models.Room, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, r := range p.rooms {
		if r.ID == roomID && r.RoomNumber == roomNumber {
			r.Status = status
			return *r, nil
		}
	}
	return models.Room{}, ErrRoomNotFound
}

func (p *stubPool) SetStatusIf(roomID uint, roomNumber, expected, status string) (models.Room, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failSetStatusIf != nil {
		return models.Room{}, p.failSetStatusIf
	}
	for _, r := range p.rooms {
		if r.ID == roomID && r.RoomNumber == roomNumber && r.Status == expected {
			r.Status = status
			return *r, nil
		}
	}
	return models.Room{}, ErrRoomNotFound
}

type stubLedger struct {
	mu      sync.Mutex
	nextID  uint
	records map[uint]models.Booking
	deleted []uint

	failDelete error
}

func newStubLedger() *stubLedger {
	return &stubLedger{records: map[uint]models.Booking{}}
}

func (l *stubLedger) Create(b *models.Booking) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	b.ID = l.nextID
	l.records[b.ID] = *b
	return nil
}

func (l *stubLedger) FindActiveByUser(userID uint) ([]models.Booking, error) {
	return nil, nil
}

func (l *stubLedger) FindActiveByUserAndRoom(userID uint, roomNumber string) (models.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, b := range l.records {
		if b.UserID == userID && b.RoomNumber == roomNumber && b.Status == models.BookingStatusConfirmed {
			return b, nil
		}
	}
	return models.Booking{}, ErrBookingNotFound
}

func (l *stubLedger) MarkCancelled(userID uint, roomNumber string) (models.Booking, error) {
	b, err := l.FindActiveByUserAndRoom(userID, roomNumber)
	if err != nil {
		return models.Booking{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	b.Status = models.BookingStatusCancelled
	l.records[b.ID] = b
	return b, nil
}

func (l *stubLedger) UpdateDates(userID uint, roomNumber string, checkIn, checkOut time.Time, stayDuration string) (models.Booking, error) {
	b, err := l.FindActiveByUserAndRoom(userID, roomNumber)
	if err != nil {
		return models.Booking{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	b.CheckIn, b.CheckOut, b.StayDuration = checkIn, checkOut, stayDuration
	l.records[b.ID] = b
	return b, nil
}

func (l *stubLedger) Delete(bookingID uint) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failDelete != nil {
		return l.failDelete
	}
	delete(l.records, bookingID)
	l.deleted = append(l.deleted, bookingID)
	return nil
}

func (l *stubLedger) active() []models.Booking {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.Booking
	for _, b := range l.records {
		if b.Status == models.BookingStatusConfirmed {
			out = append(out, b)
		}
	}
	return out
}

type stubUsers struct{ users map[string]models.User }

func (u *stubUsers) ResolveByEmail(email string) (models.User, error) {
	user, ok := u.users[email]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

func TestCreateBookingRetriesExhaustToConflict(t *testing.T) {
	pool := &stubPool{rooms: []*models.Room{{Model: gorm.Model{ID: 1}, RoomNumber: "R1", Status: models.RoomStatusAvailable}}}
	pool.failSetStatusIf = ErrRoomNotFound
	ledger := newStubLedger()

	svc := NewAllocationService(pool, ledger, &stubUsers{})

	_, err := svc.CreateBooking(7, "2025-06-01", "2025-06-05", 400, nil)
	assert.ErrorIs(t, err, ErrRoomAllocationConflict)

	// Every attempt's booking was compensated away.
	assert.Empty(t, ledger.active())
	assert.Len(t, ledger.deleted, defaultAllocationAttempts)
}

func TestCreateBookingRollsBackOnStorageFailure(t *testing.T) {
	pool := &stubPool{rooms: []*models.Room{{Model: gorm.Model{ID: 1}, RoomNumber: "R1", Status: models.RoomStatusAvailable}}}
	pool.failSetStatusIf = persistenceErr("update room status", assert.AnError)
	ledger := newStubLedger()

	svc := NewAllocationService(pool, ledger, &stubUsers{})

	_, err := svc.CreateBooking(7, "2025-06-01", "2025-06-05", 400, nil)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Empty(t, ledger.active(), "booking rolled back before surfacing the error")
	assert.Len(t, ledger.deleted, 1, "no retry on a storage failure")
}

func TestCreateBookingFailedCompensationEscalates(t *testing.T) {
	pool := &stubPool{rooms: []*models.Room{{Model: gorm.Model{ID: 1}, RoomNumber: "R1", Status: models.RoomStatusAvailable}}}
	pool.failSetStatusIf = ErrRoomNotFound
	ledger := newStubLedger()
	ledger.failDelete = assert.AnError

	svc := NewAllocationService(pool, ledger, &stubUsers{})

	_, err := svc.CreateBooking(7, "2025-06-01", "2025-06-05", 400, nil)
	assert.ErrorIs(t, err, ErrDataIntegrity)
}

func TestConcurrentCreateSingleRoom(t *testing.T) {
	pool := &stubPool{rooms: []*models.Room{{Model: gorm.Model{ID: 1}, RoomNumber: "R1", Status: models.RoomStatusAvailable}}}
	ledger := newStubLedger()

	svc := NewAllocationService(pool, ledger, &stubUsers{})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateBooking(uint(i+1), "2025-06-01", "2025-06-05", 400, nil)
		}(i)
	}
	wg.Wait()

	var successes int
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		// The loser either saw the emptied pool or burned its retries.
		assert.True(t,
			errors.Is(err, ErrNoAvailableRooms) || errors.Is(err, ErrRoomAllocationConflict),
			"unexpected loser error: %v", err)
	}
	assert.Equal(t, 1, successes, "exactly one create may win the room")
	assert.Len(t, ledger.active(), 1, "never two confirmed bookings on one room")
}
