package services

import (
	"errors"

	"hotel-reservation/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoomRegistry owns the Room inventory. It never touches bookings; keeping
// both sides of an allocation consistent is the AllocationService's job.
type RoomRegistry struct {
	DB *gorm.DB
}

func NewRoomRegistry(db *gorm.DB) *RoomRegistry {
	return &RoomRegistry{DB: db}
}

// Create adds a room to the inventory. New rooms start Available unless the
// caller says otherwise.
func (r *RoomRegistry) Create(room *models.Room) error {
	if room.RoomUID == "" {
		room.RoomUID = uuid.NewString()
	}
	if room.RoomType == "" {
		room.RoomType = models.RoomTypeSingle
	}
	if room.Status == "" {
		room.Status = models.RoomStatusAvailable
	}
	if err := r.DB.Create(room).Error; err != nil {
		return persistenceErr("create room", err)
	}
	return nil
}

func (r *RoomRegistry) ListAll() ([]models.Room, error) {
	var rooms []models.Room
	if err := r.DB.Order("room_number ASC").Find(&rooms).Error; err != nil {
		return nil, persistenceErr("list rooms", err)
	}
	return rooms, nil
}

// ListAvailable returns the allocation candidate pool.
func (r *RoomRegistry) ListAvailable() ([]models.Room, error) {
	var rooms []models.Room
	if err := r.DB.Where("status = ?", models.RoomStatusAvailable).Find(&rooms).Error; err != nil {
		return nil, persistenceErr("list available rooms", err)
	}
	return rooms, nil
}

func (r *RoomRegistry) GetByID(id uint) (models.Room, error) {
	var room models.Room
	if err := r.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Room{}, ErrRoomNotFound
		}
		return models.Room{}, persistenceErr("get room", err)
	}
	return room, nil
}

// SetStatus updates a room's status, matched by both id and room number so a
// stale caller cannot act on a room whose identity changed underneath it.
func (r *RoomRegistry) SetStatus(roomID uint, roomNumber, status string) (models.Room, error) {
	res := r.DB.Model(&models.Room{}).
		Where("id = ? AND room_number = ?", roomID, roomNumber).
		Update("status", status)
	return r.afterStatusWrite(roomID, res)
}

// SetStatusIf is the conditional variant used when committing an allocation:
// the write only lands if the room's status is still expected at write time.
// A zero-row match reports ErrRoomNotFound; for a room that was Available a
// moment ago that means the race was lost.
func (r *RoomRegistry) SetStatusIf(roomID uint, roomNumber, expected, status string) (models.Room, error) {
	res := r.DB.Model(&models.Room{}).
		Where("id = ? AND room_number = ? AND status = ?", roomID, roomNumber, expected).
		Update("status", status)
	return r.afterStatusWrite(roomID, res)
}

func (r *RoomRegistry) afterStatusWrite(roomID uint, res *gorm.DB) (models.Room, error) {
	if res.Error != nil {
		return models.Room{}, persistenceErr("update room status", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.Room{}, ErrRoomNotFound
	}
	var room models.Room
	if err := r.DB.First(&room, roomID).Error; err != nil {
		return models.Room{}, persistenceErr("reload room", err)
	}
	return room, nil
}
