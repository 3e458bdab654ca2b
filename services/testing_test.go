package services

import (
	"fmt"
	"testing"

	"hotel-reservation/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database per test and migrates the
// schema. A single connection keeps the named in-memory store alive for the
// duration of the test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Room{}, &models.Booking{}))
	return db
}

func seedRoom(t *testing.T, db *gorm.DB, number, status string) models.Room {
	t.Helper()

	room := models.Room{
		HotelName:  "Grand Meridian",
		RoomNumber: number,
		RoomType:   models.RoomTypeDouble,
		Status:     status,
		Price:      140,
		Capacity:   2,
	}
	require.NoError(t, db.Create(&room).Error)
	return room
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()

	user := models.User{
		UID:      "test-" + email,
		Name:     "Test Guest",
		Email:    email,
		Password: "x",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}
