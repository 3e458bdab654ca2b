package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"hotel-reservation/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "hotel_reservation")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// Connect opens the MySQL connection, runs migrations and seeds the room
// inventory. The handle is returned to the caller, which owns its lifecycle;
// nothing here keeps package-global state.
func Connect() (*gorm.DB, error) {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return nil, err
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Booking{},
	); err != nil {
		return nil, err
	}

	SeedRooms(db)
	return db, nil
}

// Close releases the underlying sql.DB. Called on shutdown.
func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("warning: cannot get raw sql.DB for close: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("warning: closing database: %v", err)
	}
}

// SeedRooms loads a starter inventory on an empty database so the allocation
// pool is never empty on first boot. Idempotent.
func SeedRooms(db *gorm.DB) {
	var count int64
	db.Model(&models.Room{}).Count(&count)
	if count > 0 {
		return
	}

	hotel := envOrDefault("HOTEL_NAME", "Grand Meridian")
	rooms := []models.Room{
		{HotelName: hotel, RoomNumber: "101", RoomType: models.RoomTypeSingle, Status: models.RoomStatusAvailable, Price: 90, Capacity: 1, Description: "Single room, garden view"},
		{HotelName: hotel, RoomNumber: "102", RoomType: models.RoomTypeSingle, Status: models.RoomStatusAvailable, Price: 90, Capacity: 1, Description: "Single room, street view"},
		{HotelName: hotel, RoomNumber: "201", RoomType: models.RoomTypeDouble, Status: models.RoomStatusAvailable, Price: 140, Capacity: 2, Description: "Double room, balcony"},
		{HotelName: hotel, RoomNumber: "202", RoomType: models.RoomTypeDouble, Status: models.RoomStatusAvailable, Price: 140, Capacity: 2, Description: "Double room, courtyard"},
		{HotelName: hotel, RoomNumber: "301", RoomType: models.RoomTypeSuite, Status: models.RoomStatusAvailable, Price: 260, Capacity: 4, Description: "Corner suite"},
	}
	if err := db.Create(&rooms).Error; err != nil {
		log.Printf("warning: failed to seed rooms: %v", err)
		return
	}
	log.Println("Room inventory seeded")
}
