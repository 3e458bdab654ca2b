package services

import (
	"errors"
	"strings"
	"time"

	"hotel-reservation/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService handles registration, login and identity resolution. It sits
// outside the reservation core; the allocator only consumes ResolveByEmail.
type UserService struct {
	DB        *gorm.DB
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewUserService(db *gorm.DB, jwtSecret string) *UserService {
	return &UserService{
		DB:        db,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  24 * time.Hour,
	}
}

// Register creates a new user with a hashed password and a generated uid.
func (s *UserService) Register(name, email, mobile, password string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var existing models.User
	err := s.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return models.User{}, ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, persistenceErr("check existing user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, persistenceErr("hash password", err)
	}

	user := models.User{
		UID:      uuid.NewString(),
		Name:     name,
		Email:    email,
		Mobile:   mobile,
		Password: string(hash),
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return models.User{}, persistenceErr("create user", err)
	}
	return user, nil
}

// Login checks credentials and issues a signed bearer token.
func (s *UserService) Login(email, password string) (string, models.User, error) {
	user, err := s.ResolveByEmail(email)
	if err != nil {
		return "", models.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", models.User{}, ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"uid":   user.UID,
		"name":  user.Name,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", models.User{}, persistenceErr("sign token", err)
	}
	return token, user, nil
}

// ResolveByEmail maps a guest email to the stored user record.
func (s *UserService) ResolveByEmail(email string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, persistenceErr("resolve user", err)
	}
	return user, nil
}
