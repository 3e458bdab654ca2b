package controllers

import (
	"errors"
	"log"
	"net/http"

	"hotel-reservation/services"
	"hotel-reservation/utils"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Mobile   string `json:"mobile"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserController struct {
	Users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

// Register creates a new guest account.
func (uc *UserController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := uc.Users.Register(req.Name, req.Email, req.Mobile, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			utils.JSONError(c, http.StatusConflict, "User already exists")
			return
		}
		log.Printf("user registration failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Registration failed, please try again later")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, "User registered successfully", user)
}

// Login checks credentials and returns a bearer token.
func (uc *UserController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	token, user, err := uc.Users.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			utils.JSONError(c, http.StatusNotFound, "You are not registered")
		case errors.Is(err, services.ErrInvalidCredentials):
			utils.JSONError(c, http.StatusUnauthorized, "Invalid email or password")
		default:
			log.Printf("login failed: %v", err)
			utils.JSONError(c, http.StatusInternalServerError, "Login failed, please try again later")
		}
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user":  user,
	})
}
