package dto

import "github.com/otabek/davomat/internal/app/models"

// LoginRequest carries user credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@davomat.app"`
	Password string `json:"password" binding:"required" example:"secret"`
}

// LoginResponse carries the issued access token
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expiresIn" example:"3600"`
	User      *models.User `json:"user"`
}
