package model

import (
	"time"

	"github.com/google/uuid"
)

// User owns recipes and is identified by a unique email address.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Credentials is the register/login request payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	Message string    `json:"message"`
	UserID  uuid.UUID `json:"userId"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"accessToken"`
}
