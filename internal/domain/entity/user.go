package entity

import "time"

// User usuario de la API (solo para los endpoints protegidos).
type User struct {
	ID           int64
	Email        string // único
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
