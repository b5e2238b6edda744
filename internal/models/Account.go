package models

import "gorm.io/gorm"

// Roles an account can unlock with its PIN.
const (
	RoleSuper = "Super"
	RoleAdmin = "Admin"
)

// Account holds a bcrypt-hashed PIN for the lock screen. Seeded from config.
type Account struct {
	gorm.Model
	Pin  string `json:"-" gorm:"not null"`
	Role string `json:"role" gorm:"uniqueIndex;not null"`
}
