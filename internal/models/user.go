// internal/models/user.go
package models

import (
	"strconv"
	"time"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	FullName     string `gorm:"not null" json:"full_name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	IsAdmin      bool   `gorm:"not null;default:false" json:"is_admin"`

	TOTPSecret  string `json:"-"`
	TOTPEnabled bool   `gorm:"not null;default:false" json:"totp_enabled"`

	CreatedAt time.Time `json:"created_at"`
}

// EmployeeID is the opaque identifier the ledger keys records by.
func (u *User) EmployeeID() string {
	return strconv.FormatUint(uint64(u.ID), 10)
}
