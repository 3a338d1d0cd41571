package models

import "gorm.io/gorm"

// User represents a user account in the system.
type User struct {
	gorm.Model
	Username     string `gorm:"size:255;unique;not null"`
	FullName     string `gorm:"size:255;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	AccountType  string `gorm:"size:50;not null;default:'personal'"`
	Bio          string `gorm:"size:1000"`
	Avatar       string `gorm:"size:512"`
	Banner       string `gorm:"size:512"`

	// SignupIP is the client address recorded at registration.
	SignupIP string `gorm:"size:64"`

	// RefreshToken is the refresh token currently bound to this account.
	// It is replaced on rotation and cleared on revocation.
	RefreshToken string `gorm:"size:512"`
	DeviceID     string `gorm:"size:64"`
	DeviceName   string `gorm:"size:255"`
}
