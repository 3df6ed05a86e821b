package model

import "time"

// User — учётная запись в эмуляторе identity-провайдера.
type User struct {
	UID          string `gorm:"primaryKey;type:uuid"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash []byte `gorm:"not null"`
	DisplayName  string

	EmailVerified bool      `gorm:"not null;default:false"`
	LastSignIn    time.Time // zero until the first successful sign-in

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
