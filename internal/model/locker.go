package model

import "time"

// Locker — серверный документ записи пользователя. Поле Password хранится
// только в зашифрованном виде; сервер никогда не видит открытый текст.
type Locker struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	UserUID string `gorm:"not null;index" json:"-"`

	// Связи
	User *User `gorm:"foreignKey:UserUID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Name     string `gorm:"not null" json:"name"`
	Username string `json:"username"`
	Password string `json:"password"` // ciphertext, opaque to the backend

	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

// Pin — единственный на пользователя документ с зашифрованным PIN.
type Pin struct {
	UserUID string `gorm:"primaryKey;type:uuid" json:"-"`
	Value   string `gorm:"not null" json:"value"` // ciphertext

	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}
