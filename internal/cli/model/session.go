package model

import "time"

// SessionUser — идентичность текущей сессии, прочитанная из claims ID-токена.
// Read-only для клиента: источником истины является identity-провайдер.
type SessionUser struct {
	UID           string
	Email         string
	EmailVerified bool
	DisplayName   string
	LastSignIn    time.Time
}
