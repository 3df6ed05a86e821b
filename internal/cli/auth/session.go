package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"PassLocker/internal/cli/model"
)

// Claims — клиентское представление claims ID-токена. Подпись токена клиент
// не проверяет: токен — слово identity-провайдера, клиент лишь читает его
// (так же ведут себя SDK hosted-auth провайдеров).
type Claims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	DisplayName   string `json:"name"`
	LastSignIn    int64  `json:"last_sign_in,omitempty"` // unix seconds
	jwt.RegisteredClaims
}

// ParseSession извлекает идентичность сессии из ID-токена.
func ParseSession(token string) (*model.SessionUser, error) {
	if token == "" {
		return nil, errors.New("empty token")
	}
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	u := &model.SessionUser{
		UID:           claims.Subject,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		DisplayName:   claims.DisplayName,
	}
	if claims.LastSignIn > 0 {
		u.LastSignIn = time.Unix(claims.LastSignIn, 0).UTC()
	}
	return u, nil
}
