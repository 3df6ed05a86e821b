package service

import (
	"context"
	"errors"
)

// ErrNoAccount — сброс пароля запрошен для незарегистрированного адреса.
var ErrNoAccount = errors.New("No account found with this email address")

// ResetGateway — часть identity-границы для сброса пароля учётной записи.
type ResetGateway interface {
	LookupByEmail(ctx context.Context, email string) (bool, error)
	SendPasswordReset(ctx context.Context, email string) error
}

// RequestPasswordReset отправляет письмо сброса пароля, предварительно
// проверяя существование учётной записи, чтобы не слать письма в никуда.
func RequestPasswordReset(ctx context.Context, identity ResetGateway, email string) error {
	exists, err := identity.LookupByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNoAccount
	}
	return identity.SendPasswordReset(ctx, email)
}
