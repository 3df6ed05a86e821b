package bootstrap

import (
	"context"
	"fmt"

	"PassLocker/internal/cli/api"
	"PassLocker/internal/cli/auth"
	"PassLocker/internal/cli/model"
	fsrepo "PassLocker/internal/cli/repo/fs"
	"PassLocker/internal/cli/service"
	"PassLocker/internal/config"
)

// Session — собранный контекст аутентифицированной работы CLI:
// текущий пользователь и готовые к использованию сервисы поверх его токена.
type Session struct {
	User     *model.SessionUser
	Token    string
	Identity *api.IdentityClient
	Lockers  *service.LockerService
	Pins     *service.PinService
}

// OpenSession восстанавливает сессию из сохранённого токена и собирает
// сервисный граф. PIN-документ загружается сразу, чтобы гейт знал своё
// состояние до первой защищённой операции.
func OpenSession(ctx context.Context, cfg *config.Config) (*Session, error) {
	token, err := (fsrepo.AuthFSStore{Path: cfg.TokenFile}).Load()
	if err != nil {
		return nil, fmt.Errorf("нет активной сессии: выполните login/register: %w", err)
	}
	user, err := auth.ParseSession(token)
	if err != nil {
		return nil, fmt.Errorf("сохранённый токен повреждён, выполните login заново: %w", err)
	}

	identity := api.NewIdentityClient(cfg.ServerURL)
	identity.Token = token
	lockers := api.NewLockerClient(cfg.ServerURL, token)

	pins := service.NewPinService(lockers, identity, cfg.EncryptionKey, user.UID)
	if err := pins.Load(ctx); err != nil {
		return nil, err
	}

	return &Session{
		User:     user,
		Token:    token,
		Identity: identity,
		Lockers:  service.NewLockerService(lockers, cfg.EncryptionKey, nil),
		Pins:     pins,
	}, nil
}
