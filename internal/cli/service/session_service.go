package service

import (
	"context"
	"errors"

	"PassLocker/internal/cli/auth"
	"PassLocker/internal/cli/model"
	"PassLocker/internal/cli/repo"
)

// ErrEmailNotVerified возвращается при попытке входа до подтверждения email.
var ErrEmailNotVerified = errors.New("email is not verified")

// IdentitySigner — часть identity-границы, нужная сессионному сервису.
type IdentitySigner interface {
	SignIn(ctx context.Context, email, password string) (string, error)
}

// SessionService управляет жизненным циклом сессии: вход, выход, текущее
// состояние. Изменения транслируются подписчикам через auth.Watcher.
type SessionService struct {
	identity IdentitySigner
	tokens   repo.TokenStore
	watcher  *auth.Watcher
}

func NewSessionService(identity IdentitySigner, tokens repo.TokenStore, watcher *auth.Watcher) *SessionService {
	if watcher == nil {
		watcher = auth.NewWatcher(nil)
	}
	return &SessionService{identity: identity, tokens: tokens, watcher: watcher}
}

// Watcher возвращает рассыльщик auth-состояния для подписок UI.
func (s *SessionService) Watcher() *auth.Watcher { return s.watcher }

// Login обменивает учётные данные на сессию. Вход с неподтверждённым email
// отклоняется, токен при этом не сохраняется.
func (s *SessionService) Login(ctx context.Context, email, password string) (*model.SessionUser, error) {
	token, err := s.identity.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	u, err := auth.ParseSession(token)
	if err != nil {
		return nil, err
	}
	if !u.EmailVerified {
		return nil, ErrEmailNotVerified
	}
	if err := s.tokens.Save(token); err != nil {
		return nil, err
	}
	s.watcher.Set(u)
	return u, nil
}

// Logout очищает локальный контекст аутентификации.
func (s *SessionService) Logout() error {
	if err := s.tokens.Clear(); err != nil {
		return err
	}
	s.watcher.Set(nil)
	return nil
}

// Current возвращает текущую сессию и её токен из локального хранилища.
func (s *SessionService) Current() (*model.SessionUser, string, error) {
	token, err := s.tokens.Load()
	if err != nil {
		return nil, "", err
	}
	u, err := auth.ParseSession(token)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}
