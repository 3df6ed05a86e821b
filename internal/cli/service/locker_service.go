package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"PassLocker/internal/cli/crypto"
	"PassLocker/internal/cli/model"
	view "PassLocker/internal/cli/model/view"
	"PassLocker/internal/cli/repo"
)

// LockerService — юзкейс-уровень работы с lockers. Шифрует пароль перед
// отправкой на бэкенд и расшифровывает его только на границе представления.
type LockerService struct {
	store repo.LockerStore
	key   string
	log   *zap.SugaredLogger
}

func NewLockerService(store repo.LockerStore, key string, log *zap.SugaredLogger) *LockerService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &LockerService{store: store, key: key, log: log}
}

// Create шифрует пароль и создаёт документ. id назначает бэкенд.
func (s *LockerService) Create(ctx context.Context, uid, name, username, password string) (string, error) {
	if name == "" {
		return "", errors.New("name is required")
	}
	ct, err := crypto.Encrypt(password, s.key)
	if err != nil {
		return "", fmt.Errorf("encrypt password: %w", err)
	}
	id, err := s.store.Create(ctx, uid, model.Locker{Name: name, Username: username, Password: ct})
	if err != nil {
		s.log.Errorw("create locker failed", "uid", uid, "error", err)
		return "", err
	}
	return id, nil
}

// Update применяет частичное обновление. Неуказанные (nil) поля не меняются;
// пароль, если задан, шифруется здесь — выше этого слоя он открытый текст.
func (s *LockerService) Update(ctx context.Context, uid, id string, name, username, password *string) error {
	patch := model.LockerPatch{Name: name, Username: username}
	if password != nil {
		ct, err := crypto.Encrypt(*password, s.key)
		if err != nil {
			return fmt.Errorf("encrypt password: %w", err)
		}
		patch.Password = &ct
	}
	if err := s.store.Update(ctx, uid, id, patch); err != nil {
		s.log.Errorw("update locker failed", "uid", uid, "id", id, "error", err)
		return err
	}
	return nil
}

// Delete удаляет документ; отсутствие id не считается ошибкой.
func (s *LockerService) Delete(ctx context.Context, uid, id string) error {
	if err := s.store.Delete(ctx, uid, id); err != nil {
		s.log.Errorw("delete locker failed", "uid", uid, "id", id, "error", err)
		return err
	}
	return nil
}

// List возвращает снимок коллекции, подготовленный для отображения.
func (s *LockerService) List(ctx context.Context, uid string) ([]view.DecryptedLocker, error) {
	lockers, err := s.store.List(ctx, uid)
	if err != nil {
		s.log.Errorw("list lockers failed", "uid", uid, "error", err)
		return nil, err
	}
	return s.Present(lockers), nil
}

// Present расшифровывает пароли для отображения. Ошибка расшифровки одной
// записи не трогает остальные: её пароль остаётся шифртекстом и запись
// помечается как деградированная.
func (s *LockerService) Present(lockers []model.Locker) []view.DecryptedLocker {
	out := make([]view.DecryptedLocker, 0, len(lockers))
	for _, l := range lockers {
		dto := view.DecryptedLocker{ID: l.ID, Name: l.Name, Username: l.Username}
		plain, err := crypto.Decrypt(l.Password, s.key)
		if err != nil {
			s.log.Warnw("locker password decrypt failed, showing ciphertext", "id", l.ID)
			dto.Password = l.Password
			dto.Degraded = true
		} else {
			dto.Password = plain
		}
		out = append(out, dto)
	}
	return out
}

// Subscribe открывает live-подписку и отдаёт потребителю уже расшифрованные
// снимки. Каждый снимок — полная замена предыдущего состояния.
func (s *LockerService) Subscribe(ctx context.Context, uid string, onUpdate func([]view.DecryptedLocker), onError func(error)) (func(), error) {
	return s.store.Subscribe(ctx, uid,
		func(lockers []model.Locker) {
			onUpdate(s.Present(lockers))
		},
		func(err error) {
			s.log.Errorw("locker subscription error", "uid", uid, "error", err)
			if onError != nil {
				onError(err)
			}
		})
}
