package service

import (
	"PassLocker/internal/middleware"
	"PassLocker/internal/model"
	"PassLocker/internal/repo"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Ошибки identity-логики, на которые хендлеры мапят HTTP-статусы.
var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrUserNotFound = errors.New("user not found")
	ErrBadPassword  = errors.New("invalid password")
)

// TokenTTL — время жизни выпускаемых ID-токенов.
const TokenTTL = time.Hour

// UserService инкапсулирует identity-логику эмулятора: регистрация,
// вход, выпуск ID-токенов, подтверждение email.
type UserService struct {
	repo   repo.UserRepository
	secret string
}

func NewUserService(r repo.UserRepository, secret string) *UserService {
	return &UserService{repo: r, secret: secret}
}

// Register создаёт пользователя с bcrypt-хешем пароля.
// Email нового пользователя не подтверждён.
func (s *UserService) Register(ctx context.Context, email, password, displayName string) (*model.User, error) {
	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		UID:          uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
	}
	return s.repo.CreateUser(ctx, u)
}

// Login проверяет учётные данные и фиксирует время входа.
func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return nil, ErrBadPassword
	}
	now := time.Now()
	if err := s.repo.SetLastSignIn(ctx, u.UID, now); err != nil {
		return nil, err
	}
	u.LastSignIn = now
	return u, nil
}

// Reauthenticate повторно проверяет пароль уже вошедшего пользователя.
func (s *UserService) Reauthenticate(ctx context.Context, uid, password string) error {
	u, err := s.repo.GetUserByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return ErrBadPassword
	}
	return nil
}

// MintToken выпускает ID-токен с актуальными claims пользователя.
func (s *UserService) MintToken(u *model.User) (string, error) {
	claims := middleware.TokenClaims{
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		DisplayName:   u.DisplayName,
	}
	if !u.LastSignIn.IsZero() {
		claims.LastSignIn = u.LastSignIn.Unix()
	}
	return middleware.BuildToken(s.secret, u.UID, claims, TokenTTL)
}

// GetByUID возвращает пользователя (для reload и emulator-эндпоинтов).
func (s *UserService) GetByUID(ctx context.Context, uid string) (*model.User, error) {
	u, err := s.repo.GetUserByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// Exists сообщает, зарегистрирован ли email.
func (s *UserService) Exists(ctx context.Context, email string) (bool, error) {
	_, err := s.repo.GetUserByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// VerifyEmail помечает email подтверждённым (dev-аналог клика по ссылке).
func (s *UserService) VerifyEmail(ctx context.Context, email string) error {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.repo.SetEmailVerified(ctx, u.UID)
}

// Delete удаляет учётную запись вместе с документами.
func (s *UserService) Delete(ctx context.Context, uid string) error {
	return s.repo.DeleteUser(ctx, uid)
}
