package repo

import (
	"PassLocker/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

// UserRepository определяет контракт доступа к учётным записям для слоя сервиса.
type UserRepository interface {
	CreateUser(ctx context.Context, u *model.User) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByUID(ctx context.Context, uid string) (*model.User, error)
	// SetEmailVerified помечает email подтверждённым.
	SetEmailVerified(ctx context.Context, uid string) error
	SetLastSignIn(ctx context.Context, uid string, at time.Time) error
	// DeleteUser удаляет учётную запись вместе с её документами.
	DeleteUser(ctx context.Context, uid string) error
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository создаёт реализацию репозитория для User.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) GetUserByUID(ctx context.Context, uid string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) SetEmailVerified(ctx context.Context, uid string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("uid = ?", uid).
		Update("email_verified", true).Error
}

func (r *userRepo) SetLastSignIn(ctx context.Context, uid string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("uid = ?", uid).
		Update("last_sign_in", at).Error
}

func (r *userRepo) DeleteUser(ctx context.Context, uid string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_uid = ?", uid).Delete(&model.Locker{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_uid = ?", uid).Delete(&model.Pin{}).Error; err != nil {
			return err
		}
		return tx.Where("uid = ?", uid).Delete(&model.User{}).Error
	})
}
