package repo

import (
	"PassLocker/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LockerRepository — контракт доступа к документам lockers.
type LockerRepository interface {
	// ListByUser возвращает документы пользователя, упорядоченные по имени.
	ListByUser(ctx context.Context, uid string) ([]model.Locker, error)
	Create(ctx context.Context, l *model.Locker) error
	Get(ctx context.Context, uid, id string) (*model.Locker, error)
	Save(ctx context.Context, l *model.Locker) error
	Delete(ctx context.Context, uid, id string) error
}

// PinRepository — контракт доступа к singleton-документу PIN.
type PinRepository interface {
	GetPin(ctx context.Context, uid string) (*model.Pin, error)
	// PutPin создаёт или заменяет PIN-документ (last write wins).
	PutPin(ctx context.Context, uid, value string) error
}

type lockerRepo struct {
	db *gorm.DB
}

// NewLockerRepository создаёт реализацию репозитория для Locker и Pin.
func NewLockerRepository(db *gorm.DB) *lockerRepo {
	return &lockerRepo{db: db}
}

func (r *lockerRepo) ListByUser(ctx context.Context, uid string) ([]model.Locker, error) {
	var lockers []model.Locker
	err := r.db.WithContext(ctx).
		Where("user_uid = ?", uid).
		Order("name ASC").
		Find(&lockers).Error
	if err != nil {
		return nil, err
	}
	return lockers, nil
}

func (r *lockerRepo) Create(ctx context.Context, l *model.Locker) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *lockerRepo) Get(ctx context.Context, uid, id string) (*model.Locker, error) {
	var l model.Locker
	err := r.db.WithContext(ctx).Where("user_uid = ? AND id = ?", uid, id).First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *lockerRepo) Save(ctx context.Context, l *model.Locker) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *lockerRepo) Delete(ctx context.Context, uid, id string) error {
	return r.db.WithContext(ctx).Where("user_uid = ? AND id = ?", uid, id).
		Delete(&model.Locker{}).Error
}

func (r *lockerRepo) GetPin(ctx context.Context, uid string) (*model.Pin, error) {
	var p model.Pin
	err := r.db.WithContext(ctx).Where("user_uid = ?", uid).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *lockerRepo) PutPin(ctx context.Context, uid, value string) error {
	p := &model.Pin{UserUID: uid, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_uid"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(p).Error
}
