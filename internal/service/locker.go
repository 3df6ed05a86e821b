package service

import (
	"PassLocker/internal/model"
	"PassLocker/internal/repo"
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrLockerNotFound возвращается для операций над несуществующим документом.
var ErrLockerNotFound = errors.New("locker not found")

// LockerPatch — частичное обновление: nil-поля не меняются.
type LockerPatch struct {
	Name     *string
	Username *string
	Password *string
}

// LockerService хранит документы пользователей и рассылает live-снимки
// watch-подписчикам. Каждая мутация порождает полный снимок коллекции,
// упорядоченный по имени.
type LockerService struct {
	lockers repo.LockerRepository
	pins    repo.PinRepository

	mu      sync.Mutex
	subs    map[string]map[int]chan []model.Locker // uid -> подписчики
	nextSub int
}

func NewLockerService(lockers repo.LockerRepository, pins repo.PinRepository) *LockerService {
	return &LockerService{
		lockers: lockers,
		pins:    pins,
		subs:    map[string]map[int]chan []model.Locker{},
	}
}

// List возвращает снимок коллекции пользователя, упорядоченный по имени.
func (s *LockerService) List(ctx context.Context, uid string) ([]model.Locker, error) {
	return s.lockers.ListByUser(ctx, uid)
}

// Create добавляет документ и назначает ему uuid.
func (s *LockerService) Create(ctx context.Context, uid string, l model.Locker) (*model.Locker, error) {
	l.ID = uuid.NewString()
	l.UserUID = uid
	if err := s.lockers.Create(ctx, &l); err != nil {
		return nil, err
	}
	s.broadcast(ctx, uid)
	return &l, nil
}

// Update применяет частичное обновление (last write wins).
func (s *LockerService) Update(ctx context.Context, uid, id string, patch LockerPatch) error {
	l, err := s.lockers.Get(ctx, uid, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLockerNotFound
		}
		return err
	}
	if patch.Name != nil {
		l.Name = *patch.Name
	}
	if patch.Username != nil {
		l.Username = *patch.Username
	}
	if patch.Password != nil {
		l.Password = *patch.Password
	}
	if err := s.lockers.Save(ctx, l); err != nil {
		return err
	}
	s.broadcast(ctx, uid)
	return nil
}

// Delete удаляет документ. Отсутствие id — ErrLockerNotFound.
func (s *LockerService) Delete(ctx context.Context, uid, id string) error {
	if _, err := s.lockers.Get(ctx, uid, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLockerNotFound
		}
		return err
	}
	if err := s.lockers.Delete(ctx, uid, id); err != nil {
		return err
	}
	s.broadcast(ctx, uid)
	return nil
}

// GetPin читает PIN-документ пользователя.
func (s *LockerService) GetPin(ctx context.Context, uid string) (*model.Pin, error) {
	p, err := s.pins.GetPin(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLockerNotFound
		}
		return nil, err
	}
	return p, nil
}

// PutPin создаёт или заменяет PIN-документ.
func (s *LockerService) PutPin(ctx context.Context, uid, value string) error {
	return s.pins.PutPin(ctx, uid, value)
}

// Subscribe регистрирует watch-подписчика. Первый снимок кладётся в канал
// сразу; дальше — после каждой мутации. Возвращённая функция отписывает
// и закрывает канал.
func (s *LockerService) Subscribe(ctx context.Context, uid string) (<-chan []model.Locker, func(), error) {
	snapshot, err := s.lockers.ListByUser(ctx, uid)
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan []model.Locker, 8)
	ch <- snapshot

	s.mu.Lock()
	s.nextSub++
	id := s.nextSub
	if s.subs[uid] == nil {
		s.subs[uid] = map[int]chan []model.Locker{}
	}
	s.subs[uid][id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if subs, ok := s.subs[uid]; ok {
			if _, ok := subs[id]; ok {
				delete(subs, id)
				close(ch)
			}
			if len(subs) == 0 {
				delete(s.subs, uid)
			}
		}
		s.mu.Unlock()
	}
	return ch, cancel, nil
}

// broadcast отправляет свежий снимок всем подписчикам uid. Медленный
// подписчик с полным каналом пропускает снимок: следующий его догонит.
func (s *LockerService) broadcast(ctx context.Context, uid string) {
	snapshot, err := s.lockers.ListByUser(ctx, uid)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs[uid] {
		select {
		case ch <- snapshot:
		default:
		}
	}
}
