package repo

import (
	"context"

	"PassLocker/internal/cli/model"
)

// LockerStore определяет контракт document-границы для слоя сервисов.
// Все операции скоупятся на uid владельца; Password в записях — шифртекст.
type LockerStore interface {
	List(ctx context.Context, uid string) ([]model.Locker, error)
	Create(ctx context.Context, uid string, l model.Locker) (string, error)
	Update(ctx context.Context, uid, id string, patch model.LockerPatch) error
	Delete(ctx context.Context, uid, id string) error

	// Subscribe открывает live-подписку: полные снимки коллекции в порядке
	// имени; ошибки потока идут в onError и не отменяют подписку неявно.
	Subscribe(ctx context.Context, uid string, onUpdate func([]model.Locker), onError func(error)) (func(), error)
}

// PinStore определяет контракт singleton-документа PIN.
type PinStore interface {
	GetPin(ctx context.Context, uid string) (value string, exists bool, err error)
	PutPin(ctx context.Context, uid, value string) error
}
