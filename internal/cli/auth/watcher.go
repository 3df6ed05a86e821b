package auth

import (
	"sync"

	"PassLocker/internal/cli/model"
)

// Watcher рассылает изменения состояния сессии (вход/выход). Каждый новый
// подписчик сразу получает текущее состояние, затем — каждое изменение.
// nil означает "не аутентифицирован".
type Watcher struct {
	mu      sync.Mutex
	current *model.SessionUser
	subs    map[int]func(*model.SessionUser)
	nextID  int
}

func NewWatcher(initial *model.SessionUser) *Watcher {
	return &Watcher{current: initial, subs: make(map[int]func(*model.SessionUser))}
}

// Current возвращает последнее известное состояние сессии.
func (w *Watcher) Current() *model.SessionUser {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// OnAuthStateChanged регистрирует колбэк и немедленно вызывает его с текущим
// состоянием. Возвращает функцию отписки; после её вызова колбэк больше
// не срабатывает.
func (w *Watcher) OnAuthStateChanged(cb func(*model.SessionUser)) func() {
	w.mu.Lock()
	id := w.nextID
	w.nextID++
	w.subs[id] = cb
	current := w.current
	w.mu.Unlock()

	cb(current)

	return func() {
		w.mu.Lock()
		delete(w.subs, id)
		w.mu.Unlock()
	}
}

// Set фиксирует новое состояние сессии и уведомляет подписчиков.
func (w *Watcher) Set(u *model.SessionUser) {
	w.mu.Lock()
	w.current = u
	cbs := make([]func(*model.SessionUser), 0, len(w.subs))
	for _, cb := range w.subs {
		cbs = append(cbs, cb)
	}
	w.mu.Unlock()

	for _, cb := range cbs {
		cb(u)
	}
}
