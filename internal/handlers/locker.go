package handlers

import (
	"PassLocker/internal/middleware"
	"PassLocker/internal/model"
	"PassLocker/internal/service"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LockerHandler обрабатывает document-эндпоинты: lockers, PIN и watch.
type LockerHandler struct {
	LockerService *service.LockerService
	Logger        *zap.SugaredLogger
}

// NewLockerHandler создаёт хендлер lockers
func NewLockerHandler(lockerService *service.LockerService, logger *zap.SugaredLogger) *LockerHandler {
	return &LockerHandler{LockerService: lockerService, Logger: logger}
}

// RequireOwner пускает только владельца поддерева: uid пути должен
// совпадать с uid токена. Чужой uid — 403.
func (h *LockerHandler) RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.GetUIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if chi.URLParam(r, "uid") != uid {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// List отдаёт снимок коллекции, упорядоченный по имени.
func (h *LockerHandler) List(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	list, err := h.LockerService.List(r.Context(), uid)
	if err != nil {
		h.Logger.Errorw("list lockers failed", "uid", uid, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// Create добавляет документ; id назначает сервер.
func (h *LockerHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	var l model.Locker
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil || l.Name == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	created, err := h.LockerService.Create(r.Context(), uid, l)
	if err != nil {
		h.Logger.Errorw("create locker failed", "uid", uid, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"id": created.ID})
}

type lockerPatchRequest struct {
	Name     *string `json:"name,omitempty"`
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
}

// Update применяет частичное обновление документа.
func (h *LockerHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	id := chi.URLParam(r, "id")
	var req lockerPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	err := h.LockerService.Update(r.Context(), uid, id, service.LockerPatch{
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrLockerNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		h.Logger.Errorw("update locker failed", "uid", uid, "id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete удаляет документ.
func (h *LockerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	id := chi.URLParam(r, "id")
	if err := h.LockerService.Delete(r.Context(), uid, id); err != nil {
		if errors.Is(err, service.ErrLockerNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		h.Logger.Errorw("delete locker failed", "uid", uid, "id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetPin читает PIN-документ. 404, если PIN ещё не задан.
func (h *LockerHandler) GetPin(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	p, err := h.LockerService.GetPin(r.Context(), uid)
	if err != nil {
		if errors.Is(err, service.ErrLockerNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		h.Logger.Errorw("get pin failed", "uid", uid, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// PutPin создаёт или заменяет PIN-документ.
func (h *LockerHandler) PutPin(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	var req struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Value == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := h.LockerService.PutPin(r.Context(), uid, req.Value); err != nil {
		h.Logger.Errorw("put pin failed", "uid", uid, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Watch стримит полные снимки коллекции как ND-JSON: по снимку на строку.
// Соединение держится до отключения клиента.
func (h *LockerHandler) Watch(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	ch, cancel, err := h.LockerService.Subscribe(r.Context(), uid)
	if err != nil {
		h.Logger.Errorw("watch subscribe failed", "uid", uid, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer cancel()

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	enc := json.NewEncoder(w)
	for {
		select {
		case <-r.Context().Done():
			return
		case snapshot, ok := <-ch:
			if !ok {
				return
			}
			if err := enc.Encode(snapshot); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
