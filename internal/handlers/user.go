package handlers

import (
	"PassLocker/internal/middleware"
	"PassLocker/internal/model"
	"PassLocker/internal/service"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// UserHandler обрабатывает identity-эндпоинты эмулятора.
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
}

// NewUserHandler создаёт хендлер identity
func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger}
}

type credentialsRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
}

func (h *UserHandler) writeToken(w http.ResponseWriter, u *model.User) {
	token, err := h.UserService.MintToken(u)
	if err != nil {
		h.Logger.Errorw("mint token failed", "uid", u.UID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// SignUp регистрирует пользователя и сразу выдаёт ID-токен
// (email ещё не подтверждён).
func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	u, err := h.UserService.Register(r.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			http.Error(w, "email already registered", http.StatusConflict)
			return
		}
		h.Logger.Errorw("signup failed", "email", req.Email, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.writeToken(w, u)
}

// SignIn обменивает email+пароль на ID-токен.
func (h *UserHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	u, err := h.UserService.Login(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrUserNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
		return
	case errors.Is(err, service.ErrBadPassword):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	default:
		h.Logger.Errorw("signin failed", "email", req.Email, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.writeToken(w, u)
}

// Reauthenticate повторно подтверждает пароль текущего пользователя.
func (h *UserHandler) Reauthenticate(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.GetUIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := h.UserService.Reauthenticate(r.Context(), uid, req.Password); err != nil {
		if errors.Is(err, service.ErrBadPassword) || errors.Is(err, service.ErrUserNotFound) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		h.Logger.Errorw("reauthenticate failed", "uid", uid, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SendVerification имитирует отправку письма подтверждения. Эмулятор
// почты не шлёт: подтверждение делается через POST /emulator/verify.
func (h *UserHandler) SendVerification(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.GetUIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	u, err := h.UserService.GetByUID(r.Context(), uid)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	h.Logger.Infow("verification email requested", "email", u.Email,
		"hint", "POST /emulator/verify {\"email\":...} to confirm")
	w.WriteHeader(http.StatusNoContent)
}

// Reload выдаёт свежий токен с актуальными claims.
func (h *UserHandler) Reload(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.GetUIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	u, err := h.UserService.GetByUID(r.Context(), uid)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	h.writeToken(w, u)
}

// PasswordReset имитирует письмо сброса пароля.
func (h *UserHandler) PasswordReset(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	h.Logger.Infow("password reset email requested", "email", req.Email)
	w.WriteHeader(http.StatusNoContent)
}

// Lookup сообщает, существует ли учётная запись с таким email.
func (h *UserHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		http.Error(w, "missing email", http.StatusBadRequest)
		return
	}
	exists, err := h.UserService.Exists(r.Context(), email)
	if err != nil {
		h.Logger.Errorw("lookup failed", "email", email, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]bool{"exists": exists})
}

// DeleteAccount удаляет текущую учётную запись вместе с документами.
func (h *UserHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.GetUIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if err := h.UserService.Delete(r.Context(), uid); err != nil {
		h.Logger.Errorw("delete account failed", "uid", uid, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EmulatorVerify — dev-эндпоинт: помечает email подтверждённым, заменяя
// клик по ссылке из письма.
func (h *UserHandler) EmulatorVerify(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := h.UserService.VerifyEmail(r.Context(), req.Email); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		h.Logger.Errorw("emulator verify failed", "email", req.Email, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
