package handlers

import (
	"PassLocker/internal/config"
	"PassLocker/internal/middleware"
	"PassLocker/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	lockerService *service.LockerService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, logger)
	lockerHandler := NewLockerHandler(lockerService, logger)

	// Identity routes
	r.Post("/api/auth/signup", userHandler.SignUp)
	r.Post("/api/auth/signin", userHandler.SignIn)
	r.Post("/api/auth/reauthenticate", userHandler.Reauthenticate)
	r.Post("/api/auth/send-verification", userHandler.SendVerification)
	r.Post("/api/auth/reload", userHandler.Reload)
	r.Post("/api/auth/password-reset", userHandler.PasswordReset)
	r.Get("/api/auth/lookup", userHandler.Lookup)
	r.Delete("/api/auth/account", userHandler.DeleteAccount)

	// Dev-only: out-of-band действия, которые hosted-провайдер делает почтой
	r.Post("/emulator/verify", userHandler.EmulatorVerify)

	// Document routes
	r.Route("/api/users/{uid}", func(r chi.Router) {
		r.Use(lockerHandler.RequireOwner)
		r.Get("/lockers", lockerHandler.List)
		r.Post("/lockers", lockerHandler.Create)
		r.Get("/lockers/watch", lockerHandler.Watch)
		r.Patch("/lockers/{id}", lockerHandler.Update)
		r.Delete("/lockers/{id}", lockerHandler.Delete)
		r.Get("/security/pin", lockerHandler.GetPin)
		r.Put("/security/pin", lockerHandler.PutPin)
	})

	return &Handler{Router: r}
}
