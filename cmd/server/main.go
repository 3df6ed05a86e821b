package main

import (
	"PassLocker/internal/config"
	"PassLocker/internal/handlers"
	"PassLocker/internal/middleware"
	"PassLocker/internal/repo"
	"PassLocker/internal/service"
	"net/http"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	userService := service.NewUserService(repo.NewUserRepository(gormDB), cfg.AuthSecret)
	lockerRepo := repo.NewLockerRepository(gormDB)
	lockerService := service.NewLockerService(lockerRepo, lockerRepo)

	h := handlers.NewHandler(userService, lockerService, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting emulator",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"DatabaseDSN", cfg.DatabaseDSN,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Emulator failed", "error", err)
	}
}
