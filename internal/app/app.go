package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/UserService/internal/config"
	"github.com/GoArmGo/UserService/internal/core/ports"
	"github.com/GoArmGo/UserService/internal/database/client"
	"github.com/GoArmGo/UserService/internal/usecase"
)

type App struct {
	Config             *config.Config
	logger             *slog.Logger
	dbClient           *client.Client
	userUseCase        usecase.UserUseCase
	auditStorage       ports.AuditStorage
	userEventPublisher ports.UserEventPublisher
	userEventConsumer  ports.UserEventConsumer
}

func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	dbClient *client.Client,
	userUseCase usecase.UserUseCase,
	auditStorage ports.AuditStorage,
	userEventPublisher ports.UserEventPublisher,
	userEventConsumer ports.UserEventConsumer,
) *App {
	return &App{
		Config:             cfg,
		logger:             logger,
		dbClient:           dbClient,
		userUseCase:        userUseCase,
		auditStorage:       auditStorage,
		userEventPublisher: userEventPublisher,
		userEventConsumer:  userEventConsumer,
	}
}

// LoggerIns возвращает основной логгер приложения.
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

// Run запускает приложение в одном из режимов и блокируется до
// сигнала завершения.
func (a *App) Run(ctx context.Context, mode *string) error {
	// канал для graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("application starting", "mode", *mode)

	var err error

	switch *mode {
	case "server":
		err = runServer(ctx, a.Config, a.logger, a.userUseCase, a.userEventPublisher)

	case "worker":
		err = runWorker(ctx, a.Config, a.logger, a.auditStorage, a.userEventConsumer)

	default:
		err = fmt.Errorf("неизвестный режим: %s (используйте 'server' или 'worker')", *mode)
	}

	if err != nil {
		return err
	}

	// аккуратно закрываем ресурсы
	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown error", "error", closeErr)
	}

	a.logger.Info("application stopped")
	return nil
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown() error {
	if a.dbClient != nil {
		if err := a.dbClient.Close(); err != nil {
			return fmt.Errorf("ошибка закрытия БД: %w", err)
		}
	}

	// если publisher/consumer имеют методы Close — вызываем их
	if closer, ok := a.userEventPublisher.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	if closer, ok := a.userEventConsumer.(interface{ Close() error }); ok {
		_ = closer.Close()
	}

	return nil
}
