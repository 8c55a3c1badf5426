package di

import (
	"github.com/GoArmGo/UserService/internal/app"
	"github.com/GoArmGo/UserService/internal/config"
	"github.com/GoArmGo/UserService/internal/database/client"
	"github.com/GoArmGo/UserService/internal/database/storage"
	"github.com/GoArmGo/UserService/internal/logger"
	"github.com/GoArmGo/UserService/internal/rabbitmq"
	"github.com/GoArmGo/UserService/internal/usecase"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp() (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogCfg := logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	}
	slogger := logger.NewSlog(slogCfg)

	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. Инициализация PostgreSQL клиента (sqlx + gorm поверх одного пула)
	dbClient, err := client.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// 3. Инициализация хранилищ
	userStorage := storage.NewUserStorage(dbClient.DB, slogger)
	auditStorage := storage.NewAuditStorage(dbClient.Gorm, slogger)

	// 4. Инициализация RabbitMQ клиента
	rabbitMQClient, err := rabbitmq.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// Один клиент выступает и Publisher, и Consumer
	userEventPublisher := rabbitMQClient
	userEventConsumer := rabbitMQClient

	// 5. Инициализация бизнес-логики (usecases)
	userUseCase := usecase.NewUserUseCase(userStorage, slogger)

	// 6. Сборка итогового приложения
	application := app.NewApp(
		cfg,
		slogger,
		dbClient,
		userUseCase,
		auditStorage,
		userEventPublisher,
		userEventConsumer,
	)

	slogger.Info("all dependencies initialized")
	return application, nil
}
