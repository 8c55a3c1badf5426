package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/UserService/internal/config"
	"github.com/GoArmGo/UserService/internal/core/ports"
	"github.com/GoArmGo/UserService/internal/domain"
	"github.com/GoArmGo/UserService/internal/messaging/payloads"
)

// runWorker запускает потребителя RabbitMQ и пишет аудит событий
// пользователей в бд.
func runWorker(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	auditStorage ports.AuditStorage,
	userEventConsumer ports.UserEventConsumer,
) error {
	logger.Info("worker started, waiting for user events", "queue", cfg.RabbitMQ.RabbitMQQueueName)

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	// Обработчик событий: каждое событие превращается в запись аудита.
	eventHandler := func(ctx context.Context, payload payloads.UserEventPayload) error {
		record := &domain.UserAuditRecord{
			EventID:    payload.EventID,
			EventType:  payload.Type,
			UserID:     payload.UserID,
			OccurredAt: payload.OccurredAt,
			ReceivedAt: time.Now().UTC(),
		}

		if err := auditStorage.SaveUserEvent(ctx, record); err != nil {
			logger.Error("failed to persist user event",
				"event_id", payload.EventID,
				"type", payload.Type,
				"error", err,
			)
			return err
		}

		logger.Info("user event persisted",
			"event_id", payload.EventID,
			"type", payload.Type,
			"user_id", payload.UserID,
		)
		return nil
	}

	if err := userEventConsumer.StartConsumingUserEvents(workerCtx, eventHandler); err != nil {
		return fmt.Errorf("ошибка при запуске потребителя RabbitMQ: %w", err)
	}

	<-ctx.Done()

	logger.Info("shutdown signal received, stopping worker")
	cancelWorker()

	logger.Info("worker stopped gracefully")
	return nil
}
