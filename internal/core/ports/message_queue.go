package ports

import (
	"context"

	"github.com/GoArmGo/UserService/internal/messaging/payloads"
)

// UserEventPublisher определяет методы для публикации событий о пользователях.
// Этот интерфейс используется обработчиком HTTP-запросов.
type UserEventPublisher interface {
	PublishUserEvent(ctx context.Context, payload payloads.UserEventPayload) error
}

// UserEventConsumer определяет методы для потребления событий о пользователях,
// используется воркером для получения событий из очереди.
type UserEventConsumer interface {
	// StartConsumingUserEvents начинает прослушивание очереди событий.
	// Принимает функцию-обработчик, вызываемую для каждого события.
	StartConsumingUserEvents(ctx context.Context, handler func(context.Context, payloads.UserEventPayload) error) error
}
