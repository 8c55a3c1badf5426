package ports

import (
	"context"

	"github.com/GoArmGo/UserService/internal/domain"
)

// UserStorage определяет методы для взаимодействия с хранилищем пользователей.
// Каждый метод — одна параметризованная операция над таблицей users.
type UserStorage interface {
	// Insert создает пользователя; id назначает база (BIGSERIAL).
	// Нарушение уникальности email возвращается как *domain.ConflictError.
	Insert(ctx context.Context, name, email string) (*domain.User, error)

	// GetByID возвращает пользователя или *domain.NotFoundError.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// ListAll возвращает всех пользователей по возрастанию id.
	// Пустая таблица — пустой срез, не ошибка.
	ListAll(ctx context.Context) ([]domain.User, error)

	// UpdatePartial изменяет только переданные поля и возвращает
	// итоговую запись. Пустой набор полей — no-op с текущей записью.
	UpdatePartial(ctx context.Context, id int64, fields domain.UpdateUserInput) (*domain.User, error)

	// DeleteByID удаляет пользователя. Отсутствующий id — *domain.NotFoundError.
	DeleteByID(ctx context.Context, id int64) error
}

// AuditStorage определяет методы для записи аудита событий пользователей.
// Используется воркером, не HTTP-сервером.
type AuditStorage interface {
	SaveUserEvent(ctx context.Context, record *domain.UserAuditRecord) error
}
