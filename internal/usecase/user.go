package usecase

import (
	"context"

	"github.com/GoArmGo/UserService/internal/domain"
)

// UserUseCase определяет интерфейс бизнес-логики работы с пользователями.
// Каждый вызов — одна синхронная операция без состояния между вызовами;
// любая ошибка принадлежит закрытому набору из internal/domain.
type UserUseCase interface {
	// Create валидирует входные данные и создает пользователя.
	// Возвращает ValidationError до какого-либо обращения к хранилищу.
	Create(ctx context.Context, input domain.CreateUserInput) (*domain.User, error)

	// GetByID возвращает пользователя или NotFoundError.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// List возвращает всех пользователей по возрастанию id.
	List(ctx context.Context) ([]domain.User, error)

	// Update валидирует переданные поля и частично обновляет пользователя.
	Update(ctx context.Context, id int64, input domain.UpdateUserInput) (*domain.User, error)

	// Delete удаляет пользователя или возвращает NotFoundError.
	Delete(ctx context.Context, id int64) error
}
