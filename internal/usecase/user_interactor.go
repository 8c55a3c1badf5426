package usecase

import (
	"context"
	"log/slog"

	"github.com/GoArmGo/UserService/internal/core/ports"
	"github.com/GoArmGo/UserService/internal/domain"
)

// userUseCase implements UserUseCase
type userUseCase struct {
	userStorage ports.UserStorage
	logger      *slog.Logger
}

// NewUserUseCase создает новый экземпляр UserUseCase,
// принимает реализацию порта UserStorage.
func NewUserUseCase(userStorage ports.UserStorage, logger *slog.Logger) UserUseCase {
	return &userUseCase{
		userStorage: userStorage,
		logger:      logger,
	}
}

// Create валидирует payload и создает пользователя.
// При ошибке валидации хранилище не вызывается вообще.
func (uc *userUseCase) Create(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
	if err := input.Validate(); err != nil {
		uc.logger.Warn("create payload rejected", "error", err)
		return nil, err
	}

	user, err := uc.userStorage.Insert(ctx, input.Name, input.Email)
	if err != nil {
		return nil, domain.ClassifyError(err)
	}
	return user, nil
}

// GetByID возвращает пользователя по id.
func (uc *userUseCase) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := uc.userStorage.GetByID(ctx, id)
	if err != nil {
		return nil, domain.ClassifyError(err)
	}
	return user, nil
}

// List возвращает всех пользователей. Валидации нет.
func (uc *userUseCase) List(ctx context.Context) ([]domain.User, error) {
	users, err := uc.userStorage.ListAll(ctx)
	if err != nil {
		return nil, domain.ClassifyError(err)
	}
	return users, nil
}

// Update валидирует переданные поля и делегирует частичное обновление.
func (uc *userUseCase) Update(ctx context.Context, id int64, input domain.UpdateUserInput) (*domain.User, error) {
	if err := input.Validate(); err != nil {
		uc.logger.Warn("update payload rejected", "user_id", id, "error", err)
		return nil, err
	}

	user, err := uc.userStorage.UpdatePartial(ctx, id, input)
	if err != nil {
		return nil, domain.ClassifyError(err)
	}
	return user, nil
}

// Delete удаляет пользователя по id.
func (uc *userUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.userStorage.DeleteByID(ctx, id); err != nil {
		return domain.ClassifyError(err)
	}
	return nil
}
