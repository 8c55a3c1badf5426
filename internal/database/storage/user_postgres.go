package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/UserService/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// uniqueViolation — код ошибки PostgreSQL для нарушения уникальности.
const uniqueViolation = pq.ErrorCode("23505")

// UserStorage реализует интерфейс ports.UserStorage поверх sqlx.
type UserStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewUserStorage создает новый экземпляр UserStorage
func NewUserStorage(db *sqlx.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, logger: logger}
}

// Insert создает пользователя и сразу возвращает назначенный базой id.
func (s *UserStorage) Insert(ctx context.Context, name, email string) (*domain.User, error) {
	start := time.Now()

	var user domain.User
	err := s.db.GetContext(ctx, &user, `
        INSERT INTO users (name, email)
        VALUES ($1, $2)
        RETURNING id, name, email
    `, name, email)
	if err != nil {
		if isUniqueViolation(err) {
			s.logger.Warn("email already taken", "email", email)
			return nil, &domain.ConflictError{Field: "email"}
		}
		s.logger.Error("failed to insert user", "error", err)
		return nil, &domain.BackendError{Cause: fmt.Errorf("insert user: %w", err)}
	}

	s.logger.Info("user created",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &user, nil
}

// GetByID возвращает пользователя по id.
func (s *UserStorage) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := s.db.GetContext(ctx, &user, `SELECT id, name, email FROM users WHERE id = $1`, id)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{ID: id}
	}
	if err != nil {
		s.logger.Error("failed to select user", "user_id", id, "error", err)
		return nil, &domain.BackendError{Cause: fmt.Errorf("select user: %w", err)}
	}
	return &user, nil
}

// ListAll возвращает всех пользователей по возрастанию id.
func (s *UserStorage) ListAll(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	err := s.db.SelectContext(ctx, &users, `SELECT id, name, email FROM users ORDER BY id ASC`)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, &domain.BackendError{Cause: fmt.Errorf("list users: %w", err)}
	}
	return users, nil
}

// UpdatePartial изменяет только переданные поля.
// COALESCE с NULL-параметром оставляет колонку нетронутой, поэтому
// оба указателя можно биндить как есть. Пустой набор полей — чтение
// текущей записи без UPDATE.
func (s *UserStorage) UpdatePartial(ctx context.Context, id int64, fields domain.UpdateUserInput) (*domain.User, error) {
	if fields.IsEmpty() {
		return s.GetByID(ctx, id)
	}

	start := time.Now()

	var user domain.User
	err := s.db.GetContext(ctx, &user, `
        UPDATE users
        SET name = COALESCE($2, name), email = COALESCE($3, email)
        WHERE id = $1
        RETURNING id, name, email
    `, id, fields.Name, fields.Email)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{ID: id}
	}
	if err != nil {
		if isUniqueViolation(err) {
			s.logger.Warn("email already taken on update", "user_id", id)
			return nil, &domain.ConflictError{Field: "email"}
		}
		s.logger.Error("failed to update user", "user_id", id, "error", err)
		return nil, &domain.BackendError{Cause: fmt.Errorf("update user: %w", err)}
	}

	s.logger.Info("user updated",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &user, nil
}

// DeleteByID удаляет пользователя. Жесткое удаление, без tombstone.
func (s *UserStorage) DeleteByID(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		s.logger.Error("failed to delete user", "user_id", id, "error", err)
		return &domain.BackendError{Cause: fmt.Errorf("delete user: %w", err)}
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return &domain.BackendError{Cause: fmt.Errorf("delete user rows affected: %w", err)}
	}
	if affected == 0 {
		return &domain.NotFoundError{ID: id}
	}

	s.logger.Info("user deleted", "user_id", id)
	return nil
}

// isUniqueViolation распознает нарушение unique-констрейнта PostgreSQL.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
