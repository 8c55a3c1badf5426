package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/UserService/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditStorage реализует интерфейс ports.AuditStorage с использованием GORM.
type AuditStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewAuditStorage создает новый экземпляр AuditStorage
func NewAuditStorage(db *gorm.DB, logger *slog.Logger) *AuditStorage {
	return &AuditStorage{db: db, logger: logger}
}

// SaveUserEvent сохраняет запись аудита о событии пользователя.
func (s *AuditStorage) SaveUserEvent(ctx context.Context, record *domain.UserAuditRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	result := s.db.WithContext(ctx).Create(record)
	if result.Error != nil {
		s.logger.Error("failed to save audit record", "event_id", record.EventID, "error", result.Error)
		return fmt.Errorf("ошибка при сохранении записи аудита в БД с помощью GORM: %w", result.Error)
	}

	s.logger.Info("audit record saved",
		"event_id", record.EventID,
		"event_type", record.EventType,
		"user_id", record.UserID,
	)
	return nil
}
