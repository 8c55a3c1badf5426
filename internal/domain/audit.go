package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserAuditRecord представляет запись аудита о событии пользователя,
// соответствует таблице user_audit_log в бд. Пишется воркером.
type UserAuditRecord struct {
	ID         uuid.UUID `json:"id"`
	EventID    uuid.UUID `json:"event_id"`
	EventType  string    `json:"event_type"`
	UserID     int64     `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
	ReceivedAt time.Time `json:"received_at"`
}

func (UserAuditRecord) TableName() string {
	return "user_audit_log"
}
