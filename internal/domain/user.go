package domain

// User представляет модель пользователя в системе.
// Соответствует таблице 'users' в базе данных.
type User struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
}

// CreateUserInput — входные данные для создания пользователя.
// Оба поля обязательны.
type CreateUserInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateUserInput — входные данные для частичного обновления пользователя.
// nil означает, что поле не передано и не изменяется.
type UpdateUserInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// IsEmpty сообщает, что ни одно поле не передано.
// Пустое обновление — это no-op, а не ошибка.
func (in UpdateUserInput) IsEmpty() bool {
	return in.Name == nil && in.Email == nil
}
