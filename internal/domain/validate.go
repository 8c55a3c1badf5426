package domain

import "strings"

// Правила валидации, попадающие в ValidationError.Rule.
const (
	RuleRequired = "required"
	RuleNotBlank = "not_blank"
	RuleEmail    = "email_format"
)

// Validate проверяет данные для создания пользователя.
// Оба поля обязательны. Чистая функция, без побочных эффектов.
func (in CreateUserInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Rule: RuleRequired}
	}
	if in.Email == "" {
		return &ValidationError{Field: "email", Rule: RuleRequired}
	}
	if !validEmail(in.Email) {
		return &ValidationError{Field: "email", Rule: RuleEmail}
	}
	return nil
}

// Validate проверяет данные для частичного обновления.
// Проверяются только переданные поля.
func (in UpdateUserInput) Validate() error {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return &ValidationError{Field: "name", Rule: RuleNotBlank}
	}
	if in.Email != nil && !validEmail(*in.Email) {
		return &ValidationError{Field: "email", Rule: RuleEmail}
	}
	return nil
}

// validEmail принимает адрес с ровно одной '@' и непустыми
// локальной и доменной частями.
func validEmail(s string) bool {
	if strings.Count(s, "@") != 1 {
		return false
	}
	local, dom, _ := strings.Cut(s, "@")
	return local != "" && dom != ""
}
