package domain

import (
	"errors"
	"fmt"
)

// Закрытый набор ошибок сервиса. Всё, что уходит наружу из usecase,
// обязано быть одной из этих четырёх ошибок.

// ValidationError — нарушение правила валидации входных данных.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: field %q violates rule %q", e.Field, e.Rule)
}

// NotFoundError — пользователь с указанным ID не существует.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("user with id %d not found", e.ID)
}

// ConflictError — нарушение ограничения уникальности при записи.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s already in use", e.Field)
}

// BackendError оборачивает неожиданную ошибку хранилища.
// Причина логируется, но наружу не отдаётся.
type BackendError struct {
	Cause error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend failure: %v", e.Cause)
}

func (e *BackendError) Unwrap() error {
	return e.Cause
}

// ClassifyError гарантирует, что ошибка принадлежит закрытому набору.
// Любая посторонняя ошибка заворачивается в BackendError.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}

	var (
		vErr *ValidationError
		nErr *NotFoundError
		cErr *ConflictError
		bErr *BackendError
	)
	if errors.As(err, &vErr) || errors.As(err, &nErr) || errors.As(err, &cErr) || errors.As(err, &bErr) {
		return err
	}
	return &BackendError{Cause: err}
}
