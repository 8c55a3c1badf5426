package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/GoArmGo/UserService/internal/core/ports"
	"github.com/GoArmGo/UserService/internal/domain"
	"github.com/GoArmGo/UserService/internal/messaging/payloads"
	"github.com/GoArmGo/UserService/internal/usecase"
	"github.com/go-chi/chi/v5"
)

// UserHandler — обработчик HTTP-запросов для работы с пользователями.
type UserHandler struct {
	userUseCase        usecase.UserUseCase
	userEventPublisher ports.UserEventPublisher
	logger             *slog.Logger
}

// NewUserHandler создаёт новый экземпляр UserHandler.
func NewUserHandler(
	uc usecase.UserUseCase,
	publisher ports.UserEventPublisher,
	logger *slog.Logger,
) *UserHandler {
	return &UserHandler{
		userUseCase:        uc,
		userEventPublisher: publisher,
		logger:             logger,
	}
}

// respondWithJSON — отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError — отправляет JSON-ответ с ошибкой.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, map[string]string{"error": message}, logger)
}

// respondWithDomainError переводит ошибку закрытого набора в HTTP-статус.
// Причина BackendError остается в логах, наружу уходит общий текст.
func (h *UserHandler) respondWithDomainError(w http.ResponseWriter, err error) {
	var (
		vErr *domain.ValidationError
		nErr *domain.NotFoundError
		cErr *domain.ConflictError
	)

	switch {
	case errors.As(err, &vErr):
		respondWithError(w, http.StatusBadRequest, vErr.Error(), h.logger)
	case errors.As(err, &nErr):
		respondWithError(w, http.StatusNotFound, nErr.Error(), h.logger)
	case errors.As(err, &cErr):
		respondWithError(w, http.StatusConflict, cErr.Error(), h.logger)
	default:
		h.logger.Error("backend failure", "error", err)
		respondWithError(w, http.StatusInternalServerError, "internal server error", h.logger)
	}
}

// publishEvent отправляет событие о пользователе в очередь.
// Публикация best-effort: ошибка логируется и не влияет на ответ клиенту.
func (h *UserHandler) publishEvent(r *http.Request, eventType string, userID int64) {
	if h.userEventPublisher == nil {
		return
	}
	event := payloads.NewUserEvent(eventType, userID)
	if err := h.userEventPublisher.PublishUserEvent(r.Context(), event); err != nil {
		h.logger.Error("failed to publish user event",
			"type", eventType,
			"user_id", userID,
			"error", err,
		)
	}
}

// userIDFromRequest извлекает числовой id из URL.
func userIDFromRequest(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// CreateUser — создает нового пользователя. POST /users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var input domain.CreateUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Warn("malformed request body", "endpoint", "CreateUser", "error", err)
		respondWithError(w, http.StatusBadRequest, "Некорректное тело запроса", h.logger)
		return
	}

	user, err := h.userUseCase.Create(r.Context(), input)
	if err != nil {
		h.respondWithDomainError(w, err)
		return
	}

	h.logger.Info("user created successfully", "endpoint", "CreateUser", "user_id", user.ID)
	h.publishEvent(r, payloads.UserCreated, user.ID)
	respondWithJSON(w, http.StatusCreated, user, h.logger)
}

// GetUser — получает пользователя по id. GET /users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := userIDFromRequest(r)
	if err != nil {
		h.logger.Warn("invalid id parameter", "endpoint", "GetUser", "id", chi.URLParam(r, "id"))
		respondWithError(w, http.StatusBadRequest, "Некорректный id", h.logger)
		return
	}

	user, err := h.userUseCase.GetByID(r.Context(), id)
	if err != nil {
		h.respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, user, h.logger)
}

// ListUsers — получает всех пользователей. GET /users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUseCase.List(r.Context())
	if err != nil {
		h.respondWithDomainError(w, err)
		return
	}

	h.logger.Info("users listed", "endpoint", "ListUsers", "count", len(users))
	respondWithJSON(w, http.StatusOK, users, h.logger)
}

// UpdateUser — частично обновляет пользователя. PATCH /users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := userIDFromRequest(r)
	if err != nil {
		h.logger.Warn("invalid id parameter", "endpoint", "UpdateUser", "id", chi.URLParam(r, "id"))
		respondWithError(w, http.StatusBadRequest, "Некорректный id", h.logger)
		return
	}

	var input domain.UpdateUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Warn("malformed request body", "endpoint", "UpdateUser", "error", err)
		respondWithError(w, http.StatusBadRequest, "Некорректное тело запроса", h.logger)
		return
	}

	user, err := h.userUseCase.Update(r.Context(), id, input)
	if err != nil {
		h.respondWithDomainError(w, err)
		return
	}

	h.logger.Info("user updated successfully", "endpoint", "UpdateUser", "user_id", user.ID)
	h.publishEvent(r, payloads.UserUpdated, user.ID)
	respondWithJSON(w, http.StatusOK, user, h.logger)
}

// DeleteUser — удаляет пользователя. DELETE /users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := userIDFromRequest(r)
	if err != nil {
		h.logger.Warn("invalid id parameter", "endpoint", "DeleteUser", "id", chi.URLParam(r, "id"))
		respondWithError(w, http.StatusBadRequest, "Некорректный id", h.logger)
		return
	}

	if err := h.userUseCase.Delete(r.Context(), id); err != nil {
		h.respondWithDomainError(w, err)
		return
	}

	h.logger.Info("user deleted successfully", "endpoint", "DeleteUser", "user_id", id)
	h.publishEvent(r, payloads.UserDeleted, id)
	w.WriteHeader(http.StatusNoContent)
}

// Health — проба живости. Ядро сервиса не задействуется.
func (h *UserHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		h.logger.Error("failed to write health response", "error", err)
	}
}

// NotFoundRoute — JSON-ответ для неизвестных маршрутов.
func NotFoundRoute(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusNotFound, "Route not found", logger)
	}
}
