package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GoArmGo/UserService/internal/domain"
	"github.com/GoArmGo/UserService/internal/messaging/payloads"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUserUseCase позволяет задать поведение каждой операции в тесте.
type stubUserUseCase struct {
	create func(context.Context, domain.CreateUserInput) (*domain.User, error)
	get    func(context.Context, int64) (*domain.User, error)
	list   func(context.Context) ([]domain.User, error)
	update func(context.Context, int64, domain.UpdateUserInput) (*domain.User, error)
	delete func(context.Context, int64) error
}

func (s *stubUserUseCase) Create(ctx context.Context, in domain.CreateUserInput) (*domain.User, error) {
	return s.create(ctx, in)
}

func (s *stubUserUseCase) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.get(ctx, id)
}

func (s *stubUserUseCase) List(ctx context.Context) ([]domain.User, error) {
	return s.list(ctx)
}

func (s *stubUserUseCase) Update(ctx context.Context, id int64, in domain.UpdateUserInput) (*domain.User, error) {
	return s.update(ctx, id, in)
}

func (s *stubUserUseCase) Delete(ctx context.Context, id int64) error {
	return s.delete(ctx, id)
}

// recordingPublisher запоминает опубликованные события.
type recordingPublisher struct {
	events []payloads.UserEventPayload
	err    error
}

func (p *recordingPublisher) PublishUserEvent(ctx context.Context, payload payloads.UserEventPayload) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, payload)
	return nil
}

func newTestRouter(uc *stubUserUseCase, publisher *recordingPublisher) *chi.Mux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewUserHandler(uc, publisher, logger)

	r := chi.NewRouter()
	r.Post("/users", h.CreateUser)
	r.Get("/users", h.ListUsers)
	r.Get("/users/{id}", h.GetUser)
	r.Patch("/users/{id}", h.UpdateUser)
	r.Delete("/users/{id}", h.DeleteUser)
	r.Get("/health", h.Health)
	r.NotFound(NotFoundRoute(logger))
	return r
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestCreateUser(t *testing.T) {
	t.Run("201 with created user and published event", func(t *testing.T) {
		publisher := &recordingPublisher{}
		uc := &stubUserUseCase{
			create: func(ctx context.Context, in domain.CreateUserInput) (*domain.User, error) {
				return &domain.User{ID: 1, Name: in.Name, Email: in.Email}, nil
			},
		}
		r := newTestRouter(uc, publisher)

		rec := doRequest(r, http.MethodPost, "/users", `{"name":"Alice","email":"alice@example.com"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var user domain.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, "Alice", user.Name)

		require.Len(t, publisher.events, 1)
		assert.Equal(t, payloads.UserCreated, publisher.events[0].Type)
		assert.Equal(t, int64(1), publisher.events[0].UserID)
	})

	t.Run("400 on malformed body, core untouched", func(t *testing.T) {
		called := false
		uc := &stubUserUseCase{
			create: func(ctx context.Context, in domain.CreateUserInput) (*domain.User, error) {
				called = true
				return nil, nil
			},
		}
		r := newTestRouter(uc, &recordingPublisher{})

		rec := doRequest(r, http.MethodPost, "/users", `{"name": `)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, called)
	})

	t.Run("400 on validation error", func(t *testing.T) {
		uc := &stubUserUseCase{
			create: func(ctx context.Context, in domain.CreateUserInput) (*domain.User, error) {
				return nil, &domain.ValidationError{Field: "email", Rule: domain.RuleRequired}
			},
		}
		publisher := &recordingPublisher{}
		r := newTestRouter(uc, publisher)

		rec := doRequest(r, http.MethodPost, "/users", `{"name":"Alice"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, errorBody(t, rec), "email")
		assert.Empty(t, publisher.events)
	})

	t.Run("409 on conflict", func(t *testing.T) {
		uc := &stubUserUseCase{
			create: func(ctx context.Context, in domain.CreateUserInput) (*domain.User, error) {
				return nil, &domain.ConflictError{Field: "email"}
			},
		}
		r := newTestRouter(uc, &recordingPublisher{})

		rec := doRequest(r, http.MethodPost, "/users", `{"name":"Alice","email":"alice@example.com"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, errorBody(t, rec), "email")
	})

	t.Run("500 on backend error hides cause", func(t *testing.T) {
		uc := &stubUserUseCase{
			create: func(ctx context.Context, in domain.CreateUserInput) (*domain.User, error) {
				return nil, &domain.BackendError{Cause: errors.New("pq: secret dsn detail")}
			},
		}
		r := newTestRouter(uc, &recordingPublisher{})

		rec := doRequest(r, http.MethodPost, "/users", `{"name":"Alice","email":"alice@example.com"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal server error", errorBody(t, rec))
		assert.NotContains(t, rec.Body.String(), "secret")
	})

	t.Run("publish failure does not fail the request", func(t *testing.T) {
		uc := &stubUserUseCase{
			create: func(ctx context.Context, in domain.CreateUserInput) (*domain.User, error) {
				return &domain.User{ID: 1, Name: in.Name, Email: in.Email}, nil
			},
		}
		r := newTestRouter(uc, &recordingPublisher{err: errors.New("broker down")})

		rec := doRequest(r, http.MethodPost, "/users", `{"name":"Alice","email":"alice@example.com"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}

func TestGetUser(t *testing.T) {
	t.Run("200 with user", func(t *testing.T) {
		uc := &stubUserUseCase{
			get: func(ctx context.Context, id int64) (*domain.User, error) {
				return &domain.User{ID: id, Name: "Alice", Email: "alice@example.com"}, nil
			},
		}
		r := newTestRouter(uc, &recordingPublisher{})

		rec := doRequest(r, http.MethodGet, "/users/42", "")

		assert.Equal(t, http.StatusOK, rec.Code)

		var user domain.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
		assert.Equal(t, int64(42), user.ID)
	})

	t.Run("404 when missing", func(t *testing.T) {
		uc := &stubUserUseCase{
			get: func(ctx context.Context, id int64) (*domain.User, error) {
				return nil, &domain.NotFoundError{ID: id}
			},
		}
		r := newTestRouter(uc, &recordingPublisher{})

		rec := doRequest(r, http.MethodGet, "/users/404", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, errorBody(t, rec), "404")
	})

	t.Run("400 on non-numeric id", func(t *testing.T) {
		uc := &stubUserUseCase{
			get: func(ctx context.Context, id int64) (*domain.User, error) {
				t.Fatal("core must not be reached")
				return nil, nil
			},
		}
		r := newTestRouter(uc, &recordingPublisher{})

		rec := doRequest(r, http.MethodGet, "/users/abc", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListUsers(t *testing.T) {
	t.Run("200 with users", func(t *testing.T) {
		uc := &stubUserUseCase{
			list: func(ctx context.Context) ([]domain.User, error) {
				return []domain.User{
					{ID: 1, Name: "Alice", Email: "alice@example.com"},
					{ID: 2, Name: "Bob", Email: "bob@example.com"},
				}, nil
			},
		}
		r := newTestRouter(uc, &recordingPublisher{})

		rec := doRequest(r, http.MethodGet, "/users", "")

		assert.Equal(t, http.StatusOK, rec.Code)

		var users []domain.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
		require.Len(t, users, 2)
		assert.Equal(t, int64(1), users[0].ID)
	})

	t.Run("empty list serializes as JSON array", func(t *testing.T) {
		uc := &stubUserUseCase{
			list: func(ctx context.Context) ([]domain.User, error) {
				return []domain.User{}, nil
			},
		}
		r := newTestRouter(uc, &recordingPublisher{})

		rec := doRequest(r, http.MethodGet, "/users", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("500 on backend error", func(t *testing.T) {
		uc := &stubUserUseCase{
			list: func(ctx context.Context) ([]domain.User, error) {
				return nil, &domain.BackendError{Cause: errors.New("boom")}
			},
		}
		r := newTestRouter(uc, &recordingPublisher{})

		rec := doRequest(r, http.MethodGet, "/users", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestUpdateUser(t *testing.T) {
	t.Run("200 with updated user and published event", func(t *testing.T) {
		publisher := &recordingPublisher{}
		uc := &stubUserUseCase{
			update: func(ctx context.Context, id int64, in domain.UpdateUserInput) (*domain.User, error) {
				require.NotNil(t, in.Name)
				assert.Nil(t, in.Email)
				return &domain.User{ID: id, Name: *in.Name, Email: "alice@example.com"}, nil
			},
		}
		r := newTestRouter(uc, publisher)

		rec := doRequest(r, http.MethodPatch, "/users/1", `{"name":"X"}`)

		assert.Equal(t, http.StatusOK, rec.Code)

		var user domain.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
		assert.Equal(t, "X", user.Name)
		assert.Equal(t, "alice@example.com", user.Email)

		require.Len(t, publisher.events, 1)
		assert.Equal(t, payloads.UserUpdated, publisher.events[0].Type)
	})

	t.Run("404 when missing", func(t *testing.T) {
		uc := &stubUserUseCase{
			update: func(ctx context.Context, id int64, in domain.UpdateUserInput) (*domain.User, error) {
				return nil, &domain.NotFoundError{ID: id}
			},
		}
		publisher := &recordingPublisher{}
		r := newTestRouter(uc, publisher)

		rec := doRequest(r, http.MethodPatch, "/users/404", `{"name":"X"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, publisher.events)
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("204 and published event", func(t *testing.T) {
		publisher := &recordingPublisher{}
		uc := &stubUserUseCase{
			delete: func(ctx context.Context, id int64) error { return nil },
		}
		r := newTestRouter(uc, publisher)

		rec := doRequest(r, http.MethodDelete, "/users/1", "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())

		require.Len(t, publisher.events, 1)
		assert.Equal(t, payloads.UserDeleted, publisher.events[0].Type)
	})

	t.Run("404 when missing", func(t *testing.T) {
		uc := &stubUserUseCase{
			delete: func(ctx context.Context, id int64) error {
				return &domain.NotFoundError{ID: id}
			},
		}
		publisher := &recordingPublisher{}
		r := newTestRouter(uc, publisher)

		rec := doRequest(r, http.MethodDelete, "/users/404", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, publisher.events)
	})
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&stubUserUseCase{}, &recordingPublisher{})

	rec := doRequest(r, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestNotFoundRoute(t *testing.T) {
	r := newTestRouter(&stubUserUseCase{}, &recordingPublisher{})

	rec := doRequest(r, http.MethodGet, "/nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", errorBody(t, rec))
}
