package handlers

import (
	"time"

	"github.com/amirhosseinghanipour/todoapi/internal/domain"
)

type userResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func presentUser(u *domain.User) userResponse {
	return userResponse{
		ID:            u.ID.String(),
		Email:         u.Email,
		Name:          u.Name,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

type todoResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func presentTodo(t *domain.Todo) todoResponse {
	return todoResponse{
		ID:          t.ID.String(),
		UserID:      t.OwnerID.String(),
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

type todoListResponse struct {
	Todos []todoResponse `json:"todos"`
	Count int            `json:"count"`
}

func presentTodos(todos []*domain.Todo) todoListResponse {
	items := make([]todoResponse, 0, len(todos))
	for _, t := range todos {
		items = append(items, presentTodo(t))
	}
	return todoListResponse{Todos: items, Count: len(items)}
}

type sessionResponse struct {
	User      userResponse `json:"user"`
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresIn int64        `json:"expires_in"`
}
