package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID              uuid.UUID
	Email           string
	Name            string
	PasswordHash    string
	IsEmailVerified bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Todo struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Description sql.NullString
	IsCompleted bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
