package domain

import (
	"time"

	"github.com/google/uuid"
)

// TodoID is a value object for todo identity.
type TodoID struct{ uuid.UUID }

// NewTodoID creates a new TodoID from uuid.
func NewTodoID(id uuid.UUID) TodoID { return TodoID{UUID: id} }

// GenerateTodoID returns a fresh random TodoID.
func GenerateTodoID() TodoID { return TodoID{UUID: uuid.New()} }

// ParseTodoID parses the canonical string form.
func ParseTodoID(s string) (TodoID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return TodoID{}, err
	}
	return TodoID{UUID: id}, nil
}

// String returns the canonical string form.
func (t TodoID) String() string { return t.UUID.String() }

// Todo is a single item owned by exactly one user.
type Todo struct {
	ID          TodoID
	OwnerID     UserID
	Title       string
	Description *string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TodoFilter narrows an owner's todo listing. A nil Completed matches every todo.
type TodoFilter struct {
	Completed *bool
}
