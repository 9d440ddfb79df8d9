package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/amirhosseinghanipour/todoapi/internal/application/ports"
	"github.com/amirhosseinghanipour/todoapi/internal/domain"
	domerrors "github.com/amirhosseinghanipour/todoapi/internal/domain/errors"
)

// TodoStore is an arena of todos keyed by id with a secondary index on owner.
type TodoStore struct {
	mu      sync.RWMutex
	byID    map[domain.TodoID]*domain.Todo
	byOwner map[domain.UserID]map[domain.TodoID]struct{}
}

func NewTodoStore() *TodoStore {
	return &TodoStore{
		byID:    make(map[domain.TodoID]*domain.Todo),
		byOwner: make(map[domain.UserID]map[domain.TodoID]struct{}),
	}
}

func (s *TodoStore) Create(ctx context.Context, todo *domain.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[todo.ID] = cloneTodo(todo)
	ids := s.byOwner[todo.OwnerID]
	if ids == nil {
		ids = make(map[domain.TodoID]struct{})
		s.byOwner[todo.OwnerID] = ids
	}
	ids[todo.ID] = struct{}{}
	return nil
}

func (s *TodoStore) FindByID(ctx context.Context, id domain.TodoID) (*domain.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	return cloneTodo(t), nil
}

func (s *TodoStore) ListByOwner(ctx context.Context, owner domain.UserID, filter domain.TodoFilter) ([]*domain.Todo, error) {
	s.mu.RLock()
	out := make([]*domain.Todo, 0, len(s.byOwner[owner]))
	for id := range s.byOwner[owner] {
		t := s.byID[id]
		if filter.Completed != nil && t.Completed != *filter.Completed {
			continue
		}
		out = append(out, cloneTodo(t))
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() > out[j].ID.String()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Update replaces title, description and completion. Owner and creation time are kept.
func (s *TodoStore) Update(ctx context.Context, todo *domain.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.byID[todo.ID]
	if !ok {
		return domerrors.ErrTodoNotFound
	}
	next := cloneTodo(todo)
	next.OwnerID = cur.OwnerID
	next.CreatedAt = cur.CreatedAt
	s.byID[todo.ID] = next
	return nil
}

func (s *TodoStore) Delete(ctx context.Context, id domain.TodoID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.byID[id]
	if !ok {
		return false, nil
	}
	delete(s.byOwner[t.OwnerID], id)
	if len(s.byOwner[t.OwnerID]) == 0 {
		delete(s.byOwner, t.OwnerID)
	}
	delete(s.byID, id)
	return true, nil
}

func (s *TodoStore) DeleteByOwner(ctx context.Context, owner domain.UserID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.byOwner[owner]
	for id := range ids {
		delete(s.byID, id)
	}
	delete(s.byOwner, owner)
	return int64(len(ids)), nil
}

func (s *TodoStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.byID)), nil
}

func cloneTodo(t *domain.Todo) *domain.Todo {
	out := *t
	if t.Description != nil {
		d := *t.Description
		out.Description = &d
	}
	return &out
}

var _ ports.TodoStore = (*TodoStore)(nil)
