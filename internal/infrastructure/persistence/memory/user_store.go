// Package memory holds single-process stores backed by maps. They are the default for
// tests and local runs; use the postgres stores for anything shared.
package memory

import (
	"context"
	"sync"

	"github.com/amirhosseinghanipour/todoapi/internal/application/ports"
	"github.com/amirhosseinghanipour/todoapi/internal/domain"
	domerrors "github.com/amirhosseinghanipour/todoapi/internal/domain/errors"
)

// UserStore is an arena of users keyed by id with a secondary index on normalized email.
type UserStore struct {
	mu      sync.RWMutex
	byID    map[domain.UserID]*domain.User
	byEmail map[string]domain.UserID
}

func NewUserStore() *UserStore {
	return &UserStore{
		byID:    make(map[domain.UserID]*domain.User),
		byEmail: make(map[string]domain.UserID),
	}
}

func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	email := domain.NormalizeEmail(user.Email)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[email]; ok {
		return domerrors.ErrEmailExists
	}
	u := *user
	u.Email = email
	s.byID[u.ID] = &u
	s.byEmail[email] = u.ID
	return nil
}

func (s *UserStore) FindByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	out := *u
	return &out, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[domain.NormalizeEmail(email)]
	if !ok {
		return nil, nil
	}
	out := *s.byID[id]
	return &out, nil
}

func (s *UserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byEmail[domain.NormalizeEmail(email)]
	return ok, nil
}

// Update replaces the stored user. The email index follows a changed address.
func (s *UserStore) Update(ctx context.Context, user *domain.User) error {
	email := domain.NormalizeEmail(user.Email)
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.byID[user.ID]
	if !ok {
		return domerrors.ErrUserNotFound
	}
	if email != cur.Email {
		if _, taken := s.byEmail[email]; taken {
			return domerrors.ErrEmailExists
		}
		delete(s.byEmail, cur.Email)
		s.byEmail[email] = user.ID
	}
	u := *user
	u.Email = email
	s.byID[u.ID] = &u
	return nil
}

func (s *UserStore) Delete(ctx context.Context, id domain.UserID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return false, nil
	}
	delete(s.byEmail, u.Email)
	delete(s.byID, id)
	return true, nil
}

func (s *UserStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.byID)), nil
}

var _ ports.UserStore = (*UserStore)(nil)
