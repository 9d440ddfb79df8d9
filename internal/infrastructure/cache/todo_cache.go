package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/todoapi/internal/application/ports"
	"github.com/amirhosseinghanipour/todoapi/internal/domain"
)

// DefaultTTL bounds how long a cached todo list may be served.
const DefaultTTL = 5 * time.Minute

// versionTTL outlives any in-flight listing.
const versionTTL = 24 * time.Hour

var errListingStale = errors.New("owner todos changed during listing")

// TodoStore is a read-through cache over another TodoStore. Only owner listings are cached;
// every write drops the owner's cached listings and bumps the owner's version key. A listing
// is written back only if the version is unchanged since it was loaded.
type TodoStore struct {
	next ports.TodoStore
	rdb  redis.UniversalClient
	ttl  time.Duration
	log  zerolog.Logger
}

var _ ports.TodoStore = (*TodoStore)(nil)

// NewTodoStore wraps next with a redis-backed listing cache.
func NewTodoStore(next ports.TodoStore, rdb redis.UniversalClient, ttl time.Duration, log zerolog.Logger) *TodoStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TodoStore{next: next, rdb: rdb, ttl: ttl, log: log}
}

type cachedTodo struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toCached(t *domain.Todo) cachedTodo {
	return cachedTodo{
		ID:          t.ID.UUID,
		OwnerID:     t.OwnerID.UUID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (c cachedTodo) toDomain() *domain.Todo {
	return &domain.Todo{
		ID:          domain.NewTodoID(c.ID),
		OwnerID:     domain.NewUserID(c.OwnerID),
		Title:       c.Title,
		Description: c.Description,
		Completed:   c.Completed,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ListKey is the redis key for an owner's listing under filter.
func ListKey(owner domain.UserID, filter domain.TodoFilter) string {
	variant := "all"
	if filter.Completed != nil {
		if *filter.Completed {
			variant = "done"
		} else {
			variant = "open"
		}
	}
	return fmt.Sprintf("todos:owner:%s:%s", owner, variant)
}

// VersionKey is the redis key counting writes to an owner's todos.
func VersionKey(owner domain.UserID) string {
	return fmt.Sprintf("todos:owner:%s:ver", owner)
}

func ownerKeys(owner domain.UserID) []string {
	done, open := true, false
	return []string{
		ListKey(owner, domain.TodoFilter{}),
		ListKey(owner, domain.TodoFilter{Completed: &done}),
		ListKey(owner, domain.TodoFilter{Completed: &open}),
	}
}

func (s *TodoStore) ListByOwner(ctx context.Context, owner domain.UserID, filter domain.TodoFilter) ([]*domain.Todo, error) {
	key := ListKey(owner, filter)
	raw, err := s.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached []cachedTodo
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			out := make([]*domain.Todo, 0, len(cached))
			for _, c := range cached {
				out = append(out, c.toDomain())
			}
			return out, nil
		}
		s.log.Warn().Str("key", key).Msg("discarding undecodable cache entry")
	case !errors.Is(err, redis.Nil):
		s.log.Warn().Err(err).Str("key", key).Msg("todo cache read failed")
	}

	version, verErr := s.version(ctx, owner)
	todos, err := s.next.ListByOwner(ctx, owner, filter)
	if err != nil {
		return nil, err
	}
	if verErr != nil {
		return todos, nil
	}
	cached := make([]cachedTodo, 0, len(todos))
	for _, t := range todos {
		cached = append(cached, toCached(t))
	}
	payload, err := json.Marshal(cached)
	if err != nil {
		s.log.Warn().Err(err).Msg("todo cache encode failed")
		return todos, nil
	}
	if err := s.fill(ctx, owner, version, key, payload); err != nil {
		if errors.Is(err, errListingStale) || errors.Is(err, redis.TxFailedErr) {
			s.log.Debug().Str("key", key).Msg("todo listing changed while loading, not cached")
		} else {
			s.log.Warn().Err(err).Str("key", key).Msg("todo cache write failed")
		}
	}
	return todos, nil
}

func (s *TodoStore) version(ctx context.Context, owner domain.UserID) (int64, error) {
	v, err := s.rdb.Get(ctx, VersionKey(owner)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// fill stores payload under key unless the owner's version moved past seen.
func (s *TodoStore) fill(ctx context.Context, owner domain.UserID, seen int64, key string, payload []byte) error {
	vkey := VersionKey(owner)
	return s.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, vkey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != seen {
			return errListingStale
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, s.ttl)
			return nil
		})
		return err
	}, vkey)
}

func (s *TodoStore) Create(ctx context.Context, todo *domain.Todo) error {
	if err := s.next.Create(ctx, todo); err != nil {
		return err
	}
	s.invalidate(ctx, todo.OwnerID)
	return nil
}

func (s *TodoStore) FindByID(ctx context.Context, id domain.TodoID) (*domain.Todo, error) {
	return s.next.FindByID(ctx, id)
}

func (s *TodoStore) Update(ctx context.Context, todo *domain.Todo) error {
	if err := s.next.Update(ctx, todo); err != nil {
		return err
	}
	s.invalidate(ctx, todo.OwnerID)
	return nil
}

func (s *TodoStore) Delete(ctx context.Context, id domain.TodoID) (bool, error) {
	existing, err := s.next.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}
	deleted, err := s.next.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.invalidate(ctx, existing.OwnerID)
	}
	return deleted, nil
}

func (s *TodoStore) DeleteByOwner(ctx context.Context, owner domain.UserID) (int64, error) {
	n, err := s.next.DeleteByOwner(ctx, owner)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, owner)
	return n, nil
}

func (s *TodoStore) Count(ctx context.Context) (int64, error) {
	return s.next.Count(ctx)
}

// invalidate is best effort; a stale entry expires with the TTL.
func (s *TodoStore) invalidate(ctx context.Context, owner domain.UserID) {
	vkey := VersionKey(owner)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, vkey)
		pipe.Expire(ctx, vkey, versionTTL)
		pipe.Del(ctx, ownerKeys(owner)...)
		return nil
	})
	if err != nil {
		s.log.Warn().Err(err).Str("owner_id", owner.String()).Msg("todo cache invalidation failed")
	}
}
