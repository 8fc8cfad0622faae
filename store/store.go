// Package store holds all application state in memory. Records live in
// ordered slices with per-kind monotonic ids, guarded by one mutex per
// collection so every operation is atomic with respect to other requests.
package store

import (
	"errors"
	"sync"
	"time"

	"edumate/models"
)

var ErrEmailTaken = errors.New("user already exists")

// Users stores accounts. Unlike projects and notes, users are keyed by
// email at creation, not by an owner, so they get their own store.
type Users struct {
	mu     sync.Mutex
	nextID int
	users  []models.User
}

func NewUsers() *Users {
	return &Users{nextID: 1}
}

// Create assigns the next id and stores the user. The email must not be
// taken already (exact, case-sensitive match).
func (s *Users) Create(u models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return models.User{}, ErrEmailTaken
		}
	}
	u.ID = s.nextID
	s.nextID++
	u.CreatedAt = time.Now()
	s.users = append(s.users, u)
	return u, nil
}

func (s *Users) FindByEmail(email string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, true
		}
	}
	return models.User{}, false
}

// Entity is anything a Collection can hold: it knows its own id and the
// id of the account that owns it.
type Entity interface {
	EntityID() int
	EntityOwner() int
}

// Collection is an owner-scoped record store. Every lookup filters by
// id AND owner through the same path, so an id owned by someone else is
// indistinguishable from an id that never existed.
//
// Records are plain values: reads hand out copies and Update mutates
// only the master record under the lock, so nothing a caller holds
// aliases store state once the lock is released.
type Collection[T Entity] struct {
	mu     sync.Mutex
	nextID int
	items  []T
}

func NewCollection[T Entity]() *Collection[T] {
	return &Collection[T]{nextID: 1}
}

// Insert assigns the next id (ids start at 1 and are never reused, even
// after deletes) and appends the record built from it.
func (c *Collection[T]) Insert(build func(id int) T) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	item := build(c.nextID)
	c.nextID++
	c.items = append(c.items, item)
	return item
}

// ListByOwner returns the owner's records in insertion order.
func (c *Collection[T]) ListByOwner(ownerID int) []T {
	return c.ListWhere(ownerID, nil)
}

// ListWhere returns the owner's records matching keep, in insertion
// order. A nil keep matches everything.
func (c *Collection[T]) ListWhere(ownerID int, keep func(T) bool) []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	matches := []T{}
	for _, item := range c.items {
		if item.EntityOwner() != ownerID {
			continue
		}
		if keep != nil && !keep(item) {
			continue
		}
		matches = append(matches, item)
	}
	return matches
}

func (c *Collection[T]) Find(id, ownerID int) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.find(id, ownerID)
	if !ok {
		var zero T
		return zero, false
	}
	return c.items[i], true
}

// Update applies the patch to the matching record in place and returns
// a copy of the result. The record keeps its id.
func (c *Collection[T]) Update(id, ownerID int, apply func(*T)) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.find(id, ownerID)
	if !ok {
		var zero T
		return zero, false
	}
	apply(&c.items[i])
	return c.items[i], true
}

// Delete removes the matching record, preserving the relative order of
// the remainder.
func (c *Collection[T]) Delete(id, ownerID int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, item := range c.items {
		if item.EntityID() == id && item.EntityOwner() == ownerID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// find returns the index of the matching record; the caller must hold
// the lock.
func (c *Collection[T]) find(id, ownerID int) (int, bool) {
	for i, item := range c.items {
		if item.EntityID() == id && item.EntityOwner() == ownerID {
			return i, true
		}
	}
	return 0, false
}
