package repository

import (
	"context"
	"math/rand"
	"strconv"
	"sync"

	"registro/domain"
)

// memoryCollection is the shared CRUD core of the transient backend: a
// process-wide map guarded by a single RWMutex. It is non-durable and meant
// for development and tests; concurrent writers are last-write-wins at the
// granularity of one operation.
type memoryCollection[T any, P any] struct {
	mu    sync.RWMutex
	items map[string]T

	// id exposes the entity's identifier field to the generic code.
	id func(*T) *string
	// apply merges a patch into a stored entity.
	apply func(*P, *T)
}

func newMemoryCollection[T any, P any](id func(*T) *string, apply func(*P, *T)) *memoryCollection[T, P] {
	return &memoryCollection[T, P]{
		items: make(map[string]T),
		id:    id,
		apply: apply,
	}
}

// newTransientID mimics the throwaway ids of the transient store: a random
// numeric string of up to nine digits. Uniqueness is re-rolled under the
// collection's write lock.
func newTransientID() string {
	return strconv.FormatInt(rand.Int63n(1_000_000_000), 10)
}

func (c *memoryCollection[T, P]) GetAll(_ context.Context) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	all := make([]T, 0, len(c.items))
	for _, item := range c.items {
		all = append(all, item)
	}
	return all, nil
}

func (c *memoryCollection[T, P]) GetByID(_ context.Context, id string) (*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

func (c *memoryCollection[T, P]) Create(_ context.Context, entity *T) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := newTransientID()
	for _, taken := c.items[id]; taken; _, taken = c.items[id] {
		id = newTransientID()
	}

	stored := *entity
	*c.id(&stored) = id
	c.items[id] = stored
	return &stored, nil
}

func (c *memoryCollection[T, P]) Update(_ context.Context, id string, patch *P) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c.apply(patch, &item)
	c.items[id] = item
	return &item, nil
}

func (c *memoryCollection[T, P]) Delete(_ context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return false, nil
	}
	delete(c.items, id)
	return true, nil
}
