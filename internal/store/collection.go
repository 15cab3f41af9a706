package store

import (
	"time"

	"github.com/diewo77/go-cotizaciones/internal/models"
)

// Record is implemented by every top-level entity.
type Record[T any] interface {
	RecordID() string
	Created() time.Time
	WithIdentity(id string, createdAt time.Time) T
}

// Collection is one ordered list of records inside the snapshot.
type Collection[T Record[T]] struct {
	store *Store
	name  string
	items func(*models.Snapshot) *[]T
}

// Name is the snapshot key of the collection.
func (c *Collection[T]) Name() string { return c.name }

// List returns the records in insertion order. The slice is a copy; the
// records' nested slices are shared and must not be mutated.
func (c *Collection[T]) List() []T {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	return append([]T{}, *c.items(&c.store.snap)...)
}

// Len returns the number of records.
func (c *Collection[T]) Len() int {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	return len(*c.items(&c.store.snap))
}

// Get looks a record up by id, returning models.ErrNotFound when absent.
func (c *Collection[T]) Get(id string) (T, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	for _, rec := range *c.items(&c.store.snap) {
		if rec.RecordID() == id {
			return rec, nil
		}
	}
	var zero T
	return zero, models.ErrNotFound
}

// Add assigns a fresh id and creation time, appends the record and returns it.
func (c *Collection[T]) Add(rec T) T {
	rec = rec.WithIdentity(c.store.newID(), c.store.now())
	c.store.commit(c.name, OpAdd, rec.RecordID(), func(sn *models.Snapshot) bool {
		list := c.items(sn)
		*list = append(*list, rec)
		return true
	})
	return rec
}

// Update replaces the record with the same id, keeping its original
// creation time. It reports false, and changes nothing, when no record
// matches.
func (c *Collection[T]) Update(rec T) bool {
	id := rec.RecordID()
	return c.store.commit(c.name, OpUpdate, id, func(sn *models.Snapshot) bool {
		list := *c.items(sn)
		for i := range list {
			if list[i].RecordID() == id {
				list[i] = rec.WithIdentity(id, list[i].Created())
				return true
			}
		}
		return false
	})
}

// Delete removes the record with id. It reports false when none matched.
func (c *Collection[T]) Delete(id string) bool {
	return c.store.commit(c.name, OpDelete, id, func(sn *models.Snapshot) bool {
		list := c.items(sn)
		for i, rec := range *list {
			if rec.RecordID() == id {
				*list = append((*list)[:i:i], (*list)[i+1:]...)
				return true
			}
		}
		return false
	})
}
