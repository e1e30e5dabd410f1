// Package catalog is the train/station registry the reservation core
// reads from.  Trains are registered once at process start and are
// immutable during booking operations; nothing in the core ever writes
// to catalog data.
package catalog

import (
	"errors"
	"fmt"
	"sync"

	"github.com/iliyamo/train-seat-reservation/internal/model"
)

// ErrTrainNotFound is returned when a train id is not registered.
var ErrTrainNotFound = errors.New("train not found")

// Catalog holds registered trains in registration order.
type Catalog struct {
	mu     sync.RWMutex
	trains map[string]*model.Train
	order  []string
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{trains: make(map[string]*model.Train)}
}

// Register adds a train.  Registering the same id twice is a
// programming error and is rejected.
func (c *Catalog) Register(t *model.Train) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.trains[t.ID]; ok {
		return fmt.Errorf("train %s already registered", t.ID)
	}
	c.trains[t.ID] = t
	c.order = append(c.order, t.ID)
	return nil
}

// Train looks up a registered train by id.
func (c *Catalog) Train(id string) (*model.Train, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.trains[id]
	if !ok {
		return nil, fmt.Errorf("train %s: %w", id, ErrTrainNotFound)
	}
	return t, nil
}

// Trains returns all registered trains in registration order.
func (c *Catalog) Trains() []*model.Train {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*model.Train, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.trains[id])
	}
	return out
}
