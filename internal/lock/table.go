// Package lock implements the in-memory seat lock table: time-boxed
// advisory locks keyed by (seat, travel date) that serialize concurrent
// allocation attempts over the one genuinely contended resource.
// Locks auto-expire after a fixed TTL so an allocation attempt that
// crashed before commit or rollback cannot pin a seat forever.
package lock

import (
	"sync"
	"time"
)

// DefaultTTL is how long an unreleased lock stays valid.  Every read
// path re-checks expiry, so the TTL holds even if the periodic sweep
// never runs.
const DefaultTTL = 10 * time.Minute

// DefaultSweepInterval is how often the background sweep purges
// expired entries.  The sweep is housekeeping, not a correctness
// requirement.
const DefaultSweepInterval = 60 * time.Second

type key struct {
	seatID string
	date   string
}

type entry struct {
	holder     string
	acquiredAt time.Time
	expiresAt  time.Time
}

// Table is the seat lock table.  A single table-wide mutex guards the
// map; the seat set is small and fixed, so per-bucket sharding would
// buy nothing here.
type Table struct {
	mu    sync.Mutex
	ttl   time.Duration
	locks map[key]entry

	// now is swappable in tests to exercise expiry without sleeping.
	now func() time.Time
}

// NewTable returns an empty lock table.  A non-positive ttl falls back
// to DefaultTTL.
func NewTable(ttl time.Duration) *Table {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Table{
		ttl:   ttl,
		locks: make(map[key]entry),
		now:   time.Now,
	}
}

// TryAcquire attempts to lock (seatID, date) for holder.  It fails if
// an unexpired lock exists — including one held by the same holder:
// the table is deliberately not reentrant, preserving the behaviour of
// the system this one replaces.  On success the lock expires at
// now + TTL.  TryAcquire never blocks.
func (t *Table) TryAcquire(seatID string, date string, holder string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	k := key{seatID: seatID, date: date}
	now := t.now()
	if e, ok := t.locks[k]; ok && now.Before(e.expiresAt) {
		return false
	}
	t.locks[k] = entry{holder: holder, acquiredAt: now, expiresAt: now.Add(t.ttl)}
	return true
}

// Release removes the lock on (seatID, date) if it is currently held
// by holder.  A holder mismatch or a missing lock is a no-op returning
// false, not an error; rollback paths call Release unconditionally.
func (t *Table) Release(seatID string, date string, holder string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	k := key{seatID: seatID, date: date}
	e, ok := t.locks[k]
	if !ok || e.holder != holder {
		return false
	}
	delete(t.locks, k)
	return true
}

// IsLocked reports whether an unexpired lock exists for (seatID, date).
// Stale entries are removed on the way through.
func (t *Table) IsLocked(seatID string, date string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	k := key{seatID: seatID, date: date}
	e, ok := t.locks[k]
	if !ok {
		return false
	}
	if !t.now().Before(e.expiresAt) {
		delete(t.locks, k)
		return false
	}
	return true
}

// HeldBy reports whether (seatID, date) is currently locked by holder.
// The inventory uses this to enforce that commits only happen under an
// active lock.
func (t *Table) HeldBy(seatID string, date string, holder string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.locks[key{seatID: seatID, date: date}]
	return ok && e.holder == holder && t.now().Before(e.expiresAt)
}

// Sweep removes every expired entry and returns how many were purged.
func (t *Table) Sweep() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	purged := 0
	for k, e := range t.locks {
		if !now.Before(e.expiresAt) {
			delete(t.locks, k)
			purged++
		}
	}
	return purged
}

// StartSweeper runs Sweep every interval until stop is closed.  A
// non-positive interval falls back to DefaultSweepInterval.
func (t *Table) StartSweeper(stop <-chan struct{}, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				t.Sweep()
			case <-stop:
				return
			}
		}
	}()
}
