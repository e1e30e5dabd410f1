package lock

import (
	"sync"
	"testing"
	"time"
)

const testDate = "2030-06-01"

func TestTryAcquireAndRelease(t *testing.T) {
	tbl := NewTable(DefaultTTL)
	if !tbl.TryAcquire("S1-1", testDate, "h1") {
		t.Fatalf("first acquire should succeed")
	}
	if tbl.TryAcquire("S1-1", testDate, "h2") {
		t.Fatalf("second holder must not acquire a held lock")
	}
	if !tbl.IsLocked("S1-1", testDate) {
		t.Fatalf("lock should be visible")
	}
	if !tbl.Release("S1-1", testDate, "h1") {
		t.Fatalf("holder release should succeed")
	}
	if tbl.IsLocked("S1-1", testDate) {
		t.Fatalf("lock should be gone after release")
	}
}

func TestTryAcquireNotReentrant(t *testing.T) {
	tbl := NewTable(DefaultTTL)
	if !tbl.TryAcquire("S1-1", testDate, "h1") {
		t.Fatalf("first acquire should succeed")
	}
	// Same holder, live lock: the table is deliberately not
	// reentrant.
	if tbl.TryAcquire("S1-1", testDate, "h1") {
		t.Fatalf("re-acquire by the same holder must fail")
	}
}

func TestReleaseHolderMismatch(t *testing.T) {
	tbl := NewTable(DefaultTTL)
	tbl.TryAcquire("S1-1", testDate, "h1")
	if tbl.Release("S1-1", testDate, "h2") {
		t.Fatalf("mismatched holder must not release")
	}
	if !tbl.IsLocked("S1-1", testDate) {
		t.Fatalf("lock must survive a mismatched release")
	}
	if tbl.Release("S1-2", testDate, "h1") {
		t.Fatalf("releasing an unheld seat should report false")
	}
}

func TestLockExpiry(t *testing.T) {
	tbl := NewTable(10 * time.Minute)
	current := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
	tbl.now = func() time.Time { return current }

	if !tbl.TryAcquire("S1-1", testDate, "h1") {
		t.Fatalf("acquire should succeed")
	}
	current = current.Add(9 * time.Minute)
	if tbl.TryAcquire("S1-1", testDate, "h2") {
		t.Fatalf("lock should still be live at 9 minutes")
	}
	current = current.Add(2 * time.Minute)
	if tbl.IsLocked("S1-1", testDate) {
		t.Fatalf("lock should have expired at 11 minutes")
	}
	if !tbl.TryAcquire("S1-1", testDate, "h2") {
		t.Fatalf("expired lock should be acquirable by a new holder")
	}
}

func TestHeldByChecksExpiry(t *testing.T) {
	tbl := NewTable(10 * time.Minute)
	current := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
	tbl.now = func() time.Time { return current }

	tbl.TryAcquire("S1-1", testDate, "h1")
	if !tbl.HeldBy("S1-1", testDate, "h1") {
		t.Fatalf("HeldBy should see the live lock")
	}
	if tbl.HeldBy("S1-1", testDate, "h2") {
		t.Fatalf("HeldBy must check the holder")
	}
	current = current.Add(11 * time.Minute)
	if tbl.HeldBy("S1-1", testDate, "h1") {
		t.Fatalf("HeldBy must not report an expired lock")
	}
}

func TestSweepPurgesExpired(t *testing.T) {
	tbl := NewTable(10 * time.Minute)
	current := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
	tbl.now = func() time.Time { return current }

	tbl.TryAcquire("S1-1", testDate, "h1")
	tbl.TryAcquire("S1-2", testDate, "h1")
	current = current.Add(5 * time.Minute)
	tbl.TryAcquire("S1-3", testDate, "h1")

	current = current.Add(6 * time.Minute) // first two expired, third alive
	if purged := tbl.Sweep(); purged != 2 {
		t.Fatalf("expected 2 purged, got %d", purged)
	}
	if !tbl.IsLocked("S1-3", testDate) {
		t.Fatalf("live lock must survive the sweep")
	}
}

func TestMutualExclusionUnderContention(t *testing.T) {
	tbl := NewTable(DefaultTTL)
	const goroutines = 32

	var wg sync.WaitGroup
	wins := make(chan string, goroutines)
	start := make(chan struct{})
	for i := 0; i < goroutines; i++ {
		holder := string(rune('a' + i))
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if tbl.TryAcquire("S1-1", testDate, holder) {
				wins <- holder
			}
		}()
	}
	close(start)
	wg.Wait()
	close(wins)

	var winners []string
	for h := range wins {
		winners = append(winners, h)
	}
	if len(winners) != 1 {
		t.Fatalf("expected exactly one winner, got %d (%v)", len(winners), winners)
	}
}
