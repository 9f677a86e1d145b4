package teams

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Alejmm/MicroservicioPlayers/internal/platform/logging"
)

type fetcherFunc func(ctx context.Context) (map[int64]string, error)

func (f fetcherFunc) FetchTeams(ctx context.Context) (map[int64]string, error) {
	return f(ctx)
}

func TestDirectoryResolve_CachesSuccess(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	dir := NewDirectory(fetcherFunc(func(context.Context) (map[int64]string, error) {
		calls.Add(1)
		return map[int64]string{1: "Barcelona"}, nil
	}), nil, logging.NewNop())

	for i := 0; i < 3; i++ {
		if got := dir.Resolve(context.Background()); got[1] != "Barcelona" {
			t.Fatalf("unexpected names: %v", got)
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single fetch, got %d", calls.Load())
	}
}

func TestDirectoryResolve_FailureCachedAsEmpty(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	dir := NewDirectory(fetcherFunc(func(context.Context) (map[int64]string, error) {
		calls.Add(1)
		return nil, errors.New("connection refused")
	}), NeverRefresh{}, logging.NewNop())

	for i := 0; i < 3; i++ {
		got := dir.Resolve(context.Background())
		if got == nil || len(got) != 0 {
			t.Fatalf("expected empty non-nil map, got %v", got)
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("failures must not be retried, got %d fetches", calls.Load())
	}
}

func TestDirectoryResolve_ConcurrentFirstAccess(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	dir := NewDirectory(fetcherFunc(func(context.Context) (map[int64]string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return map[int64]string{1: "Barcelona"}, nil
	}), nil, logging.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := dir.Resolve(context.Background()); got[1] != "Barcelona" {
				t.Errorf("unexpected names: %v", got)
			}
		}()
	}
	wg.Wait()

	if calls.Load() > 2 {
		t.Fatalf("expected concurrent callers to share the fetch, got %d fetches", calls.Load())
	}
}

func TestDirectoryResolve_CanceledCallerDoesNotPoisonCache(t *testing.T) {
	t.Parallel()

	dir := NewDirectory(fetcherFunc(func(ctx context.Context) (map[int64]string, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return map[int64]string{1: "Barcelona"}, nil
	}), nil, logging.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if got := dir.Resolve(ctx); got[1] != "Barcelona" {
		t.Fatalf("expected fetch to ignore caller cancellation, got %v", got)
	}
}

func TestDirectory_TTLRefreshAndInvalidate(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	dir := NewDirectory(fetcherFunc(func(context.Context) (map[int64]string, error) {
		n := calls.Add(1)
		if n == 1 {
			return nil, errors.New("boom")
		}
		return map[int64]string{1: "Barcelona"}, nil
	}), TTLRefresh{TTL: time.Minute}, logging.NewNop())

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	dir.now = func() time.Time { return now }

	if got := dir.Resolve(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty map after failure, got %v", got)
	}

	now = now.Add(30 * time.Second)
	if got := dir.Resolve(context.Background()); len(got) != 0 {
		t.Fatalf("expected cached empty map inside ttl, got %v", got)
	}

	now = now.Add(time.Minute)
	if got := dir.Resolve(context.Background()); got[1] != "Barcelona" {
		t.Fatalf("expected refresh after ttl, got %v", got)
	}

	dir.Invalidate()
	dir.Resolve(context.Background())
	if calls.Load() != 3 {
		t.Fatalf("expected invalidate to force a fetch, got %d fetches", calls.Load())
	}
}

func TestDirectory_InvalidateDuringFetchDropsResult(t *testing.T) {
	t.Parallel()

	fetching := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	dir := NewDirectory(fetcherFunc(func(context.Context) (map[int64]string, error) {
		if calls.Add(1) == 1 {
			close(fetching)
			<-release
			return map[int64]string{1: "Barcelona"}, nil
		}
		return map[int64]string{1: "FC Barcelona"}, nil
	}), nil, logging.NewNop())

	done := make(chan map[int64]string, 1)
	go func() {
		done <- dir.Resolve(context.Background())
	}()

	<-fetching
	dir.Invalidate()
	close(release)

	if got := <-done; got[1] != "Barcelona" {
		t.Fatalf("expected in-flight caller to receive its fetch, got %v", got)
	}
	if got := dir.Resolve(context.Background()); got[1] != "FC Barcelona" {
		t.Fatalf("expected a fresh fetch after invalidate, got %v", got)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 fetches, got %d", calls.Load())
	}
}

func TestDirectoryMatchIDs(t *testing.T) {
	t.Parallel()

	dir := NewDirectory(fetcherFunc(func(context.Context) (map[int64]string, error) {
		return map[int64]string{3: "Real Madrid", 1: "Real Betis", 2: "Barcelona"}, nil
	}), nil, logging.NewNop())

	if got := dir.MatchIDs(context.Background(), "REAL"); !slices.Equal(got, []int64{1, 3}) {
		t.Fatalf("unexpected ids: %v", got)
	}
	if got := dir.MatchIDs(context.Background(), "Nonexistent"); len(got) != 0 {
		t.Fatalf("expected no ids, got %v", got)
	}
}

func TestParseRefreshPolicy(t *testing.T) {
	t.Parallel()

	if policy, err := ParseRefreshPolicy("", 0); err != nil || policy != (NeverRefresh{}) {
		t.Fatalf("expected never policy, got %v %v", policy, err)
	}
	if policy, err := ParseRefreshPolicy("TTL", time.Minute); err != nil || policy != (TTLRefresh{TTL: time.Minute}) {
		t.Fatalf("expected ttl policy, got %v %v", policy, err)
	}
	if _, err := ParseRefreshPolicy("ttl", 0); err == nil {
		t.Fatalf("expected error for ttl without duration")
	}
	if _, err := ParseRefreshPolicy("hourly", time.Minute); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}
