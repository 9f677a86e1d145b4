package teams

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Alejmm/MicroservicioPlayers/internal/domain/team"
	"github.com/Alejmm/MicroservicioPlayers/internal/platform/logging"
)

type Fetcher interface {
	FetchTeams(ctx context.Context) (map[int64]string, error)
}

// RefreshPolicy decides when a resolved snapshot must be fetched again.
type RefreshPolicy interface {
	Stale(fetchedAt, now time.Time) bool
}

// NeverRefresh keeps the first resolution, successful or not, for the life of the process.
type NeverRefresh struct{}

func (NeverRefresh) Stale(time.Time, time.Time) bool { return false }

type TTLRefresh struct {
	TTL time.Duration
}

func (p TTLRefresh) Stale(fetchedAt, now time.Time) bool {
	return p.TTL > 0 && now.Sub(fetchedAt) >= p.TTL
}

// ParseRefreshPolicy maps the TEAMS_REFRESH_POLICY value to a policy.
func ParseRefreshPolicy(name string, ttl time.Duration) (RefreshPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "never":
		return NeverRefresh{}, nil
	case "ttl":
		if ttl <= 0 {
			return nil, fmt.Errorf("ttl refresh policy requires a positive ttl, got %s", ttl)
		}
		return TTLRefresh{TTL: ttl}, nil
	default:
		return nil, fmt.Errorf("unknown refresh policy %q", name)
	}
}

type snapshot struct {
	names     team.Names
	fetchedAt time.Time
}

// Directory caches the team name mapping. The returned maps are shared and must not be modified.
type Directory struct {
	fetcher Fetcher
	policy  RefreshPolicy
	logger  *logging.Logger
	now     func() time.Time

	current atomic.Pointer[snapshot]
	flight  singleflight.Group

	// mu guards generation and serializes writes to current. generation
	// advances on every Invalidate; loads started under an older one are not stored.
	mu         sync.Mutex
	generation uint64
}

var _ team.Directory = (*Directory)(nil)

func NewDirectory(fetcher Fetcher, policy RefreshPolicy, logger *logging.Logger) *Directory {
	if policy == nil {
		policy = NeverRefresh{}
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &Directory{
		fetcher: fetcher,
		policy:  policy,
		logger:  logger,
		now:     time.Now,
	}
}

// Resolve returns the cached mapping, fetching it on first use. A failed fetch is
// logged and cached as an empty mapping.
func (d *Directory) Resolve(ctx context.Context) team.Names {
	if names, ok := d.fresh(); ok {
		return names
	}

	generation := d.currentGeneration()
	out, _, _ := d.flight.Do("teams#"+strconv.FormatUint(generation, 10), func() (any, error) {
		if names, ok := d.fresh(); ok {
			return names, nil
		}
		return d.load(ctx, generation), nil
	})

	names, _ := out.(team.Names)
	if names == nil {
		return team.Names{}
	}
	return names
}

// MatchIDs returns the ids of teams whose name contains query, case-insensitively, ascending.
func (d *Directory) MatchIDs(ctx context.Context, query string) []int64 {
	needle := strings.ToLower(strings.TrimSpace(query))
	names := d.Resolve(ctx)

	ids := make([]int64, 0, 4)
	for id, name := range names {
		if strings.Contains(strings.ToLower(name), needle) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// Invalidate drops the cached mapping so the next Resolve fetches again.
func (d *Directory) Invalidate() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.generation++
	d.current.Store(nil)
}

func (d *Directory) currentGeneration() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.generation
}

func (d *Directory) storeIfGeneration(next *snapshot, generation uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.generation != generation {
		return false
	}
	d.current.Store(next)
	return true
}

func (d *Directory) fresh() (team.Names, bool) {
	current := d.current.Load()
	if current == nil || d.policy.Stale(current.fetchedAt, d.now()) {
		return nil, false
	}
	return current.names, true
}

func (d *Directory) load(ctx context.Context, generation uint64) team.Names {
	ctx = context.WithoutCancel(ctx)

	var names team.Names
	if d.fetcher != nil {
		fetched, err := d.fetcher.FetchTeams(ctx)
		if err != nil {
			d.logger.WarnContext(ctx, "team directory unavailable, enrichment disabled", "error", err)
		} else {
			names = fetched
		}
	}
	if names == nil {
		names = team.Names{}
	}

	if !d.storeIfGeneration(&snapshot{names: names, fetchedAt: d.now()}, generation) {
		d.logger.InfoContext(ctx, "team directory invalidated during fetch, result not cached", "teams", len(names))
		return names
	}
	d.logger.InfoContext(ctx, "team directory resolved", "teams", len(names))
	return names
}
