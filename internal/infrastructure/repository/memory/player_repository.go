package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/Alejmm/MicroservicioPlayers/internal/domain/player"
)

// PlayerRepository keeps players in process memory. It applies the same predicates and
// ordering as the postgres repository.
type PlayerRepository struct {
	mu     sync.RWMutex
	byID   map[int64]player.Player
	nextID int64
	now    func() time.Time
}

var _ player.Repository = (*PlayerRepository)(nil)

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	r := &PlayerRepository{
		byID: make(map[int64]player.Player, len(players)),
		now:  func() time.Time { return time.Now().UTC() },
	}

	for _, p := range players {
		if p.ID <= 0 {
			r.nextID++
			p.ID = r.nextID
		}
		if p.ID > r.nextID {
			r.nextID = p.ID
		}
		r.byID[p.ID] = clonePlayer(p)
	}

	return r
}

func (r *PlayerRepository) List(_ context.Context, query player.Query) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return query.Window(r.matching(query)), nil
}

func (r *PlayerRepository) Count(_ context.Context, query player.Query) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total int64
	for _, item := range r.byID {
		if query.Matches(item) {
			total++
		}
	}
	return total, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, id int64) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[id]
	if !ok {
		return player.Player{}, false, nil
	}
	return clonePlayer(item), true, nil
}

func (r *PlayerRepository) Create(_ context.Context, item player.Player) (player.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := r.now()
	item.ID = r.nextID
	item.CreatedAt = now
	item.UpdatedAt = now
	r.byID[item.ID] = clonePlayer(item)

	return clonePlayer(item), nil
}

func (r *PlayerRepository) Update(_ context.Context, id int64, patch player.Patch) (player.Player, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[id]
	if !ok {
		return player.Player{}, false, nil
	}

	updated := patch.Apply(current)
	updated.UpdatedAt = r.now()
	r.byID[id] = updated

	return clonePlayer(updated), true, nil
}

func (r *PlayerRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}

// matching must be called with the read lock held.
func (r *PlayerRepository) matching(query player.Query) []player.Player {
	out := make([]player.Player, 0, len(r.byID))
	for _, item := range r.byID {
		if query.Matches(item) {
			out = append(out, clonePlayer(item))
		}
	}
	slices.SortFunc(out, query.Compare)
	return out
}

func clonePlayer(p player.Player) player.Player {
	if p.PhotoURL != nil {
		photo := *p.PhotoURL
		p.PhotoURL = &photo
	}
	return p
}
