package cache

import (
	"context"
	"strconv"

	"github.com/valyala/bytebufferpool"

	"github.com/Alejmm/MicroservicioPlayers/internal/domain/player"
	basecache "github.com/Alejmm/MicroservicioPlayers/internal/platform/cache"
)

const playerKeyPrefix = "player:"

// PlayerRepository caches reads of next and drops every cached player entry on writes.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

var _ player.Repository = (*PlayerRepository)(nil)

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context, query player.Query) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, queryKey("list", query), func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx, query)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) Count(ctx context.Context, query player.Query) (int64, error) {
	countQuery := query
	countQuery.Limit, countQuery.Offset, countQuery.Sort = 0, 0, nil

	v, err := r.cache.GetOrLoad(ctx, queryKey("count", countQuery), func(ctx context.Context) (any, error) {
		return r.next.Count(ctx, query)
	})
	if err != nil {
		return 0, err
	}

	total, _ := v.(int64)
	return total, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (player.Player, bool, error) {
	key := playerKeyPrefix + "id:" + strconv.FormatInt(id, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return cachedPlayerByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	cached, _ := v.(cachedPlayerByID)
	return cached.value, cached.exists, nil
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) (player.Player, error) {
	created, err := r.next.Create(ctx, item)
	if err != nil {
		return player.Player{}, err
	}
	r.invalidate(ctx)
	return created, nil
}

func (r *PlayerRepository) Update(ctx context.Context, id int64, patch player.Patch) (player.Player, bool, error) {
	updated, exists, err := r.next.Update(ctx, id, patch)
	if err != nil {
		return player.Player{}, false, err
	}
	if exists {
		r.invalidate(ctx)
	}
	return updated, exists, nil
}

func (r *PlayerRepository) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := r.next.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		r.invalidate(ctx)
	}
	return deleted, nil
}

func (r *PlayerRepository) invalidate(ctx context.Context) {
	r.cache.DeletePrefix(ctx, playerKeyPrefix)
}

type cachedPlayerByID struct {
	value  player.Player
	exists bool
}

// queryKey renders every field of query that changes the result set.
func queryKey(kind string, query player.Query) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(playerKeyPrefix)
	_, _ = buf.WriteString(kind)
	_, _ = buf.WriteString(":q=")
	_, _ = buf.WriteString(strconv.Quote(query.Text))
	if query.HasTeamID {
		_, _ = buf.WriteString(":team=")
		_, _ = buf.WriteString(strconv.FormatInt(query.TeamID, 10))
	}
	_, _ = buf.WriteString(":pos=")
	_, _ = buf.WriteString(strconv.Quote(query.Position))
	if query.RestrictTeams {
		_, _ = buf.WriteString(":teams=[")
		for i, id := range query.TeamIDs {
			if i > 0 {
				_ = buf.WriteByte(',')
			}
			_, _ = buf.WriteString(strconv.FormatInt(id, 10))
		}
		_ = buf.WriteByte(']')
	}
	if query.Sort != nil {
		_, _ = buf.WriteString(":sort=")
		_, _ = buf.WriteString(string(query.Sort.Column))
		_ = buf.WriteByte(' ')
		_, _ = buf.WriteString(string(query.Sort.Direction))
	}
	_, _ = buf.WriteString(":limit=")
	_, _ = buf.WriteString(strconv.Itoa(query.Limit))
	_, _ = buf.WriteString(":offset=")
	_, _ = buf.WriteString(strconv.Itoa(query.Offset))

	return buf.String()
}
