package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	// List returns matches in query order. Limit <= 0 returns every match.
	List(ctx context.Context, query Query) ([]Player, error)
	// Count returns the number of matches, ignoring Limit and Offset.
	Count(ctx context.Context, query Query) (int64, error)
	GetByID(ctx context.Context, id int64) (Player, bool, error)
	Create(ctx context.Context, item Player) (Player, error)
	Update(ctx context.Context, id int64, patch Patch) (Player, bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
