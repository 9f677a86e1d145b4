package team

import "context"

// Names maps team ids to display names as published by the teams service.
type Names map[int64]string

// Name returns the team name for id, or nil when unknown.
func (n Names) Name(id int64) *string {
	name, ok := n[id]
	if !ok {
		return nil
	}
	return &name
}

// Directory resolves team names. Implementations degrade to an empty map instead of failing.
type Directory interface {
	Resolve(ctx context.Context) Names
	MatchIDs(ctx context.Context, query string) []int64
	Invalidate()
}
