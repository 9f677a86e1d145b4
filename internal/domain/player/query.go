package player

import (
	"cmp"
	"slices"
	"strings"
)

// Query is the storage-facing form of a FilterSpec. All set predicates must hold.
type Query struct {
	// Text matches name or position by substring, or number by equality with TextNumber.
	Text       string
	TextNumber int64

	TeamID    int64
	HasTeamID bool

	Position string

	// RestrictTeams limits rows to TeamIDs. An empty TeamIDs with RestrictTeams set matches nothing.
	RestrictTeams bool
	TeamIDs       []int64

	Sort *Sort

	// Limit <= 0 disables pagination.
	Limit  int
	Offset int
}

// NewQuery carries the predicates and ordering of spec. Pagination and team name
// restriction are left to the caller.
func NewQuery(spec FilterSpec) Query {
	q := Query{
		Text:      spec.TextQuery,
		TeamID:    spec.TeamID,
		HasTeamID: spec.HasTeamID,
		Position:  spec.Position,
		Sort:      spec.Sort,
	}
	if q.Text != "" {
		q.TextNumber = CoerceInt(q.Text)
	}
	return q
}

// Matches reports whether item satisfies every predicate of q.
func (q Query) Matches(item Player) bool {
	if q.Text != "" {
		if !containsFold(item.Name, q.Text) &&
			!containsFold(item.Position, q.Text) &&
			int64(item.Number) != q.TextNumber {
			return false
		}
	}
	if q.HasTeamID && item.TeamID != q.TeamID {
		return false
	}
	if q.Position != "" && !containsFold(item.Position, q.Position) {
		return false
	}
	if q.RestrictTeams && !slices.Contains(q.TeamIDs, item.TeamID) {
		return false
	}
	return true
}

// Compare orders a before b according to q.Sort, falling back to id desc.
func (q Query) Compare(a, b Player) int {
	if q.Sort != nil {
		var c int
		switch q.Sort.Column {
		case SortByName:
			c = cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		case SortByTeamID:
			c = cmp.Compare(a.TeamID, b.TeamID)
		case SortByPosition:
			c = cmp.Compare(strings.ToLower(a.Position), strings.ToLower(b.Position))
		}
		if q.Sort.Direction == SortDesc {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return cmp.Compare(b.ID, a.ID)
}

// Window applies Limit and Offset to an ordered slice.
func (q Query) Window(items []Player) []Player {
	if q.Limit <= 0 {
		return items
	}
	if q.Offset >= len(items) {
		return []Player{}
	}
	end := q.Offset + q.Limit
	if end > len(items) || end < q.Offset {
		end = len(items)
	}
	return items[q.Offset:end]
}

func containsFold(value, sub string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(sub))
}
