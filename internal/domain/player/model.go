package player

import "time"

// Player is a roster entry. TeamID references the external team directory without
// referential integrity.
type Player struct {
	ID        int64
	Name      string
	Number    int
	Position  string
	TeamID    int64
	PhotoURL  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Patch carries the fields supplied by a partial update. A nil pointer means the
// field was absent; PhotoURLSet with a nil PhotoURL clears the photo.
type Patch struct {
	Name        *string
	Number      *int
	Position    *string
	TeamID      *int64
	PhotoURL    *string
	PhotoURLSet bool
}

func (p Patch) Empty() bool {
	return p.Name == nil && p.Number == nil && p.Position == nil && p.TeamID == nil && !p.PhotoURLSet
}

// Apply returns a copy of item with the supplied fields replaced.
func (p Patch) Apply(item Player) Player {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Number != nil {
		item.Number = *p.Number
	}
	if p.Position != nil {
		item.Position = *p.Position
	}
	if p.TeamID != nil {
		item.TeamID = *p.TeamID
	}
	if p.PhotoURLSet {
		if p.PhotoURL == nil {
			item.PhotoURL = nil
		} else {
			photo := *p.PhotoURL
			item.PhotoURL = &photo
		}
	}
	return item
}
