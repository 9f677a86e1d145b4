package httpapi

import (
	"time"

	"github.com/Alejmm/MicroservicioPlayers/internal/domain/player"
	"github.com/Alejmm/MicroservicioPlayers/internal/domain/team"
)

const timestampLayout = "2006-01-02T15:04:05.000000Z"

// playerResponse carries both the English and the Spanish field names so either client
// vocabulary can read the record.
type playerResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Number    int     `json:"number"`
	Position  string  `json:"position"`
	TeamID    int64   `json:"team_id"`
	PhotoURL  *string `json:"photo_url"`
	CreatedAt *string `json:"created_at"`
	UpdatedAt *string `json:"updated_at"`

	Nombre       string  `json:"nombre"`
	Posicion     string  `json:"posicion"`
	EquipoID     int64   `json:"equipoId"`
	EquipoNombre *string `json:"equipoNombre"`
	Equipo       *string `json:"equipo"`
}

type pagedPlayersResponse struct {
	Items      []playerResponse `json:"items"`
	TotalItems int64            `json:"totalItems"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
}

type deletedResponse struct {
	Deleted bool `json:"deleted"`
}

type healthResponse struct {
	Service string `json:"service"`
	Status  string `json:"status"`
	Time    string `json:"time"`
}

func projectPlayer(item player.Player, names team.Names) playerResponse {
	teamName := names.Name(item.TeamID)

	return playerResponse{
		ID:        item.ID,
		Name:      item.Name,
		Number:    item.Number,
		Position:  item.Position,
		TeamID:    item.TeamID,
		PhotoURL:  item.PhotoURL,
		CreatedAt: formatTimestamp(item.CreatedAt),
		UpdatedAt: formatTimestamp(item.UpdatedAt),

		Nombre:       item.Name,
		Posicion:     item.Position,
		EquipoID:     item.TeamID,
		EquipoNombre: teamName,
		Equipo:       teamName,
	}
}

func projectPlayers(items []player.Player, names team.Names) []playerResponse {
	out := make([]playerResponse, 0, len(items))
	for _, item := range items {
		out = append(out, projectPlayer(item, names))
	}
	return out
}

func formatTimestamp(value time.Time) *string {
	if value.IsZero() {
		return nil
	}
	formatted := value.UTC().Format(timestampLayout)
	return &formatted
}
