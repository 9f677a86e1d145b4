package postgres

import (
	"database/sql"
	"time"

	"github.com/Alejmm/MicroservicioPlayers/internal/domain/player"
)

type playerTableModel struct {
	ID        int64          `db:"id,readonly"`
	Name      string         `db:"name"`
	Number    int            `db:"number"`
	Position  string         `db:"position"`
	TeamID    int64          `db:"team_id"`
	PhotoURL  sql.NullString `db:"photo_url"`
	CreatedAt time.Time      `db:"created_at,readonly"`
	UpdatedAt time.Time      `db:"updated_at,readonly"`
}

func playerToRow(item player.Player) playerTableModel {
	return playerTableModel{
		Name:     item.Name,
		Number:   item.Number,
		Position: item.Position,
		TeamID:   item.TeamID,
		PhotoURL: nullString(item.PhotoURL),
	}
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:        row.ID,
		Name:      row.Name,
		Number:    row.Number,
		Position:  row.Position,
		TeamID:    row.TeamID,
		PhotoURL:  nullStringPtr(row.PhotoURL),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
