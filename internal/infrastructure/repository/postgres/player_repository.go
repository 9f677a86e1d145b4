package postgres

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/Alejmm/MicroservicioPlayers/internal/domain/player"
	qb "github.com/Alejmm/MicroservicioPlayers/internal/platform/querybuilder"
)

const playersTable = "players"

var playerSelectColumns = []string{
	"id",
	"name",
	"number",
	"position",
	"team_id",
	"photo_url",
	"created_at",
	"updated_at",
}

var playerReturning = "RETURNING " + strings.Join(playerSelectColumns, ", ")

var playerSortColumns = map[player.SortColumn]string{
	player.SortByName:     "LOWER(name)",
	player.SortByTeamID:   "team_id",
	player.SortByPosition: "LOWER(position)",
}

type PlayerRepository struct {
	db *sqlx.DB
}

var _ player.Repository = (*PlayerRepository)(nil)

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context, query player.Query) ([]player.Player, error) {
	stmt, args, err := playerSelectBuilder(query).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, stmt, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

func (r *PlayerRepository) Count(ctx context.Context, query player.Query) (int64, error) {
	stmt, args, err := playerSelectBuilder(query).Count().ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count players query: %w", err)
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, stmt, args...); err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}
	return total, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (player.Player, bool, error) {
	stmt, args, err := qb.Select(playerSelectColumns...).From(playersTable).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, stmt, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}
	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) (player.Player, error) {
	stmt, args, err := qb.InsertModel(playersTable, playerToRow(item), playerReturning)
	if err != nil {
		return player.Player{}, fmt.Errorf("build insert player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, stmt, args...); err != nil {
		return player.Player{}, fmt.Errorf("insert player: %w", err)
	}
	return playerFromRow(row), nil
}

func (r *PlayerRepository) Update(ctx context.Context, id int64, patch player.Patch) (player.Player, bool, error) {
	stmt, args, err := playerUpdateBuilder(id, patch).ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build update player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, stmt, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("update player: %w", err)
	}
	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) Delete(ctx context.Context, id int64) (bool, error) {
	stmt, args, err := qb.DeleteFrom(playersTable).Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete player query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return false, fmt.Errorf("delete player: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected delete player: %w", err)
	}
	return affected > 0, nil
}

func playerSelectBuilder(query player.Query) *qb.SelectBuilder {
	builder := qb.Select(playerSelectColumns...).From(playersTable)

	if query.Text != "" {
		textMatches := []qb.Condition{
			qb.ILike("name", qb.Contains(query.Text)),
			qb.ILike("position", qb.Contains(query.Text)),
		}
		// number is an INTEGER column; larger values cannot match.
		if query.TextNumber >= math.MinInt32 && query.TextNumber <= math.MaxInt32 {
			textMatches = append(textMatches, qb.Eq("number", query.TextNumber))
		}
		builder.Where(qb.Or(textMatches...))
	}
	if query.HasTeamID {
		builder.Where(qb.Eq("team_id", query.TeamID))
	}
	if query.Position != "" {
		builder.Where(qb.ILike("position", qb.Contains(query.Position)))
	}
	if query.RestrictTeams {
		ids := make([]any, 0, len(query.TeamIDs))
		for _, id := range query.TeamIDs {
			ids = append(ids, id)
		}
		builder.Where(qb.In("team_id", ids))
	}

	if query.Sort != nil {
		if column, ok := playerSortColumns[query.Sort.Column]; ok {
			direction := "ASC"
			if query.Sort.Direction == player.SortDesc {
				direction = "DESC"
			}
			builder.OrderBy(column + " " + direction)
		}
	}
	builder.OrderBy("id DESC")

	if query.Limit > 0 {
		builder.Limit(query.Limit).Offset(query.Offset)
	}
	return builder
}

func playerUpdateBuilder(id int64, patch player.Patch) *qb.UpdateBuilder {
	builder := qb.Update(playersTable)
	if patch.Name != nil {
		builder.Set("name", *patch.Name)
	}
	if patch.Number != nil {
		builder.Set("number", *patch.Number)
	}
	if patch.Position != nil {
		builder.Set("position", *patch.Position)
	}
	if patch.TeamID != nil {
		builder.Set("team_id", *patch.TeamID)
	}
	if patch.PhotoURLSet {
		builder.Set("photo_url", nullString(patch.PhotoURL))
	}
	return builder.
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", id)).
		Suffix(playerReturning)
}
