package usecase

import (
	"context"
	"fmt"

	"github.com/Alejmm/MicroservicioPlayers/internal/domain/player"
)

// Create normalizes aliased field names, validates the payload and stores a new player.
// An absent number defaults to 0.
func (s *PlayerService) Create(ctx context.Context, raw map[string]any) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Create")
	defer span.End()

	fields := player.NormalizeFields(raw)
	if _, ok := fields["number"]; !ok {
		fields["number"] = 0
	}

	decoder := newPlayerDecoder()
	in := decoder.decodeCreate(fields)
	if err := decoder.result(s.validator.StructCtx(ctx, in)); err != nil {
		return player.Player{}, err
	}

	created, err := s.playerRepo.Create(ctx, player.Player{
		Name:     *in.Name,
		Number:   int(*in.Number),
		Position: *in.Position,
		TeamID:   *in.TeamID,
		PhotoURL: in.PhotoURL,
	})
	if err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	s.logger.InfoContext(ctx, "player created", "player_id", created.ID, "team_id", created.TeamID)
	return created, nil
}

// Update applies only the supplied fields. Validation runs before the lookup, so an invalid
// payload for a missing id reports the validation failure.
func (s *PlayerService) Update(ctx context.Context, id int64, raw map[string]any) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Update", playerIDAttr(id))
	defer span.End()

	decoder := newPlayerDecoder()
	in := decoder.decodeUpdate(player.NormalizeFields(raw))
	if err := decoder.result(s.validator.StructCtx(ctx, in)); err != nil {
		return player.Player{}, err
	}

	patch := player.Patch{
		Name:        in.Name,
		Position:    in.Position,
		TeamID:      in.TeamID,
		PhotoURL:    in.PhotoURL,
		PhotoURLSet: in.photoURLSet,
	}
	if in.Number != nil {
		number := int(*in.Number)
		patch.Number = &number
	}

	if patch.Empty() {
		return s.Get(ctx, id)
	}

	updated, exists, err := s.playerRepo.Update(ctx, id, patch)
	if err != nil {
		return player.Player{}, fmt.Errorf("update player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%d", ErrNotFound, id)
	}

	return updated, nil
}

func (s *PlayerService) Delete(ctx context.Context, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Delete", playerIDAttr(id))
	defer span.End()

	deleted, err := s.playerRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: player=%d", ErrNotFound, id)
	}

	s.logger.InfoContext(ctx, "player deleted", "player_id", id)
	return nil
}
