package usecase

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sourcegraph/conc/pool"

	"github.com/Alejmm/MicroservicioPlayers/internal/domain/player"
	"github.com/Alejmm/MicroservicioPlayers/internal/domain/team"
	"github.com/Alejmm/MicroservicioPlayers/internal/platform/logging"
)

type PlayerService struct {
	playerRepo player.Repository
	teams      team.Directory
	validator  *validator.Validate
	logger     *logging.Logger
}

func NewPlayerService(playerRepo player.Repository, teams team.Directory, logger *logging.Logger) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PlayerService{
		playerRepo: playerRepo,
		teams:      teams,
		validator:  newPlayerValidator(),
		logger:     logger,
	}
}

type SearchResult struct {
	Items    []player.Player
	Total    int64
	Page     int
	PageSize int
	Teams    team.Names
}

type ListResult struct {
	Items []player.Player
	Teams team.Names
}

// Search returns one page of matching players with the total count before pagination.
func (s *PlayerService) Search(ctx context.Context, spec player.FilterSpec) (SearchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Search")
	defer span.End()

	result := SearchResult{
		Items:    []player.Player{},
		Page:     spec.Page,
		PageSize: spec.PageSize,
		Teams:    team.Names{},
	}

	query := s.buildQuery(ctx, spec)
	if query.RestrictTeams && len(query.TeamIDs) == 0 {
		return result, nil
	}
	query.Limit = spec.PageSize
	query.Offset = spec.Offset()

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		total, err := s.playerRepo.Count(ctx, query)
		if err != nil {
			return fmt.Errorf("count players: %w", err)
		}
		result.Total = total
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.playerRepo.List(ctx, query)
		if err != nil {
			return fmt.Errorf("list players page: %w", err)
		}
		if items != nil {
			result.Items = items
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		result.Teams = s.TeamNames(ctx)
		return nil
	})
	if err := p.Wait(); err != nil {
		return SearchResult{}, err
	}

	return result, nil
}

// ListAll returns every matching player using the same predicates and ordering as Search.
func (s *PlayerService) ListAll(ctx context.Context, spec player.FilterSpec) (ListResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListAll")
	defer span.End()

	result := ListResult{
		Items: []player.Player{},
		Teams: team.Names{},
	}

	query := s.buildQuery(ctx, spec)
	if query.RestrictTeams && len(query.TeamIDs) == 0 {
		return result, nil
	}

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		items, err := s.playerRepo.List(ctx, query)
		if err != nil {
			return fmt.Errorf("list players: %w", err)
		}
		if items != nil {
			result.Items = items
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		result.Teams = s.TeamNames(ctx)
		return nil
	})
	if err := p.Wait(); err != nil {
		return ListResult{}, err
	}

	return result, nil
}

func (s *PlayerService) Get(ctx context.Context, id int64) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Get", playerIDAttr(id))
	defer span.End()

	item, exists, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%d", ErrNotFound, id)
	}

	return item, nil
}

// TeamNames returns the team directory mapping used to enrich output records.
func (s *PlayerService) TeamNames(ctx context.Context) team.Names {
	if s.teams == nil {
		return team.Names{}
	}
	names := s.teams.Resolve(ctx)
	if names == nil {
		return team.Names{}
	}
	return names
}

// InvalidateTeams drops the cached team directory.
func (s *PlayerService) InvalidateTeams(ctx context.Context) {
	if s.teams == nil {
		return
	}
	s.teams.Invalidate()
	s.logger.InfoContext(ctx, "team directory invalidated")
}

// buildQuery is shared by Search and ListAll so both apply identical predicates.
func (s *PlayerService) buildQuery(ctx context.Context, spec player.FilterSpec) player.Query {
	query := player.NewQuery(spec)
	if spec.TeamNameQuery == "" {
		return query
	}

	query.RestrictTeams = true
	if s.teams != nil {
		query.TeamIDs = s.teams.MatchIDs(ctx, spec.TeamNameQuery)
	}
	return query
}
