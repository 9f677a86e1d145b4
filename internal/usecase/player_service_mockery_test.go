package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/Alejmm/MicroservicioPlayers/internal/domain/player"
	"github.com/Alejmm/MicroservicioPlayers/internal/domain/team"
	playermock "github.com/Alejmm/MicroservicioPlayers/internal/mocks/domain/player"
	teammock "github.com/Alejmm/MicroservicioPlayers/internal/mocks/domain/team"
	"github.com/Alejmm/MicroservicioPlayers/internal/platform/logging"
)

func TestPlayerService_Search_TeamNameMissSkipsRepositoryUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	playerRepo := playermock.NewRepository(t)
	directory := teammock.NewDirectory(t)

	directory.On("MatchIDs", mock.Anything, "Nonexistent").Return([]int64{}).Once()

	service := NewPlayerService(playerRepo, directory, logging.NewNop())
	result, err := service.Search(ctx, player.BuildFilterSpec(map[string]string{"equipoNombre": "Nonexistent"}))
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if result.Total != 0 || len(result.Items) != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
	playerRepo.AssertNotCalled(t, "Count", mock.Anything, mock.Anything)
	playerRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestPlayerService_Search_BuildsQueryUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	playerRepo := playermock.NewRepository(t)
	directory := teammock.NewDirectory(t)

	matchQuery := mock.MatchedBy(func(q player.Query) bool {
		return q.Text == "10" && q.TextNumber == 10 &&
			q.RestrictTeams && len(q.TeamIDs) == 1 && q.TeamIDs[0] == 1 &&
			q.Sort != nil && q.Sort.Column == player.SortByName && q.Sort.Direction == player.SortDesc &&
			q.Limit == 5 && q.Offset == 5
	})

	directory.On("MatchIDs", mock.Anything, "barca").Return([]int64{1}).Once()
	directory.On("Resolve", mock.Anything).Return(team.Names{1: "FC Barcelona"}).Once()
	playerRepo.On("Count", mock.Anything, matchQuery).Return(int64(6), nil).Once()
	playerRepo.On("List", mock.Anything, matchQuery).Return([]player.Player{{ID: 4, Name: "Lewandowski", TeamID: 1}}, nil).Once()

	service := NewPlayerService(playerRepo, directory, logging.NewNop())
	result, err := service.Search(ctx, player.BuildFilterSpec(map[string]string{
		"search":       "10",
		"equipoNombre": "barca",
		"sortBy":       "nombre",
		"sortDir":      "desc",
		"pagina":       "2",
		"tamanoPagina": "5",
	}))
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if result.Total != 6 || len(result.Items) != 1 || result.Page != 2 || result.PageSize != 5 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if name := result.Teams.Name(1); name == nil || *name != "FC Barcelona" {
		t.Fatalf("expected team names for enrichment, got %v", result.Teams)
	}
}

func TestPlayerService_Search_RepositoryErrorUsingMockery(t *testing.T) {
	t.Parallel()

	playerRepo := playermock.NewRepository(t)
	directory := teammock.NewDirectory(t)

	boom := errors.New("connection reset")
	directory.On("Resolve", mock.Anything).Return(team.Names{}).Maybe()
	playerRepo.On("Count", mock.Anything, mock.Anything).Return(int64(0), boom).Once()
	playerRepo.On("List", mock.Anything, mock.Anything).Return(nil, nil).Maybe()

	service := NewPlayerService(playerRepo, directory, logging.NewNop())
	_, err := service.Search(context.Background(), player.BuildFilterSpec(nil))
	if !errors.Is(err, boom) {
		t.Fatalf("expected repository error, got %v", err)
	}
}

func TestPlayerService_Get_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), "trace_id", "trace-123")
	playerRepo := playermock.NewRepository(t)

	playerRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), int64(77)).
		Return(player.Player{}, false, nil).
		Once()

	service := NewPlayerService(playerRepo, nil, logging.NewNop())
	if _, err := service.Get(ctx, 77); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPlayerService_Update_ValidatesBeforeLookupUsingMockery(t *testing.T) {
	t.Parallel()

	playerRepo := playermock.NewRepository(t)
	service := NewPlayerService(playerRepo, nil, logging.NewNop())

	_, err := service.Update(context.Background(), 77, map[string]any{"numero": -4})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	playerRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlayerService_Update_PassesPatchUsingMockery(t *testing.T) {
	t.Parallel()

	playerRepo := playermock.NewRepository(t)
	playerRepo.
		On("Update", mock.Anything, int64(9), mock.MatchedBy(func(p player.Patch) bool {
			return p.Position != nil && *p.Position == "DF" &&
				p.Name == nil && p.Number == nil && p.TeamID == nil && !p.PhotoURLSet
		})).
		Return(player.Player{ID: 9, Position: "DF"}, true, nil).
		Once()

	service := NewPlayerService(playerRepo, nil, logging.NewNop())
	got, err := service.Update(context.Background(), 9, map[string]any{"posicion": "DF", "apodo": "ignored"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Position != "DF" {
		t.Fatalf("unexpected player: %+v", got)
	}
}
