package httpapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Alejmm/MicroservicioPlayers/internal/domain/player"
	"github.com/Alejmm/MicroservicioPlayers/internal/usecase"
)

func (h *Handler) ListPlayersPaged(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayersPaged")
	defer span.End()

	spec := player.BuildFilterSpec(queryParams(r.URL.Query()))
	result, err := h.playerService.Search(ctx, spec)
	if err != nil {
		h.fail(ctx, w, "search players failed", err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, pagedPlayersResponse{
		Items:      projectPlayers(result.Items, result.Teams),
		TotalItems: result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
	})
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	spec := player.BuildFilterSpec(queryParams(r.URL.Query()))
	result, err := h.playerService.ListAll(ctx, spec)
	if err != nil {
		h.fail(ctx, w, "list players failed", err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, projectPlayers(result.Items, result.Teams))
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID, err := playerIDFromPath(r)
	if err != nil {
		h.fail(ctx, w, "get player failed", err)
		return
	}

	item, err := h.playerService.Get(ctx, playerID)
	if err != nil {
		h.fail(ctx, w, "get player failed", err, "player_id", playerID)
		return
	}

	writeJSON(ctx, w, http.StatusOK, projectPlayer(item, h.playerService.TeamNames(ctx)))
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	created, err := h.playerService.Create(ctx, decodePayload(ctx, r))
	if err != nil {
		h.fail(ctx, w, "create player failed", err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, projectPlayer(created, h.playerService.TeamNames(ctx)))
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	playerID, err := playerIDFromPath(r)
	if err != nil {
		h.fail(ctx, w, "update player failed", err)
		return
	}

	updated, err := h.playerService.Update(ctx, playerID, decodePayload(ctx, r))
	if err != nil {
		h.fail(ctx, w, "update player failed", err, "player_id", playerID)
		return
	}

	writeJSON(ctx, w, http.StatusOK, projectPlayer(updated, h.playerService.TeamNames(ctx)))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	playerID, err := playerIDFromPath(r)
	if err != nil {
		h.fail(ctx, w, "delete player failed", err)
		return
	}

	if err := h.playerService.Delete(ctx, playerID); err != nil {
		h.fail(ctx, w, "delete player failed", err, "player_id", playerID)
		return
	}

	writeJSON(ctx, w, http.StatusOK, deletedResponse{Deleted: true})
}

// playerIDFromPath treats ids that can never match a record as missing records.
func playerIDFromPath(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.PathValue("id"))
	playerID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || playerID <= 0 {
		return 0, fmt.Errorf("%w: player=%q", usecase.ErrNotFound, raw)
	}
	return playerID, nil
}

// queryParams keeps the last value of a repeated parameter, like form bodies do.
func queryParams(values url.Values) map[string]string {
	params := make(map[string]string, len(values))
	for key, list := range values {
		if len(list) == 0 {
			continue
		}
		params[key] = list[len(list)-1]
	}
	return params
}
