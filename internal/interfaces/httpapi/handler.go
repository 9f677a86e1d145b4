package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Alejmm/MicroservicioPlayers/internal/platform/logging"
	"github.com/Alejmm/MicroservicioPlayers/internal/usecase"
)

const defaultServiceName = "players-service"

type Handler struct {
	playerService *usecase.PlayerService
	serviceName   string
	logger        *logging.Logger
	now           func() time.Time
}

func NewHandler(playerService *usecase.PlayerService, serviceName string, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(serviceName) == "" {
		serviceName = defaultServiceName
	}

	return &Handler{
		playerService: playerService,
		serviceName:   serviceName,
		logger:        logger.Named("httpapi"),
		now:           time.Now,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Health")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, healthResponse{
		Service: h.serviceName,
		Status:  "ok",
		Time:    h.now().UTC().Format(timestampLayout),
	})
}

func (h *Handler) InvalidateTeamDirectory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InvalidateTeamDirectory")
	defer span.End()

	h.playerService.InvalidateTeams(ctx)
	w.WriteHeader(http.StatusNoContent)
}

// fail logs server side failures at error level and client mistakes at debug level.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error, args ...any) {
	args = append(args, "request_id", RequestIDFromContext(ctx), "error", err)
	if mapError(ctx, err).HTTPStatus >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, args...)
	} else {
		h.logger.DebugContext(ctx, msg, args...)
	}
	writeError(ctx, w, err)
}
