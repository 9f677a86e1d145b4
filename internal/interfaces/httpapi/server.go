package httpapi

import (
	"net/http"

	"github.com/Alejmm/MicroservicioPlayers/internal/platform/id"
	"github.com/Alejmm/MicroservicioPlayers/internal/platform/logging"
)

type RouterConfig struct {
	ServiceName        string
	RoutePrefix        string
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
	InternalToken      string
	RequestIDs         id.Generator
}

func NewRouter(handler *Handler, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	for _, prefix := range routePrefixes(cfg.RoutePrefix) {
		registerSystemRoutes(mux, handler, prefix, cfg.SwaggerEnabled)
		registerPlayerRoutes(mux, handler, prefix)
		registerInternalRoutes(mux, handler, prefix, cfg.InternalToken)
	}

	return RequestTracing(cfg.ServiceName,
		RequestLogging(logger, cfg.RequestIDs,
			CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered",
					"panic", rec,
					"request_id", RequestIDFromContext(ctx),
				)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
