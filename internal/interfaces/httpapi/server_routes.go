package httpapi

import (
	"net/http"
	"strings"
)

// routePrefixes always mounts the bare paths and adds the configured prefix when set.
func routePrefixes(prefix string) []string {
	cleaned := "/" + strings.Trim(strings.TrimSpace(prefix), "/")
	if cleaned == "/" {
		return []string{""}
	}
	return []string{"", cleaned}
}

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, prefix string, swaggerEnabled bool) {
	mux.HandleFunc("GET "+prefix+"/health", handler.Health)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET "+prefix+"/openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET "+prefix+"/docs", handler.SwaggerUI(prefix+"/openapi.yaml"))
	mux.HandleFunc("GET "+prefix+"/docs/", handler.SwaggerUI(prefix+"/openapi.yaml"))
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler, prefix string) {
	mux.HandleFunc("GET "+prefix+"/players", handler.ListPlayersPaged)
	mux.HandleFunc("POST "+prefix+"/players", handler.CreatePlayer)
	mux.HandleFunc("GET "+prefix+"/players/{id}", handler.GetPlayer)
	mux.HandleFunc("PUT "+prefix+"/players/{id}", handler.UpdatePlayer)
	mux.HandleFunc("DELETE "+prefix+"/players/{id}", handler.DeletePlayer)

	mux.HandleFunc("GET "+prefix+"/jugadores", handler.ListPlayers)
	mux.HandleFunc("GET "+prefix+"/jugadores/paged", handler.ListPlayersPaged)
	mux.HandleFunc("POST "+prefix+"/jugadores", handler.CreatePlayer)
	mux.HandleFunc("GET "+prefix+"/jugadores/{id}", handler.GetPlayer)
	mux.HandleFunc("PUT "+prefix+"/jugadores/{id}", handler.UpdatePlayer)
	mux.HandleFunc("DELETE "+prefix+"/jugadores/{id}", handler.DeletePlayer)
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, prefix, internalToken string) {
	mux.Handle("POST "+prefix+"/internal/team-directory/invalidate",
		RequireInternalToken(internalToken, http.HandlerFunc(handler.InvalidateTeamDirectory)))
}
