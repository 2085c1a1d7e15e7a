package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// SetupRoutes wires every handler onto a new router
func SetupRoutes(presentation *PresentationHandler, catalog *CatalogHandler, session *SessionHandler) *mux.Router {
	router := mux.NewRouter()
	api := router.PathPrefix("/api/ppttheme").Subrouter()

	// Saved settings
	api.HandleFunc("/settings", presentation.SaveSettings).Methods(http.MethodPost)
	api.HandleFunc("/settings", presentation.ListSettings).Methods(http.MethodGet)
	api.HandleFunc("/settings/{id}", presentation.GetSettings).Methods(http.MethodGet)
	api.HandleFunc("/settings/{id}", presentation.DeleteSettings).Methods(http.MethodDelete)
	api.HandleFunc("/settings/{id}/export", presentation.ExportSettings).Methods(http.MethodGet)
	api.HandleFunc("/settings/{id}/exports", presentation.ListExports).Methods(http.MethodGet)
	api.HandleFunc("/settings/{id}/exports/{format:json|pptx}", presentation.DownloadExport).Methods(http.MethodGet)

	// Catalogs
	api.HandleFunc("/themes", catalog.ListThemes).Methods(http.MethodGet)
	api.HandleFunc("/slide-sizes", catalog.ListSlideSizes).Methods(http.MethodGet)
	api.HandleFunc("/fonts", catalog.ListFonts).Methods(http.MethodGet)
	api.HandleFunc("/charts", catalog.ListCharts).Methods(http.MethodGet)

	// Live edit sessions
	api.HandleFunc("/sessions", session.CreateSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}", session.GetSession).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}", session.DeleteSession).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{id}/commands", session.ExecuteCommand).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/ws", session.Connect)

	return router
}
