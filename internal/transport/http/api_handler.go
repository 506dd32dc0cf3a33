package http

import (
	"encoding/json"
	"net/http"

	"pixel-trivia-service/internal/app"

	"github.com/rs/zerolog"
)

// APIHandler serves the read-side JSON endpoints consumed by the client:
// category listing, leaderboard standings, and stored settings.
type APIHandler struct {
	catalog app.CatalogRepository
	board   app.LeaderboardStore
	prefs   *app.PreferenceService
	log     zerolog.Logger
}

func NewAPIHandler(catalog app.CatalogRepository, board app.LeaderboardStore, prefs *app.PreferenceService, log zerolog.Logger) *APIHandler {
	return &APIHandler{catalog: catalog, board: board, prefs: prefs, log: log}
}

// Register mounts the API routes on mux.
func (h *APIHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/categories", h.handleCategories)
	mux.HandleFunc("/api/leaderboard", h.handleLeaderboard)
	mux.HandleFunc("/api/settings", h.handleSettings)
}

func (h *APIHandler) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list categories")
		http.Error(w, "failed to load categories", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, categories)
}

func (h *APIHandler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	categoryID := r.URL.Query().Get("category")
	h.writeJSON(w, h.board.List(categoryID))
}

func (h *APIHandler) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		settings, err := h.prefs.Load(r.Context())
		if err != nil {
			h.log.Error().Err(err).Msg("load settings")
			http.Error(w, "failed to load settings", http.StatusInternalServerError)
			return
		}
		h.writeJSON(w, settings)
	case http.MethodPut:
		var settings app.Settings
		if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
			http.Error(w, "invalid settings payload", http.StatusBadRequest)
			return
		}
		if err := h.prefs.Save(r.Context(), settings); err != nil {
			h.log.Error().Err(err).Msg("save settings")
			http.Error(w, "failed to save settings", http.StatusInternalServerError)
			return
		}
		h.writeJSON(w, settings)
	case http.MethodDelete:
		if err := h.prefs.Reset(r.Context()); err != nil {
			h.log.Error().Err(err).Msg("reset settings")
			http.Error(w, "failed to reset settings", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *APIHandler) writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Debug().Err(err).Msg("write response")
	}
}
