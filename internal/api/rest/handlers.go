package rest

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fortuna/statline/internal/service"
	"github.com/fortuna/statline/internal/store"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	db             *store.Database
	gameService    *service.GameService
	derivedService *service.DerivedService
}

// NewHandler creates a new handler
func NewHandler(db *store.Database) *Handler {
	return &Handler{
		db:             db,
		gameService:    service.NewGameService(db),
		derivedService: service.NewDerivedService(db),
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	if err := h.db.HealthCheck(r.Context()); err != nil {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	respondJSON(w, code, map[string]string{
		"status":  status,
		"service": "statline",
	})
}

// ListGames returns stored games, optionally filtered by team, season and
// game type query parameters.
func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	gameType := q.Get("type")
	if gameType != "" && !store.ValidGameType(gameType) {
		respondError(w, http.StatusBadRequest, "Invalid game type", nil)
		return
	}

	games, err := h.gameService.ListGames(r.Context(), q.Get("team"), q.Get("season"), gameType)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch games", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"games": games,
		"count": len(games),
	})
}

// GetGame returns a specific game by ID
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID := vars["gameID"]

	game, err := h.gameService.GetGame(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Game not found", err)
		return
	}

	respondJSON(w, http.StatusOK, game)
}

// GetRoster returns every roster entry
func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	entries, err := h.derivedService.GetRoster(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch roster", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"roster": entries,
		"count":  len(entries),
	})
}

// GetPlayerTotals returns a player's aggregated totals and averages
func (h *Handler) GetPlayerTotals(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	playerID := vars["playerID"]

	q := r.URL.Query()
	totals, err := h.derivedService.GetPlayerTotals(r.Context(), playerID, q.Get("season"), q.Get("type"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch player totals", err)
		return
	}
	if len(totals) == 0 {
		respondError(w, http.StatusNotFound, "No totals for player", nil)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"player_id": playerID,
		"totals":    totals,
	})
}

// GetTeamLeaders returns a team's leaderboards
func (h *Handler) GetTeamLeaders(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	teamID := vars["teamID"]

	q := r.URL.Query()
	boards, err := h.derivedService.GetLeaderboards(r.Context(), teamID, q.Get("season"), q.Get("type"), q.Get("stat"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch leaderboards", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"team_id":      teamID,
		"leaderboards": boards,
	})
}

// GetTeamRecords returns a team's single-game record boards
func (h *Handler) GetTeamRecords(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	teamID := vars["teamID"]

	q := r.URL.Query()
	boards, err := h.derivedService.GetRecords(r.Context(), teamID, q.Get("season"), q.Get("stat"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch records", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"team_id": teamID,
		"records": boards,
	})
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}
	if err != nil {
		response["details"] = err.Error()
	}

	respondJSON(w, status, response)
}
