package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type watchlistRequest struct {
	Name string `json:"name"`
}

type addAssetRequest struct {
	Ticker string `json:"ticker"`
}

func (s *Server) handleListWatchlists(w http.ResponseWriter, r *http.Request) {
	watchlists, err := s.watchlists.List()
	if err != nil {
		respondWithError(w, err, "Failed to retrieve watchlists")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"watchlists": watchlists})
}

func (s *Server) handleCreateWatchlist(w http.ResponseWriter, r *http.Request) {
	var body watchlistRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
		respondError(w, http.StatusBadRequest, "Missing 'name' in request body")
		return
	}

	watchlist, err := s.watchlists.Create(body.Name)
	if err != nil {
		respondWithError(w, err, "Failed to create watchlist")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   fmt.Sprintf("Watchlist '%s' created successfully", watchlist.Name),
		"watchlist": watchlist,
	})
}

func (s *Server) handleDeleteWatchlist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	watchlist, err := s.watchlists.Delete(id)
	if err != nil {
		respondWithError(w, err, "Failed to delete watchlist")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":   fmt.Sprintf("Watchlist '%s' with ID %d deleted successfully", watchlist.Name, id),
		"watchlist": watchlist,
	})
}

func (s *Server) handleRenameWatchlist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	var body watchlistRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
		respondError(w, http.StatusBadRequest, "Missing 'name' in request body")
		return
	}

	watchlist, err := s.watchlists.Rename(id, body.Name)
	if err != nil {
		respondWithError(w, err, "Failed to update watchlist")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":   fmt.Sprintf("Watchlist with ID %d updated successfully", id),
		"watchlist": watchlist,
	})
}

func (s *Server) handleAddAsset(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	var body addAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Ticker == "" {
		respondError(w, http.StatusBadRequest, "Missing 'ticker' in request body")
		return
	}

	watchlist, err := s.watchlists.AddAsset(r.Context(), id, body.Ticker)
	if err != nil {
		respondWithError(w, err, fmt.Sprintf("Failed to add asset %s to watchlist", body.Ticker))
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":   fmt.Sprintf("Asset with ticker '%s' added to watchlist with ID %d successfully", body.Ticker, id),
		"watchlist": watchlist,
	})
}
