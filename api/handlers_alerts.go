package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"stock-price-alert/database"
)

type alertRequest struct {
	Ticker         string   `json:"ticker"`
	AlertType      string   `json:"alert_type"`
	PriceThreshold *float64 `json:"price_threshold"`
}

func (s *Server) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := s.repo.ListAlerts(r.URL.Query().Get("ticker"))
	if err != nil {
		respondWithError(w, err, "Failed to retrieve alerts")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"alerts": alerts})
}

func (s *Server) handleCreateAlert(w http.ResponseWriter, r *http.Request) {
	var body alertRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Ticker == "" || body.AlertType == "" {
		respondError(w, http.StatusBadRequest, "Missing 'ticker' or 'alert_type' in request body")
		return
	}

	alert := database.Alert{
		Ticker:         body.Ticker,
		AlertType:      body.AlertType,
		PriceThreshold: body.PriceThreshold,
	}
	if err := s.repo.CreateAlert(&alert); err != nil {
		respondWithError(w, err, "Failed to create alert")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": fmt.Sprintf("Alert on '%s' created successfully", alert.Ticker),
		"alert":   alert,
	})
}

func (s *Server) handleDeleteAlert(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	alert, err := s.repo.DeleteAlert(id)
	if err != nil {
		respondWithError(w, err, "Failed to delete alert")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("Alert with ID %d deleted successfully", id),
		"alert":   alert,
	})
}
