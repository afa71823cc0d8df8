package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"stock-price-alert/database"
	"stock-price-alert/marketdata"
)

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// respondError sends a JSON {"error": message} body.
func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]string{"error": message})
}

// respondWithError maps a service or gateway error to an HTTP status. For
// client errors the error's own message is safe to expose; anything else is
// logged server-side and replaced by the generic fallback message.
func respondWithError(w http.ResponseWriter, err error, fallback string) {
	code := statusForError(err)
	if code >= http.StatusInternalServerError {
		log.Printf("API Error [%d]: %s - %v", code, fallback, err)
		respondError(w, code, fallback)
		return
	}
	log.Printf("API Error [%d]: %v", code, err)
	respondError(w, code, err.Error())
}

// statusForError maps the error taxonomy to HTTP status codes: validation
// 400, not-found 404, conflict 409, everything else (upstream and storage
// failures included) 500.
func statusForError(err error) int {
	var validationErr *database.ValidationError
	var notFoundErr *database.NotFoundError
	var conflictErr *database.ConflictError

	switch {
	case errors.As(err, &validationErr),
		errors.Is(err, marketdata.ErrEmptyQuery),
		errors.Is(err, marketdata.ErrInvalidPair):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr),
		errors.Is(err, marketdata.ErrPairNotFound):
		return http.StatusNotFound
	case errors.As(err, &conflictErr):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// pathID parses the {id} path segment as a positive integer.
func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		return 0, errors.New("invalid ID")
	}
	return id, nil
}

// tickerList splits a comma-separated tickers parameter, dropping blanks.
func tickerList(raw string) []string {
	parts := strings.Split(raw, ",")
	tickers := make([]string, 0, len(parts))
	for _, part := range parts {
		if t := strings.TrimSpace(part); t != "" {
			tickers = append(tickers, t)
		}
	}
	return tickers
}

// getIntParam retrieves an integer query parameter with default value and
// optional range validation
func getIntParam(r *http.Request, key string, defaultVal int, minVal, maxVal *int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}

	if minVal != nil && val < *minVal {
		return defaultVal
	}
	if maxVal != nil && val > *maxVal {
		return defaultVal
	}

	return val
}
