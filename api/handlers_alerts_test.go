package api

import (
	"net/http"
	"strings"
	"testing"
)

// Alert handlers hit the repository directly, so only the request
// validation paths are exercised here; the persistence behavior is covered
// by the database package tests.

func TestCreateAlertMissingFields(t *testing.T) {
	for _, body := range []string{"", "{}", `{"ticker":"AAPL"}`, `{"alert_type":"fall below"}`, "not json"} {
		recorder := doRequest(t, &stubWatchlists{}, http.MethodPost, "/api/alerts/new", body)
		if recorder.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected 400, got %d", body, recorder.Code)
			continue
		}
		if got := strings.TrimSpace(recorder.Body.String()); got != `{"error":"Missing 'ticker' or 'alert_type' in request body"}` {
			t.Errorf("body %q: unexpected response %s", body, got)
		}
	}
}

func TestDeleteAlertInvalidID(t *testing.T) {
	for _, id := range []string{"abc", "0", "-3"} {
		recorder := doRequest(t, &stubWatchlists{}, http.MethodDelete, "/api/alerts/delete/"+id, "")
		if recorder.Code != http.StatusBadRequest {
			t.Errorf("id %q: expected 400, got %d", id, recorder.Code)
		}
	}
}
