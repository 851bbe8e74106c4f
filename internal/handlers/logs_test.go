package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"radiorecon/internal/models"
	"radiorecon/internal/service"
)

func getWithAuth(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	return w
}

func TestLogsHandler_ListAndValidation(t *testing.T) {
	auth := &mockAuth{parseID: 99}
	entries := []models.LogEntry{
		{ID: "e1", Stream: models.StreamGeneral, Ticks: 10, Category: models.CategoryWifiScan, Payload: "WIFI_SCAN|SSID:a|MAC:00:00:00:00:00:01|RSSI:-40"},
		{ID: "e2", Stream: models.StreamGeneral, Ticks: 20, Category: models.CategoryWifiScan, Payload: "WIFI_SCAN|SSID:b|MAC:00:00:00:00:00:02|RSSI:-50"},
	}
	logs := &mockEventLog{resp: entries}
	s := &service.Service{
		Authorization: auth,
		EventLog:      logs,
	}
	r := newTestRouter(s)

	// invalid limit → 400
	w := getWithAuth(r, "/api/v1/logs/?limit=-3")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid limit, got %d", w.Code)
	}

	w = getWithAuth(r, "/api/v1/logs/?stream=general&category=wifi_scan&limit=2")
	if w.Code != http.StatusOK {
		t.Fatalf("logs status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count   int               `json:"count"`
		Entries []models.LogEntry `json:"entries"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 2 || len(out.Entries) != 2 {
		t.Fatalf("unexpected response: %+v", out)
	}
	want := service.LogFilter{Stream: "general", Category: "wifi_scan", Limit: 2}
	if logs.lastFilter != want {
		t.Fatalf("filter = %+v, want %+v", logs.lastFilter, want)
	}
}

func TestLogsHandler_Errors(t *testing.T) {
	auth := &mockAuth{parseID: 1}

	// service rejects unknown filter values → 400
	bad := &mockEventLog{}
	r := newTestRouter(&service.Service{Authorization: auth, EventLog: bad})
	bad.err = invalidFilterErr(t)
	if w := getWithAuth(r, "/api/v1/logs/?category=TEMP"); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	// storage failure → 500
	broken := &mockEventLog{err: errors.New("db locked")}
	r = newTestRouter(&service.Service{Authorization: auth, EventLog: broken})
	if w := getWithAuth(r, "/api/v1/logs/"); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}

	// missing token → 401
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs/", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

// invalidFilterErr obtains a real validation error from the event log service.
func invalidFilterErr(t *testing.T) error {
	t.Helper()
	svc := service.NewEventLogService(nil, nil, nil)
	_, err := svc.List(context.Background(), service.LogFilter{Category: "TEMP"})
	if !service.IsInvalidFilter(err) {
		t.Fatalf("expected invalid filter error, got %v", err)
	}
	return err
}
