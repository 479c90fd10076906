package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"youthmind-portal/internal/store"
)

func TestHistoryExportEmptyWindowKeepsBinding(t *testing.T) {
	e := newEnv(t, "http://127.0.0.1:1")
	cookie := e.adminCookie()

	req := uploadRequest(t, "data.csv", sampleCSV)
	req.AddCookie(cookie)
	e.h.UploadDataset(httptest.NewRecorder(), req)

	req = jsonRequest(t, http.MethodPost, "/api/v1/dataset/history", map[string]string{
		"start_date": "1999-01-01",
		"end_date":   "1999-12-31",
	})
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.h.ExportHistory(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody(t, rec)
	if resp["exported"] != false {
		t.Errorf("exported = %v, want false", resp["exported"])
	}

	// A no-op export must not disturb the previously bound dataset.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/dataset", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	e.h.GetDataset(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("binding lost after no-op export: status %d", rec.Code)
	}
	if resp := decodeBody(t, rec); resp["cleaned_rows"] != float64(1) {
		t.Errorf("binding counts changed: %v", resp["cleaned_rows"])
	}
}

func TestHistoryExportBindsArtifact(t *testing.T) {
	e := newEnv(t, "http://127.0.0.1:1")
	cookie := e.adminCookie()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		rec := store.PredictionRecord{UserID: 1, Age: 15, ScreenTime: 4, SleepHours: 8, StudyHours: 3, PhysicalActivity: 60, MentalClarityScore: 7, Mood: "Happy"}
		if err := e.db.SavePrediction(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

	today := time.Now().UTC().Format("2006-01-02")
	req := jsonRequest(t, http.MethodPost, "/api/v1/dataset/history", map[string]string{
		"start_date": today,
		"end_date":   today,
	})
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.h.ExportHistory(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody(t, rec)
	if resp["exported"] != true || resp["rows"] != float64(2) {
		t.Errorf("exported=%v rows=%v, want true/2", resp["exported"], resp["rows"])
	}

	// The artifact is now the bound dataset, with no removed rows.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/dataset", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	e.h.GetDataset(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("dataset status = %d", rec.Code)
	}
	resp = decodeBody(t, rec)
	if resp["original_rows"] != float64(2) || resp["cleaned_rows"] != float64(2) || resp["removed_rows"] != float64(0) {
		t.Errorf("counts = %v/%v/%v, want 2/2/0", resp["original_rows"], resp["cleaned_rows"], resp["removed_rows"])
	}
}

func TestHistoryExportRejectsBadDates(t *testing.T) {
	e := newEnv(t, "http://127.0.0.1:1")

	req := jsonRequest(t, http.MethodPost, "/api/v1/dataset/history", map[string]string{
		"start_date": "01/02/2026",
		"end_date":   "2026-02-01",
	})
	req.AddCookie(e.adminCookie())
	rec := httptest.NewRecorder()
	e.h.ExportHistory(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHistoryRange(t *testing.T) {
	e := newEnv(t, "http://127.0.0.1:1")
	cookie := e.adminCookie()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dataset/history/range", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.h.HistoryRange(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["min_date"] != "" || resp["max_date"] != "" {
		t.Errorf("empty history range = %v..%v", resp["min_date"], resp["max_date"])
	}

	if err := e.db.SavePrediction(context.Background(), store.PredictionRecord{UserID: 1, Age: 15, ScreenTime: 1, SleepHours: 8, StudyHours: 1, PhysicalActivity: 50, MentalClarityScore: 5, Mood: "Happy"}); err != nil {
		t.Fatal(err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/dataset/history/range", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	e.h.HistoryRange(rec, req)
	resp = decodeBody(t, rec)
	today := time.Now().UTC().Format("2006-01-02")
	if resp["min_date"] != today || resp["max_date"] != today {
		t.Errorf("range = %v..%v, want %s..%s", resp["min_date"], resp["max_date"], today, today)
	}
}
