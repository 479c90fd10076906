package mlclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"youthmind-portal/internal/apperr"
)

// upstream is a scriptable fake of the model service.
type upstream struct {
	healthStatus int
	predictCalls int32
	modelsCalls  int32
	trainCalls   int32
	predictBody  string
	lastPredict  map[string]float64
	lastTrainCSV string
}

func (u *upstream) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(u.healthStatus)
	})
	mux.HandleFunc("/predict", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&u.predictCalls, 1)
		json.NewDecoder(r.Body).Decode(&u.lastPredict)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, u.predictBody)
	})
	mux.HandleFunc("/models", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&u.modelsCalls, 1)
		io.WriteString(w, `[{"model_filename":"model_v1.pkl","test_accuracy":0.91}]`)
	})
	mux.HandleFunc("/train", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&u.trainCalls, 1)
		file, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		u.lastTrainCSV = string(data)
		io.WriteString(w, `{"success":true,"model_filename":"model_v2.pkl","train_accuracy":0.95,"test_accuracy":0.9}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func features() map[string]float64 {
	return map[string]float64{
		"Age":                  18,
		"Hours_of_Screen_Time": 5,
		"Hours_of_Sleep":       8,
		"Daily_Study_Hours":    4,
		"Physical_Activity":    45,
		"Mental_Clarity_Score": 6,
	}
}

func TestPredictSkippedWhenHealthFails(t *testing.T) {
	u := &upstream{healthStatus: http.StatusServiceUnavailable, predictBody: `{}`}
	srv := u.server(t)
	c := New(Config{BaseURL: srv.URL})

	_, err := c.Predict(context.Background(), features())
	if err == nil {
		t.Fatal("expected error when health probe fails")
	}
	if !apperr.IsKind(err, apperr.UpstreamUnavailable) {
		t.Errorf("error kind = %v, want UpstreamUnavailable", apperr.KindOf(err))
	}
	if n := atomic.LoadInt32(&u.predictCalls); n != 0 {
		t.Errorf("/predict called %d times after failed health probe, want 0", n)
	}
}

func TestPredictPassthrough(t *testing.T) {
	body := `{"success":true,"predicted_label":"Happy","confidence":0.87}`
	u := &upstream{healthStatus: http.StatusOK, predictBody: body}
	srv := u.server(t)
	c := New(Config{BaseURL: srv.URL})

	got, err := c.Predict(context.Background(), features())
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if string(got) != body {
		t.Errorf("Predict body = %s, want unmodified %s", got, body)
	}
	if u.lastPredict["Age"] != 18 || u.lastPredict["Mental_Clarity_Score"] != 6 {
		t.Errorf("upstream saw features %v", u.lastPredict)
	}
}

func TestPredictNon200IsProtocolError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/predict", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, strings.Repeat("x", 1000))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := New(Config{BaseURL: srv.URL})
	_, err := c.Predict(context.Background(), features())
	if !apperr.IsKind(err, apperr.UpstreamProtocol) {
		t.Fatalf("error kind = %v, want UpstreamProtocol (err: %v)", apperr.KindOf(err), err)
	}
	// The echoed body is capped so it cannot flood the UI.
	if msg := apperr.Message(err); len(msg) > 300 {
		t.Errorf("error message too long (%d chars): %.80s...", len(msg), msg)
	}
}

func TestPredictInvalidJSONIsProtocolError(t *testing.T) {
	u := &upstream{healthStatus: http.StatusOK, predictBody: `not json at all`}
	srv := u.server(t)
	c := New(Config{BaseURL: srv.URL})

	_, err := c.Predict(context.Background(), features())
	if !apperr.IsKind(err, apperr.UpstreamProtocol) {
		t.Fatalf("error kind = %v, want UpstreamProtocol", apperr.KindOf(err))
	}
}

func TestPredictUnreachable(t *testing.T) {
	c := New(Config{BaseURL: "http://127.0.0.1:1"})
	_, err := c.Predict(context.Background(), features())
	if !apperr.IsKind(err, apperr.UpstreamUnavailable) {
		t.Fatalf("error kind = %v, want UpstreamUnavailable", apperr.KindOf(err))
	}
}

func TestModelsPassthrough(t *testing.T) {
	u := &upstream{healthStatus: http.StatusOK}
	srv := u.server(t)
	c := New(Config{BaseURL: srv.URL})

	got, err := c.Models(context.Background())
	if err != nil {
		t.Fatalf("Models: %v", err)
	}
	if !strings.Contains(string(got), "model_v1.pkl") {
		t.Errorf("Models body = %s", got)
	}
}

func TestTrainUploadsCSV(t *testing.T) {
	u := &upstream{healthStatus: http.StatusOK}
	srv := u.server(t)
	c := New(Config{BaseURL: srv.URL})

	csvPath := filepath.Join(t.TempDir(), "train.csv")
	content := "Age,Mood\n15,Happy\n"
	if err := os.WriteFile(csvPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := c.Train(context.Background(), csvPath)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if u.lastTrainCSV != content {
		t.Errorf("upstream received %q, want %q", u.lastTrainCSV, content)
	}
	if !strings.Contains(string(got), "model_v2.pkl") {
		t.Errorf("Train body = %s", got)
	}
}

func TestTrainMissingFileIsNotFound(t *testing.T) {
	u := &upstream{healthStatus: http.StatusOK}
	srv := u.server(t)
	c := New(Config{BaseURL: srv.URL})

	_, err := c.Train(context.Background(), filepath.Join(t.TempDir(), "gone.csv"))
	if !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("error kind = %v, want NotFound", apperr.KindOf(err))
	}
	if n := atomic.LoadInt32(&u.trainCalls); n != 0 {
		t.Errorf("/train called %d times for a missing file, want 0", n)
	}
}
