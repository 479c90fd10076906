package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"youthmind-portal/internal/dataset"
	"youthmind-portal/internal/mlclient"
	"youthmind-portal/internal/session"
	"youthmind-portal/internal/store"
)

// env wires a Handler against a real in-memory store, a temp upload
// directory, and an ML client pointed at whatever upstream the test
// provides.
type env struct {
	h        *Handler
	db       *store.DB
	sessions *session.Manager
}

func newEnv(t *testing.T, upstreamURL string) *env {
	t.Helper()
	db, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	files := dataset.NewStore(t.TempDir())
	sessions := session.NewManager()
	ml := mlclient.New(mlclient.Config{BaseURL: upstreamURL})
	exporter := dataset.NewHistoryExporter(files, db)

	return &env{
		h:        New(db, sessions, files, exporter, ml),
		db:       db,
		sessions: sessions,
	}
}

func (e *env) adminCookie() *http.Cookie {
	s := e.sessions.Create(1, "admin", session.RoleAdmin)
	return &http.Cookie{Name: session.CookieName, Value: s.Token}
}

func (e *env) userCookie(userID int64) *http.Cookie {
	s := e.sessions.Create(userID, "user", session.RoleUser)
	return &http.Cookie{Name: session.CookieName, Value: s.Token}
}

// uploadRequest builds a multipart POST carrying content as the "file"
// field.
func uploadRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	io.WriteString(part, content)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/dataset/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func jsonRequest(t *testing.T, method, target string, payload interface{}) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return out
}
