package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"youthmind-portal/internal/apperr"
	"youthmind-portal/internal/dataset"
	"youthmind-portal/internal/mlclient"
	"youthmind-portal/internal/session"
	"youthmind-portal/internal/store"
)

// previewRows caps how many data rows are echoed back in dataset
// responses so large uploads don't flood the page.
const previewRows = 10

// Handler carries the portal's collaborators. Handlers receive the
// session (and through it the dataset binding) explicitly, so nothing
// reads ambient state.
type Handler struct {
	DB       *store.DB
	Sessions *session.Manager
	Files    *dataset.Store
	Exporter *dataset.HistoryExporter
	ML       *mlclient.Client
}

func New(db *store.DB, sessions *session.Manager, files *dataset.Store, exporter *dataset.HistoryExporter, ml *mlclient.Client) *Handler {
	return &Handler{
		DB:       db,
		Sessions: sessions,
		Files:    files,
		Exporter: exporter,
		ML:       ml,
	}
}

// requireSession resolves the request's session or writes a 403 envelope.
func (h *Handler) requireSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := h.Sessions.FromRequest(r)
	if !ok {
		h.writeError(w, nil, apperr.New(apperr.Authorization, "Unauthorized access"))
		return nil, false
	}
	return sess, true
}

// requireAdmin is requireSession plus an ADMIN role check.
func (h *Handler) requireAdmin(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := h.Sessions.FromRequest(r)
	if !ok || !sess.IsAdmin() {
		h.writeError(w, sess, apperr.New(apperr.Authorization, "Unauthorized access"))
		return nil, false
	}
	return sess, true
}

func (h *Handler) writeError(w http.ResponseWriter, sess *session.Session, err error) {
	apperr.WriteJSON(w, err, debugContext(sess))
}

// debugContext builds the best-effort debug block of the error envelope.
func debugContext(sess *session.Session) map[string]interface{} {
	debug := map[string]interface{}{
		"timestamp": time.Now().Format("2006-01-02 15:04:05"),
		"user_id":   "not set",
		"user_role": "not set",
	}
	if sess != nil {
		debug["user_id"] = sess.UserID
		debug["user_role"] = sess.Role
	}
	return debug
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeRawJSON relays an upstream JSON body untouched.
func writeRawJSON(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// preview returns up to previewRows of rows.
func preview(rows [][]string) [][]string {
	if len(rows) > previewRows {
		return rows[:previewRows]
	}
	return rows
}
