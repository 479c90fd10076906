package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"youthmind-portal/internal/apperr"
)

// streamChunkSize is the forwarding buffer for training event streams.
// Each read is flushed to the client before the next, so the relay never
// accumulates more than one chunk.
const streamChunkSize = 32 * 1024

// TrainStream relays the model service's live training event stream to
// the browser. Upstream bytes are forwarded verbatim and in order; the
// relay does not parse event frames. On failure it emits exactly one
// error event rather than dropping the connection, so the browser can
// always tell success from failure.
// @Summary Stream live training output (admin, SSE)
// @Tags model
// @Produce text/event-stream
// @Success 200 {string} string "Event stream"
// @Failure 403 {object} map[string]interface{} "Admin session required"
// @Router /train/stream [get]
func (h *Handler) TrainStream(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Sessions.FromRequest(r)
	if !ok || !sess.IsAdmin() {
		// Authorization failures answer in plain JSON before the stream
		// is ever opened.
		h.writeError(w, sess, apperr.New(apperr.Authorization, "Unauthorized access"))
		return
	}

	flusher, canFlush := w.(http.Flusher)
	if !canFlush {
		h.writeError(w, sess, apperr.New(apperr.UpstreamProtocol, "Streaming is not supported by this connection"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	path, bound := sess.CleanedDataset()
	if !bound {
		writeErrorEvent(w, flusher, "No CSV file found in session")
		return
	}
	if _, err := os.Stat(path); err != nil {
		writeErrorEvent(w, flusher, "No CSV file found in session")
		return
	}

	body, err := h.ML.OpenTrainStream(r.Context(), path)
	if err != nil {
		log.Printf("train stream open failed: %v", err)
		writeErrorEvent(w, flusher, apperr.Message(err))
		return
	}
	defer body.Close()

	buf := make([]byte, streamChunkSize)
	for {
		n, err := body.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				// Browser went away; ctx cancellation tears down upstream.
				return
			}
			flusher.Flush()
		}
		if err == io.EOF {
			// Upstream closed normally; it emits its own terminal event.
			return
		}
		if err != nil {
			if r.Context().Err() != nil {
				return
			}
			log.Printf("train stream interrupted: %v", err)
			writeErrorEvent(w, flusher, "Connection failed: "+err.Error())
			return
		}
	}
}

// writeErrorEvent emits a single SSE error frame in the same shape the
// model service uses, so the browser-side consumer has one code path.
func writeErrorEvent(w io.Writer, flusher http.Flusher, message string) {
	payload, _ := json.Marshal(map[string]string{"error": message})
	fmt.Fprintf(w, "data: %s\n\n", payload)
	flusher.Flush()
}
