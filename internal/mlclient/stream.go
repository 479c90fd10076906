package mlclient

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"

	"youthmind-portal/internal/apperr"
)

// OpenTrainStream uploads the CSV at csvPath to POST /train-stream and
// returns the upstream response body for the caller to drain chunk by
// chunk. Nothing is buffered here: the multipart upload is piped, and the
// returned reader yields bytes as the model service emits them.
//
// There is no client-side timeout; training runs as long as it needs to.
// Cancelling ctx (typically because the browser disconnected) aborts the
// upstream request, so a dead client never leaves the relay consuming
// training output into the void.
func (c *Client) OpenTrainStream(ctx context.Context, csvPath string) (io.ReadCloser, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.Wrap(apperr.NotFound, "CSV file not found", err)
		}
		return nil, fmt.Errorf("failed to open training CSV: %w", err)
	}

	body, contentType := pipedCSVForm(f)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/train-stream", body)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create stream request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.stream.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.UpstreamUnavailable, "Connection to model service failed", err)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		return nil, apperr.Newf(apperr.UpstreamProtocol,
			"Model service returned HTTP %d. Response: %s", resp.StatusCode, string(body))
	}

	return resp.Body, nil
}

// pipedCSVForm streams a multipart upload through an io.Pipe so the
// training file is never held in memory whole. Ownership of f passes to
// the writer goroutine.
func pipedCSVForm(f *os.File) (io.Reader, string) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		defer f.Close()
		part, err := mw.CreatePart(csvPartHeader("training_data.csv"))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, f); err != nil {
			pw.CloseWithError(err)
			return
		}
		if err := mw.Close(); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.Close()
	}()

	return pr, mw.FormDataContentType()
}
