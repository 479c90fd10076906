package handler

import (
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"youthmind-portal/internal/apperr"
	"youthmind-portal/internal/dataset"
	"youthmind-portal/internal/session"
)

// maxUploadBytes bounds how much of a multipart upload is held in memory
// before spilling to temp files.
const maxUploadBytes = 32 << 20

// UploadDataset ingests a CSV upload: store raw, clean, store cleaned,
// bind the result to the operator's session
// @Summary Upload a CSV dataset
// @Description Upload a raw CSV, clean it, and bind it as the current training dataset
// @Tags dataset
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} map[string]interface{} "Cleaning summary and preview"
// @Failure 400 {object} map[string]interface{} "Not a CSV file"
// @Failure 403 {object} map[string]interface{} "Admin session required"
// @Router /dataset/upload [post]
func (h *Handler) UploadDataset(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.writeError(w, sess, apperr.New(apperr.Validation, "Invalid multipart upload"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, sess, apperr.New(apperr.Validation, "Missing uploaded file"))
		return
	}
	defer file.Close()

	if strings.ToLower(filepath.Ext(header.Filename)) != ".csv" {
		h.writeError(w, sess, apperr.New(apperr.Validation, "Only CSV files are allowed."))
		return
	}

	rawPath, err := h.Files.SaveRaw(file)
	if err != nil {
		h.writeError(w, sess, apperr.Wrap(apperr.Persistence, "Error uploading file.", err))
		return
	}

	rows, err := h.Files.ReadDataset(rawPath)
	if err != nil {
		h.writeError(w, sess, apperr.Wrap(apperr.Validation, "Uploaded file is not parseable CSV", err))
		return
	}

	result := dataset.Clean(rows)
	if result.Header == nil {
		// Nothing to clean: empty file. Leave any prior binding alone.
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":       true,
			"original_rows": result.OriginalRows,
			"cleaned_rows":  result.CleanedRows,
			"removed_rows":  result.RemovedRows,
			"message":       "Uploaded file contains no rows",
		})
		return
	}

	cleanedPath, err := h.Files.AllocatePath(dataset.KindCleaned)
	if err != nil {
		h.writeError(w, sess, apperr.Wrap(apperr.Persistence, "Failed to store cleaned dataset", err))
		return
	}
	if err := h.Files.WriteDataset(cleanedPath, result.Table()); err != nil {
		h.writeError(w, sess, apperr.Wrap(apperr.Persistence, "Failed to store cleaned dataset", err))
		return
	}

	sess.Bind(session.DatasetBinding{
		RawPath:      rawPath,
		CleanedPath:  cleanedPath,
		OriginalRows: result.OriginalRows,
		CleanedRows:  result.CleanedRows,
		RemovedRows:  result.RemovedRows,
	})

	log.Printf("dataset uploaded by %s: %d rows in, %d kept", sess.Username, result.OriginalRows, result.CleanedRows)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"original_rows": result.OriginalRows,
		"cleaned_rows":  result.CleanedRows,
		"removed_rows":  result.RemovedRows,
		"header":        result.Header,
		"preview":       preview(result.Rows),
	})
}

// GetDataset returns the current dataset binding, or clears it with
// ?action=cancel
// @Summary Current dataset
// @Description Get the session's bound dataset and a preview, or cancel it with ?action=cancel
// @Tags dataset
// @Produce json
// @Param action query string false "Set to 'cancel' to clear the binding"
// @Success 200 {object} map[string]interface{} "Binding and preview"
// @Failure 404 {object} map[string]interface{} "No dataset loaded"
// @Router /dataset [get]
func (h *Handler) GetDataset(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	if r.URL.Query().Get("action") == "cancel" {
		sess.Clear()
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Dataset cancelled",
		})
		return
	}

	binding := sess.Binding()
	if !binding.Bound() {
		h.writeError(w, sess, apperr.New(apperr.NotFound, "No dataset is currently loaded"))
		return
	}

	rows, err := h.Files.ReadDataset(binding.CleanedPath)
	if err != nil {
		h.writeError(w, sess, err)
		return
	}

	resp := map[string]interface{}{
		"success":       true,
		"original_rows": binding.OriginalRows,
		"cleaned_rows":  binding.CleanedRows,
		"removed_rows":  binding.RemovedRows,
	}
	if len(rows) > 0 {
		resp["header"] = rows[0]
		resp["preview"] = preview(rows[1:])
		resp["total_rows"] = len(rows) - 1
	}
	writeJSON(w, http.StatusOK, resp)
}

// DatasetFile serves the bound cleaned CSV verbatim
// @Summary Download the bound cleaned CSV
// @Tags dataset
// @Produce text/csv
// @Success 200 {file} file "CSV content"
// @Failure 404 {object} map[string]interface{} "No dataset loaded"
// @Router /dataset/file [get]
func (h *Handler) DatasetFile(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	path, bound := sess.CleanedDataset()
	if !bound {
		h.writeError(w, sess, apperr.New(apperr.NotFound, "CSV file not found"))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	http.ServeFile(w, r, path)
}
