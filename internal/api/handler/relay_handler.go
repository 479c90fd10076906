package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"youthmind-portal/internal/apperr"
	"youthmind-portal/internal/model"
)

// Predict validates the six feature fields and relays them to the model
// service, returning its JSON verbatim
// @Summary Run a prediction (admin)
// @Description Validate the six input features and relay them to the model service
// @Tags model
// @Accept json
// @Produce json
// @Param features body map[string]interface{} true "Six named numeric features"
// @Success 200 {object} map[string]interface{} "Upstream prediction response"
// @Failure 400 {object} map[string]interface{} "Validation failure"
// @Failure 500 {object} map[string]interface{} "Model service failure"
// @Router /predict [post]
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	var input map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, sess, apperr.New(apperr.Validation, "No input data provided"))
		return
	}

	features, err := model.ValidateFeatures(input)
	if err != nil {
		h.writeError(w, sess, err)
		return
	}

	body, err := h.ML.Predict(r.Context(), features)
	if err != nil {
		log.Printf("prediction relay failed: %v", err)
		h.writeError(w, sess, err)
		return
	}
	writeRawJSON(w, body)
}

// Models relays the trained-model list from the model service
// @Summary List trained models (admin)
// @Tags model
// @Produce json
// @Success 200 {object} map[string]interface{} "Upstream model list"
// @Failure 500 {object} map[string]interface{} "Model service failure"
// @Router /models [get]
func (h *Handler) Models(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	body, err := h.ML.Models(r.Context())
	if err != nil {
		log.Printf("model info relay failed: %v", err)
		h.writeError(w, sess, err)
		return
	}
	writeRawJSON(w, body)
}

// Train uploads the session's cleaned dataset to the model service and
// blocks until training finishes
// @Summary Train on the bound dataset (admin)
// @Tags model
// @Produce json
// @Success 200 {object} map[string]interface{} "Upstream training response"
// @Failure 404 {object} map[string]interface{} "No dataset loaded"
// @Failure 500 {object} map[string]interface{} "Model service failure"
// @Router /train [post]
func (h *Handler) Train(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	path, bound := sess.CleanedDataset()
	if !bound {
		h.writeError(w, sess, apperr.New(apperr.NotFound, "No cleaned CSV file found in session"))
		return
	}
	if _, err := os.Stat(path); err != nil {
		h.writeError(w, sess, apperr.Newf(apperr.NotFound, "CSV file does not exist at path: %s", path))
		return
	}

	log.Printf("training started by %s on %s", sess.Username, path)
	body, err := h.ML.Train(r.Context(), path)
	if err != nil {
		log.Printf("training relay failed: %v", err)
		h.writeError(w, sess, err)
		return
	}
	log.Printf("training completed for %s", sess.Username)
	writeRawJSON(w, body)
}
