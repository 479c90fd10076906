package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"youthmind-portal/internal/apperr"
	"youthmind-portal/internal/model"
	"youthmind-portal/internal/store"
)

// UserPredict runs a prediction for the logged-in user and records it in
// their history. A history write failure is reported but does not void
// the prediction itself
// @Summary Run a prediction (user)
// @Description Validate lifestyle inputs, relay them to the model service, and save the result to the user's history
// @Tags user
// @Accept json
// @Produce json
// @Param features body map[string]interface{} true "Six named numeric features"
// @Success 200 {object} map[string]interface{} "Prediction with history status"
// @Failure 400 {object} map[string]interface{} "Validation failure"
// @Router /user/predict [post]
func (h *Handler) UserPredict(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireSession(w, r)
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
		log.Printf("user prediction failed: %v", err)
		h.writeError(w, sess, err)
		return
	}

	var upstream map[string]interface{}
	if err := json.Unmarshal(body, &upstream); err != nil {
		h.writeError(w, sess, apperr.New(apperr.UpstreamProtocol, "Invalid response from prediction API."))
		return
	}
	mood, _ := upstream["predicted_label"].(string)
	if mood == "" {
		h.writeError(w, sess, apperr.New(apperr.UpstreamProtocol, "Invalid response from prediction API."))
		return
	}

	resp := map[string]interface{}{
		"success":       true,
		"prediction":    upstream,
		"history_saved": true,
	}

	rec := store.PredictionRecord{
		UserID:             sess.UserID,
		Age:                features["Age"],
		ScreenTime:         features["Hours_of_Screen_Time"],
		SleepHours:         features["Hours_of_Sleep"],
		StudyHours:         features["Daily_Study_Hours"],
		PhysicalActivity:   features["Physical_Activity"],
		MentalClarityScore: features["Mental_Clarity_Score"],
		Mood:               mood,
	}
	if err := h.DB.SavePrediction(r.Context(), rec); err != nil {
		// The prediction still stands even if history logging failed.
		log.Printf("failed to save prediction for user %d: %v", sess.UserID, err)
		resp["history_saved"] = false
		resp["save_error"] = "Failed to save prediction to history."
	}

	writeJSON(w, http.StatusOK, resp)
}

// UserHistory returns the user's ten most recent predictions
// @Summary Recent prediction history (user)
// @Tags user
// @Produce json
// @Success 200 {object} map[string]interface{} "Recent predictions"
// @Router /user/history [get]
func (h *Handler) UserHistory(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	rows, err := h.DB.RecentHistory(r.Context(), sess.UserID, 10)
	if err != nil {
		h.writeError(w, sess, apperr.Wrap(apperr.Persistence, "Failed to load prediction history", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"history": rows,
		"count":   len(rows),
	})
}
