package model

import (
	"strconv"
	"strings"

	"youthmind-portal/internal/apperr"
)

// FeatureRange defines the accepted bounds for one prediction input field.
type FeatureRange struct {
	Name    string
	Min     float64
	Max     float64
	Message string
}

// FeatureRanges lists the six model input fields in canonical column
// order. The same order is used for CSV headers and upstream payloads.
var FeatureRanges = []FeatureRange{
	{Name: "Age", Min: 13, Max: 25, Message: "Age must be between 13 and 25 years"},
	{Name: "Hours_of_Screen_Time", Min: 0, Max: 24, Message: "Screen time must be between 0 and 24 hours"},
	{Name: "Hours_of_Sleep", Min: 0, Max: 16, Message: "Sleep hours must be between 0 and 16 hours"},
	{Name: "Daily_Study_Hours", Min: 0, Max: 16, Message: "Study hours must be between 0 and 16 hours"},
	{Name: "Physical_Activity", Min: 0, Max: 100, Message: "Physical activity must be between 0 and 100 minutes per week"},
	{Name: "Mental_Clarity_Score", Min: 1, Max: 10, Message: "Mental clarity score must be between 1 and 10"},
}

// HistoryHeader is the header row for exported history datasets: the six
// feature columns plus the predicted mood.
var HistoryHeader = []string{
	"Age",
	"Hours_of_Screen_Time",
	"Hours_of_Sleep",
	"Daily_Study_Hours",
	"Physical_Activity",
	"Mental_Clarity_Score",
	"Mood",
}

// ValidateFeatures checks a decoded JSON body for the six required numeric
// fields and their ranges. It returns the coerced values keyed by
// canonical field name. Validation stops at the first failing field so the
// error message names it; no upstream call happens on failure.
func ValidateFeatures(input map[string]interface{}) (map[string]float64, error) {
	if len(input) == 0 {
		return nil, apperr.New(apperr.Validation, "No input data provided")
	}

	out := make(map[string]float64, len(FeatureRanges))
	for _, fr := range FeatureRanges {
		raw, ok := input[fr.Name]
		if !ok {
			return nil, apperr.Newf(apperr.Validation, "Missing required field: %s", fr.Name)
		}
		val, ok := numeric(raw)
		if !ok {
			return nil, apperr.Newf(apperr.Validation, "%s must be a numeric value", fr.Name)
		}
		if val < fr.Min || val > fr.Max {
			return nil, apperr.New(apperr.Validation, fr.Message)
		}
		out[fr.Name] = val
	}
	return out, nil
}

// numeric coerces JSON numbers and numeric strings to float64. Form posts
// and hand-written clients send numbers as strings, so both are accepted.
func numeric(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
