package devserver

import "recipebook-tracker/internal/bmi"

// UserProfile is the single user's profile as far as the fake backend knows it.
type UserProfile struct {
	HeightCm float64 `json:"height_cm"`
	WeightKg float64 `json:"weight_kg"`
}

// WeightRecord is one stored BMI submission. At most one record exists per day.
type WeightRecord struct {
	Date     string       `json:"date"`
	WeightKg float64      `json:"weight_kg"`
	BMI      float64      `json:"bmi"`
	Category bmi.Category `json:"category"`
}

type weightDataResponse struct {
	Labels  []string  `json:"labels"`
	Weights []float64 `json:"weights"`
	BMIs    []float64 `json:"bmis"`
	Message string    `json:"message,omitempty"`
}

type submitBMIResponse struct {
	Message  string       `json:"message"`
	BMI      float64      `json:"bmi"`
	Category bmi.Category `json:"category"`
}

type ingredientsResponse struct {
	Ingredients []string `json:"ingredients"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
