package api

// Endpoint paths, relative to the backend base URL.
const (
	PathWeightData       = "/api/v1/weight-data/"
	PathSubmitBMI        = "/api/v1/leaderboard/submit-bmi/"
	PathIngredients      = "/api/v1/ingredients/"
	PathAddIngredient    = "/api/v1/ingredients/add/"
	PathDeleteIngredient = "/api/v1/ingredients/delete/"
)

// CSRFFieldName is the hidden form field holding the anti-forgery token.
const CSRFFieldName = "csrfmiddlewaretoken"

// CSRFHeader carries the token on mutating requests.
const CSRFHeader = "X-CSRFToken"

// Series is the stored weight history as returned by the weight-data endpoint.
type Series struct {
	Labels  []string  `json:"labels"`
	Weights []float64 `json:"weights"`
	BMIs    []float64 `json:"bmis,omitempty"`
	Message string    `json:"message,omitempty"`
}

// Len returns the number of points in the series.
func (s Series) Len() int {
	return len(s.Labels)
}

// BMIRecord is the backend's answer to a BMI submission.
type BMIRecord struct {
	BMI      float64 `json:"bmi"`
	Category string  `json:"category"`
	Message  string  `json:"message,omitempty"`
}

// IngredientList is the payload of the ingredient list endpoint.
type IngredientList struct {
	Ingredients []string `json:"ingredients"`
}

type addIngredientRequest struct {
	Name string `json:"name"`
}

// errorPayload is embedded in every response shape so backend errors are
// decoded alongside the data.
type errorPayload struct {
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
	Message string `json:"message,omitempty"`
}
