package devserver

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"recipebook-tracker/internal/bmi"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
<form method="post">
<input type="hidden" name="` + csrfFieldName + `" value="{{.Token}}">
</form>
</body>
</html>
`))

// page serves a minimal HTML page carrying the CSRF hidden field, setting the
// matching cookie when the client has none yet.
func (s *Server) page(title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := ""
		if c, err := r.Cookie(csrfCookieName); err == nil && c.Value != "" {
			token = c.Value
		} else {
			token = strings.ReplaceAll(uuid.NewString(), "-", "")
			http.SetCookie(w, &http.Cookie{Name: csrfCookieName, Value: token, Path: "/", SameSite: http.SameSiteLaxMode})
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTemplate.Execute(w, struct{ Title, Token string }{title, token}); err != nil {
			s.log.Error("render page", zap.String("title", title), zap.Error(err))
		}
	}
}

func (s *Server) getWeightData(w http.ResponseWriter, r *http.Request) {
	records := s.store.Recent(RecentLimit)
	resp := weightDataResponse{
		Labels:  make([]string, 0, len(records)),
		Weights: make([]float64, 0, len(records)),
		BMIs:    make([]float64, 0, len(records)),
	}
	if len(records) == 0 {
		resp.Message = "No recent data found"
	}
	for _, rec := range records {
		resp.Labels = append(resp.Labels, rec.Date)
		resp.Weights = append(resp.Weights, rec.WeightKg)
		resp.BMIs = append(resp.BMIs, rec.BMI)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) submitBMI(w http.ResponseWriter, r *http.Request) {
	height, err := formFloat(r, "height")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	weight, err := formFloat(r, "weight")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	m := bmi.Measurement{HeightCm: height, WeightKg: weight}
	if err := m.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Height and weight must be positive values"})
		return
	}

	rec := s.store.RecordBMI(m)
	s.log.Info("BMI recorded", zap.String("date", rec.Date), zap.Float64("bmi", rec.BMI), zap.Stringer("category", rec.Category))
	writeJSON(w, http.StatusOK, submitBMIResponse{
		Message:  "BMI recorded successfully",
		BMI:      rec.BMI,
		Category: rec.Category,
	})
}

func formFloat(r *http.Request, key string) (float64, error) {
	raw := r.PostFormValue(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, errors.New("could not convert " + key + " to float: '" + raw + "'")
	}
	return v, nil
}

func (s *Server) getIngredients(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ingredientsResponse{Ingredients: s.store.Ingredients()})
}

func (s *Server) addIngredient(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Failed to add ingredient", Details: err.Error()})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Ingredient name cannot be empty"})
		return
	}
	if err := s.store.AddIngredient(name); err != nil {
		writeJSON(w, http.StatusConflict, errorResponse{Error: "Failed to add ingredient", Details: err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, messageResponse{Message: "Ingredient added successfully"})
}

func (s *Server) deleteIngredient(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PostFormValue("name"))
	if name == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Ingredient name required"})
		return
	}
	if err := s.store.DeleteIngredient(name); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Ingredient not found"})
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Ingredient deleted successfully"})
}
