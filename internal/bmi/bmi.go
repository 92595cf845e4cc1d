// Package bmi computes Body Mass Index values from form input and maps them to
// the four fixed weight categories and their food suggestions.
package bmi

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidMeasurement is returned when height or weight is missing,
// non-numeric or not strictly positive.
var ErrInvalidMeasurement = errors.New("invalid height or weight")

// Category is one of the four closed BMI buckets.
type Category int

const (
	Underweight Category = iota
	Normal
	Overweight
	Obese
)

// Upper bounds (exclusive) of the first three buckets.
const (
	UnderweightLimit = 18.5
	NormalLimit      = 25.0
	OverweightLimit  = 30.0
)

var categoryNames = [...]string{
	Underweight: "Underweight",
	Normal:      "Normal",
	Overweight:  "Overweight",
	Obese:       "Obese",
}

func (c Category) String() string {
	if c < Underweight || c > Obese {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory maps a backend category name back to a Category, ignoring case.
func ParseCategory(name string) (Category, bool) {
	for i, n := range categoryNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Category(i), true
		}
	}
	return 0, false
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	parsed, ok := ParseCategory(string(b))
	if !ok {
		return fmt.Errorf("unknown BMI category %q", string(b))
	}
	*c = parsed
	return nil
}

// Measurement is a single user-entered height/weight pair.
type Measurement struct {
	HeightCm float64 `json:"height_cm"`
	WeightKg float64 `json:"weight_kg"`
}

// HeightM returns the height in meters.
func (m Measurement) HeightM() float64 {
	return m.HeightCm / 100
}

// Result is a computed BMI value with its bucket.
type Result struct {
	BMI      float64  `json:"bmi"`
	Category Category `json:"category"`
}

// String renders the result the way the calculator page shows it.
func (r Result) String() string {
	return fmt.Sprintf("Your BMI is %.2f (%s)", r.BMI, r.Category)
}

// Parse reads the raw height (cm) and weight (kg) form values.
func Parse(height, weight string) (Measurement, error) {
	h, err := parsePositive(height)
	if err != nil {
		return Measurement{}, fmt.Errorf("height %q: %w", height, err)
	}
	w, err := parsePositive(weight)
	if err != nil {
		return Measurement{}, fmt.Errorf("weight %q: %w", weight, err)
	}
	return Measurement{HeightCm: h, WeightKg: w}, nil
}

func parsePositive(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, ErrInvalidMeasurement
	}
	return v, nil
}

// Validate reports whether m can produce a finite BMI.
func (m Measurement) Validate() error {
	for _, v := range []float64{m.HeightCm, m.WeightKg} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return ErrInvalidMeasurement
		}
	}
	return nil
}

// Compute returns weight / height_m^2 and its category. m must be valid.
func Compute(m Measurement) Result {
	h := m.HeightM()
	v := m.WeightKg / (h * h)
	return Result{BMI: v, Category: Classify(v)}
}

// Classify buckets a BMI value. Lower edges are closed: 18.5 is Normal,
// 25 is Overweight and 30 is Obese.
func Classify(v float64) Category {
	switch {
	case v < UnderweightLimit:
		return Underweight
	case v < NormalLimit:
		return Normal
	case v < OverweightLimit:
		return Overweight
	default:
		return Obese
	}
}

// Round2 rounds v to two decimals, matching what the backend stores.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
