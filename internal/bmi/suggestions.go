package bmi

// foods is the fixed suggestion table shown under a BMI result.
var foods = map[Category][]string{
	Underweight: {"Banana smoothie", "Dry fruits", "Egg sandwich"},
	Normal:      {"Grilled veggies", "Quinoa salad", "Fruits bowl"},
	Overweight:  {"Steamed broccoli", "Lentil soup", "Green tea"},
	Obese:       {"Cucumber salad", "Oats with fruits", "Boiled veggies"},
}

// Suggestions returns a copy of the food list for c, or nil for an unknown category.
func Suggestions(c Category) []string {
	list, ok := foods[c]
	if !ok {
		return nil
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}
