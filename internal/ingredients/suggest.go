package ingredients

import "strings"

// NoMatchHint is the single suggestion returned when nothing matches.
const NoMatchHint = "Try adding more healthy ingredients!"

var commonFoods = map[string]string{
	"banana":   "Banana smoothie",
	"broccoli": "Steamed broccoli",
	"oats":     "Oats bowl",
	"cucumber": "Cucumber salad",
	"quinoa":   "Quinoa with stir-fried veggies",
	"apple":    "Apple slices with peanut butter",
}

// Suggest maps known ingredients to dishes, in the order given.
func Suggest(names []string) []string {
	var out []string
	for _, name := range names {
		if dish, ok := commonFoods[strings.ToLower(strings.TrimSpace(name))]; ok {
			out = append(out, dish)
		}
	}
	if len(out) == 0 {
		return []string{NoMatchHint}
	}
	return out
}
