// Package console renders pages to a terminal and charts to files.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"recipebook-tracker/internal/ingredients"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	resultStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	itemStyle   = lipgloss.NewStyle().PaddingLeft(2)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	alertStyle  = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(0, 1)
)

// BMIView prints a BMI result and its suggestions.
type BMIView struct {
	mu  sync.Mutex
	out io.Writer
}

func NewBMIView(out io.Writer) *BMIView {
	return &BMIView{out: out}
}

func (v *BMIView) ShowResult(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.out, resultStyle.Render(text))
}

func (v *BMIView) ShowSuggestions(foods []string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.out, titleStyle.Render("Suggested Foods:"))
	for _, f := range foods {
		fmt.Fprintln(v.out, itemStyle.Render("• "+f))
	}
}

// IngredientView prints the ingredient list. Items keep their delete controls
// so callers can act on what was last shown.
type IngredientView struct {
	mu    sync.Mutex
	out   io.Writer
	items []ingredients.Item
	input string
}

func NewIngredientView(out io.Writer) *IngredientView {
	return &IngredientView{out: out}
}

func (v *IngredientView) ShowItems(items []ingredients.Item) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.items = items

	fmt.Fprintln(v.out, titleStyle.Render("Your Ingredients"))
	if len(items) == 0 {
		fmt.Fprintln(v.out, itemStyle.Render(mutedStyle.Render("(none)")))
		return
	}
	for i, it := range items {
		fmt.Fprintln(v.out, itemStyle.Render(fmt.Sprintf("%d. %s %s", i+1, it.Name, mutedStyle.Render("[delete]"))))
	}
}

// SetInput records what the user typed into the ingredient field.
func (v *IngredientView) SetInput(s string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.input = s
}

// Input returns the current ingredient field text.
func (v *IngredientView) Input() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.input
}

func (v *IngredientView) ClearInput() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.input = ""
}

func (v *IngredientView) Alert(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.out, alertStyle.Render(msg))
}

// Items returns what was last shown.
func (v *IngredientView) Items() []ingredients.Item {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]ingredients.Item(nil), v.items...)
}

// Find returns the shown item named name, ignoring case.
func (v *IngredientView) Find(name string) (ingredients.Item, bool) {
	for _, it := range v.Items() {
		if strings.EqualFold(it.Name, strings.TrimSpace(name)) {
			return it, true
		}
	}
	return ingredients.Item{}, false
}

// List prints a titled list of plain lines.
func List(out io.Writer, title string, lines []string) {
	fmt.Fprintln(out, titleStyle.Render(title))
	for _, l := range lines {
		fmt.Fprintln(out, itemStyle.Render("• "+l))
	}
}
