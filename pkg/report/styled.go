package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/aidrax/promptrec/pkg/recommend"
)

// Styles are the lipgloss styles used by [Styled].
type Styles struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Value lipgloss.Style
	Zero  lipgloss.Style
	Box   lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginBottom(1),
		Label: lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(22),
		Value: lipgloss.NewStyle().Bold(true),
		Zero:  lipgloss.NewStyle().Faint(true),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1),
	}
}

// Styled renders s for an interactive terminal. Counts are grouped with
// thousands separators.
func Styled(s recommend.Summary, st Styles) string {
	lines := make([]string, 0, 12)
	lines = append(lines, st.Title.Render("promptrec summary"))

	for _, r := range summaryRows(s) {
		value := r.value
		style := st.Value

		switch {
		case r.count == 0:
			style = st.Zero
		case r.count > 0:
			value = humanize.Comma(int64(r.count))
		}

		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			st.Label.Render(r.label),
			style.Render(value),
		))
	}

	return st.Box.Render(strings.Join(lines, "\n")) + "\n"
}
