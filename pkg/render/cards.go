package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jakechorley/volunteer-manager/pkg/core/model"
)

const cardWidth = 64

// Card renders one volunteer
func Card(v model.Volunteer, t Theme) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(t.Foreground)
	text := lipgloss.NewStyle().Foreground(t.Foreground)
	muted := lipgloss.NewStyle().Foreground(t.Muted)
	tag := lipgloss.NewStyle().
		Foreground(t.Foreground).
		Background(t.TagBackground).
		Padding(0, 1)

	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Top,
			title.Render(v.Name),
			muted.Render("  "+shortID(v.ID)),
		),
		text.Render("✉  " + v.Email),
		text.Render("📞  " + v.Phone),
		muted.Render("🗓  Registered: " + v.Registered),
		text.Render("Areas of Interest:"),
	}

	if len(v.Interests) > 0 {
		tags := make([]string, len(v.Interests))
		for i, interest := range v.Interests {
			tags[i] = tag.Render(interest)
		}
		lines = append(lines, strings.Join(tags, " "))
	} else {
		lines = append(lines, muted.Render("none"))
	}

	lines = append(lines,
		text.Render(fmt.Sprintf("📅  %s    🔱  %s", v.Availability, v.Experience)),
		text.Render("Message:"),
		muted.Width(cardWidth-4).Render(v.Message),
	)

	card := lipgloss.NewStyle().
		Background(t.Card).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Accent).
		Padding(0, 1).
		Width(cardWidth)

	return card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Cards renders a list of volunteers, or a placeholder when it is empty
func Cards(volunteers []model.Volunteer, t Theme) string {
	if len(volunteers) == 0 {
		return lipgloss.NewStyle().Foreground(t.Muted).Render("No volunteers found.")
	}
	cards := make([]string, len(volunteers))
	for i, v := range volunteers {
		cards[i] = Card(v, t)
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// shortID keeps the first UUID group, which is enough to tell cards apart
func shortID(id string) string {
	head, _, _ := strings.Cut(id, "-")
	return head
}
