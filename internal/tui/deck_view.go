package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/pokedeck/internal/engine"
)

const (
	cardWidth = 28
	// cardGap is the horizontal space a card's border and margin take.
	cardGap = 4

	noImageText   = "no image"
	noResultsText = "No Pokémon found."
	helpText      = "[t] Type  [q] Quit"
	pickerHelp    = "[↑↓/jk] Navigate  [Enter] Select  [Esc] Close"
)

// View renders the current state (Bubble Tea interface).
func (m DeckModel) View() string {
	if m.pickerOpen {
		return m.renderPicker()
	}

	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateLoading:
		return lipgloss.JoinVertical(lipgloss.Left, RenderLoading(m.loadingState), "", SubtleStyle.Render(helpText))
	case ViewStateError:
		return lipgloss.JoinVertical(lipgloss.Left,
			CriticalStyle.Render("Error: "+m.err.Error()),
			"",
			SubtleStyle.Render(helpText),
		)
	case ViewStateList:
		return m.renderList()
	default:
		return ""
	}
}

func (m DeckModel) renderList() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		HeaderStyle.Render(engine.Heading(engine.ModeFor(m.selection))),
		m.renderDropdown(),
		"",
		renderCards(m.creatures, m.width),
		"",
		SubtleStyle.Render(helpText),
	)
}

// renderDropdown shows the closed dropdown with the current choice.
func (m DeckModel) renderDropdown() string {
	current := placeholderLabel
	if m.selection != "" {
		current = engine.Capitalize(m.selection)
	}
	return LabelStyle.Render("Search by type:") + " " + ValueStyle.Render(current)
}

// RenderBatch renders a loaded batch as a heading and a card grid that fits
// in width columns. It is the non-interactive form of the deck.
func RenderBatch(report engine.BatchReport, width int) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		HeaderStyle.Render(report.Heading),
		"",
		renderCards(report.Creatures, width),
	)
}

func renderCards(creatures []engine.Creature, width int) string {
	if len(creatures) == 0 {
		return noResultsText
	}

	perRow := max(width/(cardWidth+cardGap), 1)
	rows := make([]string, 0, len(creatures)/perRow+1)
	for start := 0; start < len(creatures); start += perRow {
		end := min(start+perRow, len(creatures))
		cards := make([]string, 0, end-start)
		for _, c := range creatures[start:end] {
			cards = append(cards, RenderCard(c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// RenderCard draws one creature as a bordered card.
func RenderCard(c engine.Creature) string {
	image := c.ImageURL
	if image == "" {
		image = noImageText
	}

	var content strings.Builder
	content.WriteString(NameStyle.Render(c.DisplayName()))
	content.WriteString(" ")
	content.WriteString(SubtleStyle.Render("#" + strconv.Itoa(c.ID)))
	content.WriteString("\n")
	content.WriteString(SubtleStyle.Render(image))
	content.WriteString("\n")
	content.WriteString(LabelStyle.Render("Types:"))
	content.WriteString(" ")
	content.WriteString(ValueStyle.Render(c.CategoryLabel()))

	return CardStyle.Width(cardWidth).MarginRight(1).Render(content.String())
}

func (m DeckModel) renderPicker() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		HeaderStyle.Render("Search by type:"),
		BoxStyle.Render(m.picker.View()),
		SubtleStyle.Render(pickerHelp),
	)
}

func renderPickerOption(opt pickerOption, selected bool) string {
	if selected {
		return SelectedStyle.Render("> " + opt.label)
	}
	return "  " + opt.label
}
