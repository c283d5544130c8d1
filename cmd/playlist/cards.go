package main

import (
	"fmt"
	"strings"

	"playlist-server/internal/playlist"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	headingStyle = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
	travelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Italic(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	cardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#4A5568")).Padding(0, 1).Width(72)
)

func renderCards(rendered playlist.Rendered, durationLabel string, seed int64) string {
	if rendered.Empty {
		return warnStyle.Render(rendered.Message)
	}

	blocks := []string{
		titleStyle.Render(fmt.Sprintf("Mission playlist for %s", durationLabel)),
		labelStyle.Render(fmt.Sprintf("%s  (seed %d)", rendered.Summary, seed)),
	}
	for _, card := range rendered.Cards {
		blocks = append(blocks, renderCard(card))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func renderCard(card playlist.Card) string {
	lines := []string{
		headingStyle.Render(fmt.Sprintf("%d. %s", card.Number, card.Title)) + labelStyle.Render(fmt.Sprintf("  %d mins", card.Time)),
	}
	if card.Travel != nil {
		lines = append(lines, travelStyle.Render(card.Travel.String()))
	}
	lines = append(lines,
		labelStyle.Render("Type: ")+card.MissionType,
		labelStyle.Render(card.LocationLabel+" ")+card.Location,
		labelStyle.Render("Faction: ")+card.Faction,
	)
	if card.Description != "" {
		lines = append(lines, card.Description)
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}
