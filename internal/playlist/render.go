package playlist

import (
	"fmt"
	"strings"
)

const (
	startingLocationLabel = "Starting Location:"
	locationLabel         = "Location:"

	travelNewSystem = "new system"
	travelNewPlanet = "new planet"

	// EmptyMessage is shown when no playlist fits the constraints
	EmptyMessage = "Could not generate a playlist with the selected criteria. Try being less restrictive!"
)

// Card is the display form of one entry
type Card struct {
	Number        int         `json:"number"`
	Title         string      `json:"title"`
	Time          int         `json:"time"`
	MissionType   string      `json:"missionType"`
	Travel        *TravelNote `json:"travel,omitempty"`
	LocationLabel string      `json:"locationLabel"`
	Location      string      `json:"location"`
	Faction       string      `json:"faction"`
	Description   string      `json:"description"`
}

// TravelNote explains the travel time charged before an entry
type TravelNote struct {
	Reason  string `json:"reason"`
	Minutes int    `json:"minutes"`
}

func (n TravelNote) String() string {
	return fmt.Sprintf("Travel to %s (Minimum estimated travel time: %d mins)", n.Reason, n.Minutes)
}

// Rendered is a playlist ready for display and sharing
type Rendered struct {
	Empty      bool   `json:"empty"`
	Message    string `json:"message,omitempty"`
	Summary    string `json:"summary,omitempty"`
	Cards      []Card `json:"cards"`
	Transcript string `json:"transcript,omitempty"`
}

// Render turns a result into cards and the equivalent plain-text transcript
func Render(result Result, alignment Alignment) Rendered {
	if result.Empty() {
		return Rendered{Empty: true, Message: EmptyMessage, Cards: []Card{}}
	}

	cards := make([]Card, 0, len(result.Entries))
	for i, entry := range result.Entries {
		card := Card{
			Number:        i + 1,
			Title:         entry.Mission.Name,
			Time:          entry.Mission.Time,
			MissionType:   entry.MissionType,
			LocationLabel: locationLabel,
			Location:      fmt.Sprintf("%s (%s)", entry.Planet.Name, entry.System.Name),
			Faction:       entry.Mission.Faction,
			Description:   entry.Mission.Description,
		}
		if i == 0 {
			card.LocationLabel = startingLocationLabel
		} else if entry.TravelTime > 0 {
			reason := travelNewPlanet
			if entry.SystemID != result.Entries[i-1].SystemID {
				reason = travelNewSystem
			}
			card.Travel = &TravelNote{Reason: reason, Minutes: entry.TravelTime}
		}
		cards = append(cards, card)
	}

	return Rendered{
		Summary:    fmt.Sprintf("Generated %d missions. Estimated total time: %d minutes.", len(cards), result.TotalTime),
		Cards:      cards,
		Transcript: transcript(cards, result.TotalTime, alignment),
	}
}

func transcript(cards []Card, totalTime int, alignment Alignment) string {
	if alignment == "" {
		alignment = AlignmentAny
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Star Citizen Mission Playlist (%d mins approx.)**\n", totalTime)
	fmt.Fprintf(&b, "> Alignment: %s\n\n", titleCase(string(alignment)))

	for _, card := range cards {
		fmt.Fprintf(&b, "**%d. %s** (%d mins)\n", card.Number, card.Title, card.Time)
		if card.Travel != nil {
			fmt.Fprintf(&b, "   - *Travel to %s (%d mins)*\n", card.Travel.Reason, card.Travel.Minutes)
		}
		fmt.Fprintf(&b, "   - **Type:** %s\n", card.MissionType)
		fmt.Fprintf(&b, "   - **%s** %s\n", card.LocationLabel, card.Location)
		fmt.Fprintf(&b, "   - **Faction:** %s\n", card.Faction)
		fmt.Fprintf(&b, "   - **Brief:** %s\n\n", card.Description)
	}
	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// FormatDuration renders minutes the way the session picker shows them
func FormatDuration(totalMinutes int) string {
	if totalMinutes < 60 {
		return fmt.Sprintf("%d minutes", totalMinutes)
	}

	hours := totalMinutes / 60
	minutes := totalMinutes % 60

	hourText := "hour"
	if hours > 1 {
		hourText = "hours"
	}

	if minutes > 0 {
		return fmt.Sprintf("%d %s %d minutes", hours, hourText, minutes)
	}
	return fmt.Sprintf("%d %s", hours, hourText)
}
