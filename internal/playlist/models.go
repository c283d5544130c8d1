package playlist

import (
	"playlist-server/internal/dataset"
)

// Alignment is the alignment constraint of a request
type Alignment string

const (
	AlignmentAny     Alignment = "any"
	AlignmentLegal   Alignment = "legal"
	AlignmentIllegal Alignment = "illegal"
)

// ParseAlignment accepts "any", "legal" or "illegal"; empty means any
func ParseAlignment(s string) (Alignment, bool) {
	switch Alignment(s) {
	case "", AlignmentAny:
		return AlignmentAny, true
	case AlignmentLegal, AlignmentIllegal:
		return Alignment(s), true
	}
	return "", false
}

// Any is the name that disables a mission type or system constraint
const Any = "any"

// Selector restricts one dimension of a request to a single key. The zero
// value matches everything.
type Selector struct {
	ID         string
	Restricted bool
}

// Only restricts a dimension to id. An empty id matches nothing because
// dataset keys are never empty.
func Only(id string) Selector {
	return Selector{ID: id, Restricted: true}
}

func (s Selector) matches(id string) bool {
	return !s.Restricted || (s.ID != "" && s.ID == id)
}

// Request is a key-based generation request. Build one from user input with
// ResolveRequest.
type Request struct {
	Duration    int
	Alignment   Alignment
	MissionType Selector
	System      Selector
}

// NamedRequest is a generation request as the user states it, with mission
// type and system given by display name or "any".
type NamedRequest struct {
	Duration    int    `json:"duration"`
	Alignment   string `json:"alignment"`
	MissionType string `json:"missionType"`
	System      string `json:"system"`
	Seed        *int64 `json:"seed,omitempty"`
}

// Entry is one stop of a playlist
type Entry struct {
	MissionID   string          `json:"missionId"`
	Mission     dataset.Mission `json:"mission"`
	MissionType string          `json:"missionType"`
	PlanetID    string          `json:"planetId"`
	Planet      dataset.Planet  `json:"planet"`
	SystemID    string          `json:"systemId"`
	System      dataset.System  `json:"system"`
	TravelTime  int             `json:"travelTime"`
}

// MissionTime is the time the entry adds to the playlist
func (e Entry) MissionTime() int {
	return e.Mission.Time + e.TravelTime
}

// HaltReason records why the builder stopped
type HaltReason string

const (
	// HaltExhausted means no eligible mission remained
	HaltExhausted HaltReason = "exhausted"
	// HaltBudget means the duration was spent or the next mission would overrun it
	HaltBudget HaltReason = "budget"
)

// Result is the output of a generation run. An empty result is a valid
// outcome meaning no playlist is possible for the constraints.
type Result struct {
	Entries   []Entry    `json:"entries"`
	TotalTime int        `json:"totalTime"`
	Halt      HaltReason `json:"halt"`
}

func (r Result) Empty() bool {
	return len(r.Entries) == 0
}

// UnknownMissionType is shown for missions whose type no longer exists
const UnknownMissionType = "Unknown Type"
