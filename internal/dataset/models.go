package dataset

// Alignment tags a mission as legal, illegal or both
type Alignment string

const (
	AlignmentLegal   Alignment = "legal"
	AlignmentIllegal Alignment = "illegal"
)

func (a Alignment) Valid() bool {
	return a == AlignmentLegal || a == AlignmentIllegal
}

type MissionType struct {
	Name string `json:"name"`
}

// Mission is a single completable activity. The document format calls these
// records "subsystems".
type Mission struct {
	ParentID    string      `json:"parentId"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Time        int         `json:"time"`
	Faction     string      `json:"faction"`
	Alignment   []Alignment `json:"alignment"`
	Disabled    bool        `json:"disabled"`
}

// HasAlignment reports whether the mission carries the given tag
func (m Mission) HasAlignment(a Alignment) bool {
	for _, tag := range m.Alignment {
		if tag == a {
			return true
		}
	}
	return false
}

type System struct {
	Name string `json:"name"`
}

type Planet struct {
	ParentID string `json:"parentId"`
	Name     string `json:"name"`
}

// Link declares that a mission can be performed at a planet
type Link struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Dataset is the mission graph document shared by the editor and the generator
type Dataset struct {
	MissionTypes map[string]MissionType `json:"missionTypes"`
	Missions     map[string]Mission     `json:"subsystems"`
	Systems      map[string]System      `json:"systems"`
	Planets      map[string]Planet      `json:"planets"`
	Links        []Link                 `json:"links"`
}

// New returns an empty dataset with every collection initialized
func New() *Dataset {
	return &Dataset{
		MissionTypes: make(map[string]MissionType),
		Missions:     make(map[string]Mission),
		Systems:      make(map[string]System),
		Planets:      make(map[string]Planet),
		Links:        []Link{},
	}
}

// Kind names one of the keyed collections of a dataset
type Kind string

const (
	KindMissionTypes Kind = "mission-types"
	KindMissions     Kind = "missions"
	KindSystems      Kind = "systems"
	KindPlanets      Kind = "planets"
)

// ParseKind maps a URL segment onto a collection kind
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindMissionTypes, KindMissions, KindSystems, KindPlanets:
		return Kind(s), true
	}
	return "", false
}

// PlanetSummary is a planet with the number of enabled missions linked to it
type PlanetSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	SystemID     string `json:"systemId"`
	SystemName   string `json:"systemName"`
	LegalCount   int    `json:"legalCount"`
	IllegalCount int    `json:"illegalCount"`
}

// Filters lists the human readable choices offered for generation
type Filters struct {
	MissionTypes []string `json:"missionTypes"`
	Systems      []string `json:"systems"`
}
