package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrMalformed marks a document that cannot be used as a mission graph
	ErrMalformed = errors.New("malformed dataset")
	// ErrNotFound marks an edit that names a record that does not exist
	ErrNotFound = errors.New("record not found")
	// ErrInvalid marks an edit that would break a record invariant
	ErrInvalid = errors.New("invalid record")
)

var requiredKeys = []string{"missionTypes", "subsystems", "systems", "planets", "links"}

// Parse decodes and validates a mission graph document
func Parse(data []byte) (*Dataset, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrMalformed)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	for _, key := range requiredKeys {
		raw, ok := top[key]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return nil, fmt.Errorf("%w: missing %q", ErrMalformed, key)
		}
	}

	ds := New()
	if err := json.Unmarshal(data, ds); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if err := ds.Validate(); err != nil {
		return nil, err
	}

	return ds, nil
}

// Validate checks record-level invariants. Dangling references are not
// malformed; see Check.
func (d *Dataset) Validate() error {
	for _, key := range sortedKeys(d.MissionTypes) {
		if key == "" {
			return fmt.Errorf("%w: mission type with empty key", ErrMalformed)
		}
	}
	for _, key := range sortedKeys(d.Systems) {
		if key == "" {
			return fmt.Errorf("%w: system with empty key", ErrMalformed)
		}
	}
	for _, key := range sortedKeys(d.Planets) {
		if key == "" {
			return fmt.Errorf("%w: planet with empty key", ErrMalformed)
		}
	}
	for _, key := range sortedKeys(d.Missions) {
		if key == "" {
			return fmt.Errorf("%w: mission with empty key", ErrMalformed)
		}
		if err := validateMission(d.Missions[key]); err != nil {
			return fmt.Errorf("%w: mission %s: %v", ErrMalformed, key, err)
		}
	}
	return nil
}

func validateMission(m Mission) error {
	if m.Time <= 0 {
		return fmt.Errorf("time must be positive, got %d", m.Time)
	}
	if len(m.Alignment) > 2 {
		return fmt.Errorf("at most two alignment tags allowed, got %d", len(m.Alignment))
	}
	for _, a := range m.Alignment {
		if !a.Valid() {
			return fmt.Errorf("unknown alignment %q", a)
		}
	}
	return nil
}

// Marshal encodes the dataset as an indented document suitable for export
func (d *Dataset) Marshal() ([]byte, error) {
	links := d.Links
	if links == nil {
		links = []Link{}
	}
	out := *d
	out.Links = links
	return json.MarshalIndent(&out, "", "  ")
}

// Clone returns a deep copy of the dataset
func (d *Dataset) Clone() *Dataset {
	c := New()
	for k, v := range d.MissionTypes {
		c.MissionTypes[k] = v
	}
	for k, v := range d.Missions {
		if v.Alignment != nil {
			v.Alignment = append(make([]Alignment, 0, len(v.Alignment)), v.Alignment...)
		}
		c.Missions[k] = v
	}
	for k, v := range d.Systems {
		c.Systems[k] = v
	}
	for k, v := range d.Planets {
		c.Planets[k] = v
	}
	c.Links = append(c.Links, d.Links...)
	return c
}

// MissionTypeIDByName resolves a mission type name to its key. When several
// types share a name the lowest key wins.
func (d *Dataset) MissionTypeIDByName(name string) (string, bool) {
	for _, key := range sortedKeys(d.MissionTypes) {
		if d.MissionTypes[key].Name == name {
			return key, true
		}
	}
	return "", false
}

// SystemIDByName resolves a system name to its key
func (d *Dataset) SystemIDByName(name string) (string, bool) {
	for _, key := range sortedKeys(d.Systems) {
		if d.Systems[key].Name == name {
			return key, true
		}
	}
	return "", false
}

// Filters returns the sorted, de-duplicated mission type and system names
func (d *Dataset) Filters() Filters {
	types := make([]string, 0, len(d.MissionTypes))
	for _, t := range d.MissionTypes {
		types = append(types, t.Name)
	}
	systems := make([]string, 0, len(d.Systems))
	for _, s := range d.Systems {
		systems = append(systems, s.Name)
	}
	return Filters{
		MissionTypes: uniqueSorted(types),
		Systems:      uniqueSorted(systems),
	}
}

// PlanetSummaries counts the enabled legal and illegal missions linked to
// each planet, ordered by system name then planet name.
func (d *Dataset) PlanetSummaries() []PlanetSummary {
	byID := make(map[string]*PlanetSummary, len(d.Planets))
	summaries := make([]PlanetSummary, 0, len(d.Planets))
	for id, p := range d.Planets {
		summaries = append(summaries, PlanetSummary{
			ID:         id,
			Name:       p.Name,
			SystemID:   p.ParentID,
			SystemName: d.Systems[p.ParentID].Name,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		if a.SystemName != b.SystemName {
			return a.SystemName < b.SystemName
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	for i := range summaries {
		byID[summaries[i].ID] = &summaries[i]
	}

	for _, link := range d.Links {
		summary, ok := byID[link.To]
		if !ok {
			continue
		}
		m, ok := d.Missions[link.From]
		if !ok || m.Disabled {
			continue
		}
		if m.HasAlignment(AlignmentLegal) {
			summary.LegalCount++
		}
		if m.HasAlignment(AlignmentIllegal) {
			summary.IllegalCount++
		}
	}
	return summaries
}

// Issue describes one dangling reference in the graph
type Issue struct {
	Kind      string `json:"kind"`
	ID        string `json:"id"`
	Reference string `json:"reference"`
	Message   string `json:"message"`
}

// Check reports every reference that does not resolve. The generator skips
// these records, so the report is informational.
func (d *Dataset) Check() []Issue {
	var issues []Issue
	for _, id := range sortedKeys(d.Missions) {
		m := d.Missions[id]
		if _, ok := d.MissionTypes[m.ParentID]; !ok {
			issues = append(issues, Issue{Kind: "mission", ID: id, Reference: m.ParentID, Message: "unknown mission type"})
		}
	}
	for _, id := range sortedKeys(d.Planets) {
		p := d.Planets[id]
		if _, ok := d.Systems[p.ParentID]; !ok {
			issues = append(issues, Issue{Kind: "planet", ID: id, Reference: p.ParentID, Message: "unknown system"})
		}
	}
	for i, link := range d.Links {
		id := fmt.Sprintf("%d", i)
		if _, ok := d.Missions[link.From]; !ok {
			issues = append(issues, Issue{Kind: "link", ID: id, Reference: link.From, Message: "unknown mission"})
		}
		if _, ok := d.Planets[link.To]; !ok {
			issues = append(issues, Issue{Kind: "link", ID: id, Reference: link.To, Message: "unknown planet"})
		}
	}
	return issues
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SortedMissionIDs returns mission keys in a stable order
func (d *Dataset) SortedMissionIDs() []string {
	return sortedKeys(d.Missions)
}

func uniqueSorted(values []string) []string {
	sort.Strings(values)
	out := values[:0]
	for i, v := range values {
		if i > 0 && v == values[i-1] {
			continue
		}
		out = append(out, v)
	}
	return out
}
