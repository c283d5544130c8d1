package dataset

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	prefixMissionType = "type"
	prefixMission     = "sub"
	prefixSystem      = "sys"
	prefixPlanet      = "pla"
)

// NewID returns a fresh key of the form "<prefix>-<uuid>"
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// AddMissionType creates a mission type and returns its key
func (d *Dataset) AddMissionType(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: mission type name is required", ErrInvalid)
	}
	id := NewID(prefixMissionType)
	d.MissionTypes[id] = MissionType{Name: name}
	return id, nil
}

// AddSystem creates a system and returns its key
func (d *Dataset) AddSystem(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: system name is required", ErrInvalid)
	}
	id := NewID(prefixSystem)
	d.Systems[id] = System{Name: name}
	return id, nil
}

// PutMission creates a mission when id is empty and replaces it otherwise.
// An update keeps the stored disabled flag; use ToggleMission to change it.
func (d *Dataset) PutMission(id string, m Mission) (string, error) {
	if strings.TrimSpace(m.Name) == "" {
		return "", fmt.Errorf("%w: mission name is required", ErrInvalid)
	}
	if _, ok := d.MissionTypes[m.ParentID]; !ok {
		return "", fmt.Errorf("%w: mission type %q", ErrNotFound, m.ParentID)
	}
	if err := validateMission(m); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if id == "" {
		id = NewID(prefixMission)
		m.Disabled = false
	} else {
		existing, ok := d.Missions[id]
		if !ok {
			return "", fmt.Errorf("%w: mission %q", ErrNotFound, id)
		}
		m.Disabled = existing.Disabled
	}

	m.Alignment = normalizeAlignment(m.Alignment)
	d.Missions[id] = m
	return id, nil
}

// PutPlanet creates a planet when id is empty and replaces it otherwise
func (d *Dataset) PutPlanet(id string, p Planet) (string, error) {
	if strings.TrimSpace(p.Name) == "" {
		return "", fmt.Errorf("%w: planet name is required", ErrInvalid)
	}
	if _, ok := d.Systems[p.ParentID]; !ok {
		return "", fmt.Errorf("%w: system %q", ErrNotFound, p.ParentID)
	}

	if id == "" {
		id = NewID(prefixPlanet)
	} else if _, ok := d.Planets[id]; !ok {
		return "", fmt.Errorf("%w: planet %q", ErrNotFound, id)
	}

	d.Planets[id] = p
	return id, nil
}

// ToggleMission flips the disabled flag and returns the new value
func (d *Dataset) ToggleMission(id string) (bool, error) {
	m, ok := d.Missions[id]
	if !ok {
		return false, fmt.Errorf("%w: mission %q", ErrNotFound, id)
	}
	m.Disabled = !m.Disabled
	d.Missions[id] = m
	return m.Disabled, nil
}

// AddLink connects a mission to a planet. It reports false when the link
// already exists.
func (d *Dataset) AddLink(from, to string) (bool, error) {
	if _, ok := d.Missions[from]; !ok {
		return false, fmt.Errorf("%w: mission %q", ErrNotFound, from)
	}
	if _, ok := d.Planets[to]; !ok {
		return false, fmt.Errorf("%w: planet %q", ErrNotFound, to)
	}
	for _, link := range d.Links {
		if link.From == from && link.To == to {
			return false, nil
		}
	}
	d.Links = append(d.Links, Link{From: from, To: to})
	return true, nil
}

// RemoveLink deletes every link between from and to and reports whether any
// existed
func (d *Dataset) RemoveLink(from, to string) bool {
	removed := false
	d.Links = filterLinks(d.Links, func(l Link) bool {
		if l.From == from && l.To == to {
			removed = true
			return false
		}
		return true
	})
	return removed
}

// Delete removes a record. Missions take their outgoing links with them and
// planets their incoming links; mission types and systems are removed alone,
// leaving children that the generator skips.
func (d *Dataset) Delete(kind Kind, id string) error {
	switch kind {
	case KindMissionTypes:
		if _, ok := d.MissionTypes[id]; !ok {
			return fmt.Errorf("%w: mission type %q", ErrNotFound, id)
		}
		delete(d.MissionTypes, id)
	case KindSystems:
		if _, ok := d.Systems[id]; !ok {
			return fmt.Errorf("%w: system %q", ErrNotFound, id)
		}
		delete(d.Systems, id)
	case KindMissions:
		if _, ok := d.Missions[id]; !ok {
			return fmt.Errorf("%w: mission %q", ErrNotFound, id)
		}
		delete(d.Missions, id)
		d.Links = filterLinks(d.Links, func(l Link) bool { return l.From != id })
	case KindPlanets:
		if _, ok := d.Planets[id]; !ok {
			return fmt.Errorf("%w: planet %q", ErrNotFound, id)
		}
		delete(d.Planets, id)
		d.Links = filterLinks(d.Links, func(l Link) bool { return l.To != id })
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalid, kind)
	}
	return nil
}

func filterLinks(links []Link, keep func(Link) bool) []Link {
	out := make([]Link, 0, len(links))
	for _, l := range links {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}

// normalizeAlignment orders tags legal before illegal and drops duplicates
func normalizeAlignment(tags []Alignment) []Alignment {
	out := []Alignment{}
	for _, want := range []Alignment{AlignmentLegal, AlignmentIllegal} {
		for _, tag := range tags {
			if tag == want {
				out = append(out, want)
				break
			}
		}
	}
	return out
}
