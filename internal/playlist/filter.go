package playlist

import (
	"playlist-server/internal/dataset"
)

// Selection is the part of the mission graph eligible for one request
type Selection struct {
	// MissionPool holds eligible mission keys in ascending order
	MissionPool []string
	// ValidPlanets maps each eligible planet key to its system key
	ValidPlanets map[string]string
}

// Select narrows the graph to the missions and planets a request allows.
// Records with unresolvable references are left out rather than reported.
func Select(ds *dataset.Dataset, req Request) Selection {
	sel := Selection{
		MissionPool:  []string{},
		ValidPlanets: make(map[string]string),
	}

	for _, id := range ds.SortedMissionIDs() {
		m := ds.Missions[id]
		if m.Disabled || m.Time <= 0 {
			continue
		}
		if req.Alignment != AlignmentAny && req.Alignment != "" && !m.HasAlignment(dataset.Alignment(req.Alignment)) {
			continue
		}
		if req.MissionType.Restricted {
			if _, ok := ds.MissionTypes[m.ParentID]; !ok || !req.MissionType.matches(m.ParentID) {
				continue
			}
		}
		sel.MissionPool = append(sel.MissionPool, id)
	}

	for id, p := range ds.Planets {
		if _, ok := ds.Systems[p.ParentID]; !ok {
			continue
		}
		if !req.System.matches(p.ParentID) {
			continue
		}
		sel.ValidPlanets[id] = p.ParentID
	}

	return sel
}

// candidate is a pooled mission together with the valid planets it links to
type candidate struct {
	missionID string
	planets   []string
}

// candidates lists the pooled missions that link to at least one valid
// planet. Planets keep link order and appear once per mission.
func (s Selection) candidates(links []dataset.Link) []candidate {
	if len(s.MissionPool) == 0 || len(s.ValidPlanets) == 0 {
		return nil
	}

	byMission := make(map[string][]string, len(s.MissionPool))
	seen := make(map[dataset.Link]bool, len(links))
	for _, link := range links {
		if _, ok := s.ValidPlanets[link.To]; !ok || seen[link] {
			continue
		}
		seen[link] = true
		byMission[link.From] = append(byMission[link.From], link.To)
	}

	var out []candidate
	for _, id := range s.MissionPool {
		if planets := byMission[id]; len(planets) > 0 {
			out = append(out, candidate{missionID: id, planets: planets})
		}
	}
	return out
}
