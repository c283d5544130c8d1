package playlist

import (
	"playlist-server/internal/dataset"
)

// OverrunAllowance is how far past the duration a playlist may run
const OverrunAllowance = 10

// Rand is the random source used for sampling. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Build walks the selection, drawing a uniformly random eligible mission and
// then a uniformly random valid planet for it, while budget remains.
// The first entry is always accepted; later entries may overrun the duration
// by at most OverrunAllowance minutes.
func Build(ds *dataset.Dataset, sel Selection, duration int, travel TravelTable, rng Rand) Result {
	result := Result{Entries: []Entry{}, Halt: HaltExhausted}

	available := sel.candidates(ds.Links)
	if len(available) == 0 {
		return result
	}

	remaining := duration
	var last *Stop

	for remaining > 0 {
		pick := available[rng.Intn(len(available))]
		planetID := pick.planets[rng.Intn(len(pick.planets))]
		stop := Stop{PlanetID: planetID, SystemID: sel.ValidPlanets[planetID]}

		mission := ds.Missions[pick.missionID]
		travelTime := travel.Cost(last, stop)
		missionTime := mission.Time + travelTime

		if remaining-missionTime < -OverrunAllowance && len(result.Entries) > 0 {
			result.Halt = HaltBudget
			return result
		}

		typeName := UnknownMissionType
		if t, ok := ds.MissionTypes[mission.ParentID]; ok {
			typeName = t.Name
		}

		result.Entries = append(result.Entries, Entry{
			MissionID:   pick.missionID,
			Mission:     mission,
			MissionType: typeName,
			PlanetID:    stop.PlanetID,
			Planet:      ds.Planets[stop.PlanetID],
			SystemID:    stop.SystemID,
			System:      ds.Systems[stop.SystemID],
			TravelTime:  travelTime,
		})

		remaining -= missionTime
		result.TotalTime += missionTime
		last = &stop
	}

	result.Halt = HaltBudget
	return result
}
