package playlist

import (
	"fmt"

	"playlist-server/internal/dataset"
)

// Generate selects the eligible part of ds for req and builds a playlist from
// it. It never mutates ds and has no side effects besides drawing from rng.
func Generate(ds *dataset.Dataset, req Request, travel TravelTable, rng Rand) Result {
	return Build(ds, Select(ds, req), req.Duration, travel, rng)
}

// ResolveRequest translates display names into keys. A name that matches no
// record restricts its dimension to nothing, producing an empty playlist
// rather than an error. Only a bad duration or alignment is rejected.
func ResolveRequest(ds *dataset.Dataset, named NamedRequest) (Request, error) {
	if named.Duration <= 0 {
		return Request{}, fmt.Errorf("duration must be positive, got %d", named.Duration)
	}

	alignment, ok := ParseAlignment(named.Alignment)
	if !ok {
		return Request{}, fmt.Errorf("alignment must be %q, %q or %q, got %q",
			AlignmentAny, AlignmentLegal, AlignmentIllegal, named.Alignment)
	}

	req := Request{
		Duration:  named.Duration,
		Alignment: alignment,
	}

	if named.MissionType != "" && named.MissionType != Any {
		id, _ := ds.MissionTypeIDByName(named.MissionType)
		req.MissionType = Only(id)
	}

	if named.System != "" && named.System != Any {
		id, _ := ds.SystemIDByName(named.System)
		req.System = Only(id)
	}

	return req, nil
}
