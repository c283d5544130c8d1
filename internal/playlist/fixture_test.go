package playlist

import (
	"io"
	"log/slog"

	"playlist-server/internal/dataset"
)

// fixture builds a small graph:
//
//	Stanton: Hurston (pla-a), microTech (pla-b)
//	Pyro:    Pyro I (pla-c)
//	Nyx:     Delamar (pla-d)
//
// sub-off is disabled, sub-orphan points at a deleted mission type and one
// deleted planet, sub-nolink has no links.
func fixture() *dataset.Dataset {
	ds := dataset.New()
	ds.MissionTypes["type-bounty"] = dataset.MissionType{Name: "Bounty"}
	ds.MissionTypes["type-cargo"] = dataset.MissionType{Name: "Cargo"}

	ds.Systems["sys-stanton"] = dataset.System{Name: "Stanton"}
	ds.Systems["sys-pyro"] = dataset.System{Name: "Pyro"}
	ds.Systems["sys-nyx"] = dataset.System{Name: "Nyx"}

	ds.Planets["pla-a"] = dataset.Planet{ParentID: "sys-stanton", Name: "Hurston"}
	ds.Planets["pla-b"] = dataset.Planet{ParentID: "sys-stanton", Name: "microTech"}
	ds.Planets["pla-c"] = dataset.Planet{ParentID: "sys-pyro", Name: "Pyro I"}
	ds.Planets["pla-d"] = dataset.Planet{ParentID: "sys-nyx", Name: "Delamar"}
	ds.Planets["pla-lost"] = dataset.Planet{ParentID: "sys-gone", Name: "Lost"}

	legal := []dataset.Alignment{dataset.AlignmentLegal}
	illegal := []dataset.Alignment{dataset.AlignmentIllegal}
	both := []dataset.Alignment{dataset.AlignmentLegal, dataset.AlignmentIllegal}

	ds.Missions["sub-scan"] = dataset.Mission{ParentID: "type-bounty", Name: "Scan Wreck", Description: "Scan the derelict", Time: 20, Faction: "UEE Navy", Alignment: legal}
	ds.Missions["sub-smuggle"] = dataset.Mission{ParentID: "type-cargo", Name: "Smuggle Goods", Description: "Move contraband", Time: 15, Faction: "Nine Tails", Alignment: illegal}
	ds.Missions["sub-haul"] = dataset.Mission{ParentID: "type-cargo", Name: "Haul Freight", Description: "Box delivery", Time: 10, Faction: "Covalex", Alignment: both}
	ds.Missions["sub-off"] = dataset.Mission{ParentID: "type-bounty", Name: "Retired", Time: 5, Alignment: legal, Disabled: true}
	ds.Missions["sub-orphan"] = dataset.Mission{ParentID: "type-gone", Name: "Orphan", Time: 12, Alignment: legal}
	ds.Missions["sub-nolink"] = dataset.Mission{ParentID: "type-bounty", Name: "Nowhere", Time: 8, Alignment: legal}

	ds.Links = []dataset.Link{
		{From: "sub-scan", To: "pla-a"},
		{From: "sub-smuggle", To: "pla-b"},
		{From: "sub-haul", To: "pla-a"},
		{From: "sub-haul", To: "pla-c"},
		{From: "sub-haul", To: "pla-d"},
		{From: "sub-haul", To: "pla-a"},
		{From: "sub-off", To: "pla-a"},
		{From: "sub-orphan", To: "pla-b"},
		{From: "sub-orphan", To: "pla-gone"},
		{From: "sub-ghost", To: "pla-a"},
		{From: "sub-scan", To: "pla-lost"},
	}
	return ds
}

// scenario is the two-mission graph used to describe legal-only playlists
func scenario() *dataset.Dataset {
	ds := dataset.New()
	ds.MissionTypes["type-1"] = dataset.MissionType{Name: "Investigation"}
	ds.Systems["sys-stanton"] = dataset.System{Name: "Stanton"}
	ds.Planets["pla-a"] = dataset.Planet{ParentID: "sys-stanton", Name: "Planet A"}
	ds.Planets["pla-b"] = dataset.Planet{ParentID: "sys-stanton", Name: "Planet B"}
	ds.Missions["sub-scan"] = dataset.Mission{ParentID: "type-1", Name: "Scan Wreck", Time: 20, Alignment: []dataset.Alignment{dataset.AlignmentLegal}}
	ds.Missions["sub-smuggle"] = dataset.Mission{ParentID: "type-1", Name: "Smuggle Goods", Time: 15, Alignment: []dataset.Alignment{dataset.AlignmentIllegal}}
	ds.Links = []dataset.Link{
		{From: "sub-scan", To: "pla-a"},
		{From: "sub-smuggle", To: "pla-b"},
	}
	return ds
}

// scriptedRand replays fixed draws, reduced modulo n
type scriptedRand struct {
	values []int
	next   int
}

func (r *scriptedRand) Intn(n int) int {
	v := r.values[r.next%len(r.values)]
	r.next++
	return v % n
}

func defaultTable(ds *dataset.Dataset) TravelTable {
	return DefaultTravelConfig().Resolve(ds)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
