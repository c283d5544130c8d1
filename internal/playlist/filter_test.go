package playlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelect(t *testing.T) {
	ds := fixture()

	t.Run("any constraints", func(t *testing.T) {
		sel := Select(ds, Request{Alignment: AlignmentAny})

		assert.Equal(t, []string{"sub-haul", "sub-nolink", "sub-orphan", "sub-scan", "sub-smuggle"}, sel.MissionPool)
		assert.Equal(t, map[string]string{
			"pla-a": "sys-stanton",
			"pla-b": "sys-stanton",
			"pla-c": "sys-pyro",
			"pla-d": "sys-nyx",
		}, sel.ValidPlanets, "planets of a deleted system are skipped")
	})

	t.Run("legal", func(t *testing.T) {
		sel := Select(ds, Request{Alignment: AlignmentLegal})
		assert.Equal(t, []string{"sub-haul", "sub-nolink", "sub-orphan", "sub-scan"}, sel.MissionPool)
	})

	t.Run("illegal", func(t *testing.T) {
		sel := Select(ds, Request{Alignment: AlignmentIllegal})
		assert.Equal(t, []string{"sub-haul", "sub-smuggle"}, sel.MissionPool)
	})

	t.Run("mission type excludes orphans", func(t *testing.T) {
		sel := Select(ds, Request{Alignment: AlignmentAny, MissionType: Only("type-bounty")})
		assert.Equal(t, []string{"sub-nolink", "sub-scan"}, sel.MissionPool)
	})

	t.Run("system", func(t *testing.T) {
		sel := Select(ds, Request{Alignment: AlignmentAny, System: Only("sys-pyro")})
		assert.Equal(t, map[string]string{"pla-c": "sys-pyro"}, sel.ValidPlanets)
	})

	t.Run("unresolved selectors match nothing", func(t *testing.T) {
		sel := Select(ds, Request{Alignment: AlignmentAny, MissionType: Only(""), System: Only("")})
		assert.Empty(t, sel.MissionPool)
		assert.Empty(t, sel.ValidPlanets)
	})

	t.Run("does not mutate the dataset", func(t *testing.T) {
		before := ds.Clone()
		Select(ds, Request{Alignment: AlignmentLegal, System: Only("sys-stanton")})
		assert.Equal(t, before, ds)
	})
}

func TestCandidates(t *testing.T) {
	ds := fixture()

	t.Run("drops missions without valid links", func(t *testing.T) {
		got := Select(ds, Request{Alignment: AlignmentAny}).candidates(ds.Links)

		assert.Equal(t, []candidate{
			{missionID: "sub-haul", planets: []string{"pla-a", "pla-c", "pla-d"}},
			{missionID: "sub-orphan", planets: []string{"pla-b"}},
			{missionID: "sub-scan", planets: []string{"pla-a"}},
			{missionID: "sub-smuggle", planets: []string{"pla-b"}},
		}, got)
	})

	t.Run("restricted to one system", func(t *testing.T) {
		got := Select(ds, Request{Alignment: AlignmentAny, System: Only("sys-pyro")}).candidates(ds.Links)

		assert.Equal(t, []candidate{
			{missionID: "sub-haul", planets: []string{"pla-c"}},
		}, got)
	})

	t.Run("empty pool", func(t *testing.T) {
		got := Select(ds, Request{Alignment: AlignmentAny, MissionType: Only("")}).candidates(ds.Links)
		assert.Empty(t, got)
	})
}

func TestParseAlignment(t *testing.T) {
	for input, want := range map[string]Alignment{
		"":        AlignmentAny,
		"any":     AlignmentAny,
		"legal":   AlignmentLegal,
		"illegal": AlignmentIllegal,
	} {
		got, ok := ParseAlignment(input)
		assert.True(t, ok, input)
		assert.Equal(t, want, got, input)
	}

	_, ok := ParseAlignment("Legal")
	assert.False(t, ok)
}
