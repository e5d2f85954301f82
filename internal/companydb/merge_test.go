package companydb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func remoteFixture() RemoteSnapshot {
	return RemoteSnapshot{
		"R1": {
			"A": {Descriptions: []string{"x", "y"}},
			"B": {Descriptions: []string{"z"}},
		},
		"R3": {
			"C": {Descriptions: []string{"w"}},
		},
	}
}

func TestConvert(t *testing.T) {
	db := Convert(remoteFixture())
	assert.Equal(t, []string{"x", "y"}, db.Blades("R1", "A"))
	assert.Equal(t, []string{"z"}, db.Blades("R1", "B"))
	assert.Equal(t, []string{"w"}, db.Blades("R3", "C"))
}

func TestMerge_UnionsBladesAndKeepsLocalOnlyData(t *testing.T) {
	db := Database{
		"R1": {"A": {FrequentBlades: []string{"x"}}},
		"R2": {"Local Only": {FrequentBlades: []string{"q"}}},
	}

	db.Merge(Convert(remoteFixture()))

	assert.ElementsMatch(t, []string{"x", "y"}, db.Blades("R1", "A"),
		"merge must union local and remote blades")
	assert.Equal(t, []string{"z"}, db.Blades("R1", "B"), "remote-only company inserted")
	assert.Equal(t, []string{"w"}, db.Blades("R3", "C"), "remote-only route inserted")
	assert.Equal(t, []string{"q"}, db.Blades("R2", "Local Only"),
		"local-only data must survive a merge")
}

func TestMerge_Idempotent(t *testing.T) {
	db := Database{
		"R1": {"A": {FrequentBlades: []string{"x"}}},
	}

	db.Merge(Convert(remoteFixture()))
	once := db.Clone()
	db.Merge(Convert(remoteFixture()))

	assert.Equal(t, once, db, "merging the same snapshot twice must change nothing")
}

func TestReplace_DiscardsLocalOnlyRoutes(t *testing.T) {
	db := Database{
		"R1": {"A": {FrequentBlades: []string{"local special"}}},
		"R2": {"Local Only": {FrequentBlades: []string{"q"}}},
	}

	// Replace sync substitutes the converted snapshot wholesale.
	db = Convert(remoteFixture())

	assert.NotContains(t, db, "R2")
	assert.NotContains(t, db.Blades("R1", "A"), "local special")
}

func TestClone_Independent(t *testing.T) {
	db := Database{"R1": {"A": {FrequentBlades: []string{"x"}}}}
	dup := db.Clone()

	require.NoError(t, dup.AddOrEditBlade("R1", "A", "y", ""))
	assert.Equal(t, []string{"x"}, db.Blades("R1", "A"), "clone must not share blade slices")
}
