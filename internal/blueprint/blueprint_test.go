package blueprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/levelforge/internal/world"
)

func TestLoadDefinitions(t *testing.T) {
	definitions, err := LoadDefinitions()
	require.NoError(t, err)
	require.NotEmpty(t, definitions)

	expectedIDs := map[string]bool{"cave_small": false, "crypt": false, "barracks": false, "mega_sector": false}
	for _, d := range definitions {
		if _, ok := expectedIDs[d.ID]; ok {
			expectedIDs[d.ID] = true
		}
	}
	for id, found := range expectedIDs {
		assert.True(t, found, "expected definition %q", id)
	}
}

func TestRegistryValidates(t *testing.T) {
	registry, err := LoadRegistry()
	require.NoError(t, err)

	for _, id := range registry.DefinitionIDs() {
		cfg := registry.Definition(id).Generator.WorldConfig()
		assert.NoError(t, cfg.Validate(), "definition %s", id)
	}
	assert.Contains(t, registry.ComplexIDs(), "sunken_keep")
}

func TestResolve(t *testing.T) {
	registry := MustLoadRegistry()

	keep, err := registry.Resolve("sunken_keep")
	require.NoError(t, err)
	assert.Len(t, keep.Levels, 3)
	assert.Equal(t, "Flooded Barracks", keep.Levels[0].NameOverride)

	single, err := registry.Resolve("crypt")
	require.NoError(t, err)
	require.Len(t, single.Levels, 1)
	assert.Equal(t, 1, single.Levels[0].Depth)
	assert.Equal(t, "crypt", single.Levels[0].BlueprintID)

	_, err = registry.Resolve("no_such_place")
	assert.ErrorIs(t, err, ErrUnknownBlueprint)
}

func TestRegistryRejectsDanglingLevel(t *testing.T) {
	registry := NewRegistry(
		[]Definition{{ID: "cave", Name: "Cave"}},
		[]Complex{{ID: "broken", Levels: []LevelRef{{Depth: 1, BlueprintID: "missing"}}}},
	)
	assert.ErrorIs(t, registry.Validate(), ErrUnknownBlueprint)
}

func TestWorldConfigDefaults(t *testing.T) {
	cfg := GeneratorConfig{}.WorldConfig()
	assert.Equal(t, 60, cfg.Width)
	assert.Equal(t, 60, cfg.Height)
	assert.Equal(t, 6, cfg.MinRoomSize)
	assert.Equal(t, 12, cfg.MaxRoomSize)
	assert.Equal(t, 15, cfg.RoomCount)
	assert.Equal(t, 1, cfg.Padding)
	assert.Equal(t, 100, cfg.PlacementAttempts)
	assert.Equal(t, world.DefaultTurnPenalty, cfg.TurnPenalty)
	assert.Equal(t, world.DefaultAdjacencyPenalty, cfg.AdjacencyPenalty)

	zero := 0
	cfg = GeneratorConfig{RoomCount: &zero, Padding: &zero}.WorldConfig()
	assert.Equal(t, 0, cfg.RoomCount)
	assert.Equal(t, 0, cfg.Padding)
}
