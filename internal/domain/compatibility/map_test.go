package compatibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/gunsmith-go/internal/domain/catalog"
)

func TestBuild_BreadthFirstAndCycleSafe(t *testing.T) {
	lookup := catalog.ItemLookup{
		"w1": {
			ID: "w1",
			Slots: []catalog.SlotDescriptor{
				{ID: "slot_mount", AllowedIDs: []string{"sight1", "unknown-item"}},
			},
		},
		"sight1": {
			ID: "sight1",
			Slots: []catalog.SlotDescriptor{
				// sight1 allows w1 back — a cycle; must not loop forever and
				// must not place the weapon into ReachableItems.
				{ID: "slot_mount2", AllowedIDs: []string{"w1", "scope1"}},
			},
		},
		"scope1": {ID: "scope1"},
	}

	m, err := Build("w1", lookup)
	require.NoError(t, err)

	assert.Contains(t, m.ReachableItems, "sight1")
	assert.Contains(t, m.ReachableItems, "scope1")
	assert.NotContains(t, m.ReachableItems, "w1")
	assert.NotContains(t, m.ReachableItems, "unknown-item")

	assert.Equal(t, []string{"sight1"}, m.SlotItems["slot_mount"])
	assert.Equal(t, "w1", m.SlotOwner["slot_mount"])
	assert.Equal(t, "sight1", m.SlotOwner["slot_mount2"])
	assert.ElementsMatch(t, []string{"slot_mount2"}, m.ItemToSlots["sight1"])
}

func TestBuild_UnknownWeapon(t *testing.T) {
	_, err := Build("missing", catalog.ItemLookup{})
	assert.Error(t, err)
}
