// Package compatibility derives, from a normalized catalog, the full tree
// of slots and attachments reachable from a base weapon via breadth-first
// traversal.
package compatibility

import (
	"fmt"

	"github.com/andrescamacho/gunsmith-go/internal/domain/catalog"
)

// Map is the per-weapon compatibility graph (§3 CompatibilityMap).
type Map struct {
	// ReachableItems maps id -> item reference; never includes the weapon itself.
	ReachableItems map[string]*catalog.Item
	// SlotItems maps slot_id -> allowed item ids present in the lookup, in
	// raw allowed-list order.
	SlotItems map[string][]string
	// ItemToSlots maps item_id -> slot_ids owned by that item.
	ItemToSlots map[string][]string
	// SlotOwner maps slot_id -> the item_id that owns it (the weapon owns
	// its own top-level slots).
	SlotOwner map[string]string
}

type queueEntry struct {
	itemID       string
	parentSlotID string
}

// Build performs a breadth-first traversal from weaponID: the queue starts
// with every allowed item of every top-level slot; on dequeue, an item
// already in the lookup and not yet visited has its slots recorded as
// owned and its own allowed items enqueued. Unknown identifiers and
// self-referential edges are silently skipped; cycles are broken by the
// visited set (§4.2, §9 "Cyclic compatibility").
func Build(weaponID string, lookup catalog.ItemLookup) (*Map, error) {
	weapon, ok := lookup[weaponID]
	if !ok {
		return nil, fmt.Errorf("weapon %q not found in item lookup", weaponID)
	}

	m := &Map{
		ReachableItems: make(map[string]*catalog.Item),
		SlotItems:      make(map[string][]string),
		ItemToSlots:    make(map[string][]string),
		SlotOwner:      make(map[string]string),
	}

	var queue []queueEntry
	for _, slot := range weapon.Slots {
		m.SlotItems[slot.ID] = []string{}
		m.SlotOwner[slot.ID] = weaponID
		for _, allowedID := range slot.AllowedIDs {
			if allowedID == weaponID {
				continue
			}
			if _, ok := lookup[allowedID]; ok {
				queue = append(queue, queueEntry{itemID: allowedID, parentSlotID: slot.ID})
				m.SlotItems[slot.ID] = append(m.SlotItems[slot.ID], allowedID)
			}
		}
	}

	visited := make(map[string]bool)
	for len(queue) > 0 {
		entry := queue[0]
		queue = queue[1:]

		if visited[entry.itemID] {
			continue
		}
		visited[entry.itemID] = true

		item, ok := lookup[entry.itemID]
		if !ok {
			continue
		}

		m.ReachableItems[entry.itemID] = item
		m.ItemToSlots[entry.itemID] = []string{}

		for _, slot := range item.Slots {
			m.SlotItems[slot.ID] = []string{}
			m.SlotOwner[slot.ID] = entry.itemID
			m.ItemToSlots[entry.itemID] = append(m.ItemToSlots[entry.itemID], slot.ID)

			for _, allowedID := range slot.AllowedIDs {
				if allowedID == weaponID {
					continue
				}
				if _, ok := lookup[allowedID]; !ok {
					continue
				}
				m.SlotItems[slot.ID] = append(m.SlotItems[slot.ID], allowedID)
				if !visited[allowedID] {
					queue = append(queue, queueEntry{itemID: allowedID, parentSlotID: slot.ID})
				}
			}
		}
	}

	return m, nil
}
