package catalog

import "sort"

// notAvailablePrice is the sentinel base price given to a weapon with no
// individually-purchasable offer, whether or not a preset of it is
// purchasable.
const notAvailablePrice = 999_999_999

// Normalize builds an ItemLookup from raw weapon and mod catalog entries.
// Mods with no positive-price offer anywhere are dropped (§4.1): they
// re-enter the model only when contained by a purchasable preset.
func Normalize(weapons, mods []RawItem) ItemLookup {
	lookup := make(ItemLookup, len(weapons)+len(mods))

	for i := range weapons {
		w := &weapons[i]
		lookup[w.ID] = &Item{
			ID:      w.ID,
			Name:    w.Name,
			Kind:    KindWeapon,
			Icon:    w.IconLink,
			Slots:   extractSlots(w.Properties.Slots),
			Stats:   extractWeaponStats(w),
			Presets: extractPresets(w.Properties.Presets, true),
		}
	}

	for i := range mods {
		m := &mods[i]
		if !hasValidPrice(m) {
			continue
		}
		stats, offers := extractModStats(m)
		lookup[m.ID] = &Item{
			ID:        m.ID,
			Name:      m.Name,
			Kind:      KindMod,
			Icon:      m.IconLink,
			Slots:     extractSlots(m.Properties.Slots),
			Stats:     stats,
			Conflicts: extractConflicts(m),
			Offers:    offers,
		}
	}

	return lookup
}

// hasValidPrice reports whether any buyFor offer on the raw item has a
// positive RUB price.
func hasValidPrice(item *RawItem) bool {
	for _, offer := range item.BuyFor {
		if offer.PriceRUB > 0 {
			return true
		}
	}
	return false
}

// extractConflicts lists the identifiers of items that cannot coexist with
// this one.
func extractConflicts(item *RawItem) []string {
	if len(item.ConflictingItems) == 0 {
		return nil
	}
	ids := make([]string, 0, len(item.ConflictingItems))
	for _, ref := range item.ConflictingItems {
		if ref.ID != "" {
			ids = append(ids, ref.ID)
		}
	}
	return ids
}

// extractSlots turns raw slot entries into SlotDescriptors. The source
// maintains two byte-identical helpers for this (one for weapons, one for
// mods) — consolidated here per the Open Question decision recorded in
// SPEC_FULL.md §9, since weapon and mod slots share the exact same shape.
func extractSlots(raw []RawSlot) []SlotDescriptor {
	if len(raw) == 0 {
		return nil
	}
	slots := make([]SlotDescriptor, 0, len(raw))
	for _, s := range raw {
		allowed := make([]string, 0, len(s.Filters.AllowedItems))
		for _, ref := range s.Filters.AllowedItems {
			if ref.ID != "" {
				allowed = append(allowed, ref.ID)
			}
		}
		slots = append(slots, SlotDescriptor{
			ID:         s.ID,
			Name:       s.Name,
			Required:   s.Required,
			AllowedIDs: allowed,
		})
	}
	return slots
}

// extractPresets extracts every preset's contained items and price offers,
// sorted ascending by price, recording the cheapest as (lowest_price,
// price_source). A preset is purchasable iff it has at least one
// positive-price offer; unpurchasable presets are still returned when
// includeUnpurchasable is set, since the Model Builder's fallback-base rule
// needs access to the full preset list even when none is purchasable.
func extractPresets(raw []RawPreset, includeUnpurchasable bool) []Preset {
	if len(raw) == 0 {
		return nil
	}

	presets := make([]Preset, 0, len(raw))
	for _, p := range raw {
		contained := make([]string, 0, len(p.ContainsItems))
		for _, c := range p.ContainsItems {
			if c.Item.ID != "" {
				contained = append(contained, c.Item.ID)
			}
		}

		offers := toOffers(p.BuyFor)
		sort.Slice(offers, func(i, j int) bool { return offers[i].Price < offers[j].Price })

		lowestPrice := 0
		priceSource := "not_available"
		if len(offers) > 0 {
			lowestPrice = offers[0].Price
			priceSource = offers[0].Source
		}

		purchasable := lowestPrice > 0
		if !purchasable && !includeUnpurchasable {
			continue
		}

		name := p.Name
		if name == "" {
			name = p.ShortName
		}
		if name == "" {
			name = "Unknown"
		}

		icon := p.Image512pxLink
		if icon == "" {
			icon = p.ImageLink
		}

		presets = append(presets, Preset{
			ID:           p.ID,
			Name:         name,
			Icon:         icon,
			ContainedIDs: contained,
			Offers:       offers,
			LowestPrice:  lowestPrice,
			PriceSource:  priceSource,
		})
	}
	return presets
}

// toOffers converts raw buyFor entries into Offers, dropping non-positive
// prices.
func toOffers(raw []RawOffer) []Offer {
	offers := make([]Offer, 0, len(raw))
	for _, o := range raw {
		if o.PriceRUB <= 0 {
			continue
		}
		traderLevel := 0
		if o.Source != "fleaMarket" {
			traderLevel = o.Vendor.MinTraderLevel
			if traderLevel == 0 {
				traderLevel = 1
			}
		}
		offers = append(offers, Offer{
			Price:            o.PriceRUB,
			Source:           o.Source,
			VendorName:       o.Vendor.Name,
			VendorNormalized: o.Vendor.NormalizedName,
			TraderLevel:      traderLevel,
		})
	}
	return offers
}

// extractWeaponStats computes the weapon StatBlock, including the base
// price fallback chain: prefer a non-flea buyFor offer; if none, fall back
// to the not-available sentinel regardless of whether a preset exists,
// matching the source's behavior (both branches of its has_preset check
// set the same sentinel).
func extractWeaponStats(w *RawItem) StatBlock {
	lowestPrice := 0
	priceSource := "basePrice"

	best := -1
	for _, offer := range w.BuyFor {
		if offer.Source == "fleaMarket" || offer.PriceRUB <= 0 {
			continue
		}
		if best == -1 || offer.PriceRUB < best {
			best = offer.PriceRUB
			priceSource = offer.Source
		}
	}
	if best > 0 {
		lowestPrice = best
	} else {
		lowestPrice = notAvailablePrice
		priceSource = "not_available"
	}

	category, categoryID := "", ""
	if w.BsgCategory.ID != "" || w.BsgCategory.Name != "" {
		category = w.BsgCategory.Name
		categoryID = w.BsgCategory.ID
	}

	return StatBlock{
		CategoryID:              categoryID,
		Category:                category,
		Weight:                  w.Weight,
		NakedErgonomics:         w.Properties.Ergonomics,
		NakedRecoilVertical:     w.Properties.RecoilVertical,
		NakedRecoilHorizontal:   w.Properties.RecoilHorizontal,
		DefaultRecoilVertical:   w.Properties.DefaultRecoilVertical,
		DefaultRecoilHorizontal: w.Properties.DefaultRecoilHorizontal,
		SightingRange:           w.Properties.SightingRange,
		Caliber:                 w.Properties.Caliber,
		Price:                   lowestPrice,
		PriceSource:             priceSource,
	}
}

// extractModStats computes the mod StatBlock and its price offers. The
// recoil_modifier precedence follows §4.1: a non-zero nested
// properties.recoil_modifier wins as a fractional delta; else a non-zero
// top-level recoilModifier is divided by 100; else zero.
func extractModStats(m *RawItem) (StatBlock, []Offer) {
	var recoilMod float64
	switch {
	case m.Properties.RecoilModifier != 0:
		recoilMod = m.Properties.RecoilModifier
	case m.RecoilModifier != 0:
		recoilMod = float64(m.RecoilModifier) / 100.0
	}

	offers := toOffers(m.BuyFor)
	sort.Slice(offers, func(i, j int) bool { return offers[i].Price < offers[j].Price })

	lowestPrice := 0
	priceSource := "market"
	if len(offers) > 0 {
		lowestPrice = offers[0].Price
		priceSource = offers[0].Source
	}

	category, categoryID := "", ""
	if m.BsgCategory.ID != "" || m.BsgCategory.Name != "" {
		category = m.BsgCategory.Name
		categoryID = m.BsgCategory.ID
	}

	stats := StatBlock{
		CategoryID:     categoryID,
		Category:       category,
		Weight:         m.Weight,
		Ergonomics:     m.ErgonomicsModifier,
		RecoilModifier: recoilMod,
		Capacity:       m.Properties.Capacity,
		MinLevelFlea:   m.MinLevelForFlea,
		Price:          lowestPrice,
		PriceSource:    priceSource,
	}
	return stats, offers
}
