// Package catalog normalizes a raw weapon/mod catalog into a uniform
// ItemLookup: for every item, its kind, slots, stats, offers, conflicts,
// and (for weapons) factory presets.
package catalog

// Kind distinguishes the two item variants the catalog can hold.
type Kind string

const (
	KindWeapon Kind = "weapon"
	KindMod    Kind = "mod"
)

// MaxPurchasablePrice marks a weapon's base price as not-purchasable once
// exceeded; the normalizer's not-available sentinel (999,999,999) lies
// above it.
const MaxPurchasablePrice = 100_000_000

// SlotDescriptor is a named attachment point on a weapon or mod.
type SlotDescriptor struct {
	ID         string
	Name       string
	Required   bool
	AllowedIDs []string
}

// Offer is one (price, source, level) tuple under which an item can be bought.
type Offer struct {
	Price            int
	Source           string // "fleaMarket" or a trader identifier
	VendorName       string
	VendorNormalized string
	TraderLevel      int // 0 when Source == flea (no loyalty gate)
}

// IsFlea reports whether this offer is sourced from the flea market rather
// than a trader.
func (o Offer) IsFlea() bool {
	return o.Source == "fleaMarket"
}

// StatBlock carries every numeric attribute the optimizer reasons about.
// Weapon-only and mod-only fields coexist on one struct — see DESIGN.md's
// "Variant kinds" entry for why this repo favors a flat struct with
// kind-specific zero fields over a type hierarchy here.
type StatBlock struct {
	CategoryID string
	Category   string
	Weight     float64

	// Weapon-only
	NakedErgonomics         int
	NakedRecoilVertical     int
	NakedRecoilHorizontal   int
	DefaultRecoilVertical   int
	DefaultRecoilHorizontal int
	SightingRange           int
	Caliber                 string
	Price                   int
	PriceSource             string

	// Mod-only
	Ergonomics     int
	RecoilModifier float64
	Capacity       int
	MinLevelFlea   int
}

// WeaponPurchasable reports whether the naked weapon's base price is usable,
// per the >100,000,000 sentinel used to mark "no purchase path".
func (s StatBlock) WeaponPurchasable() bool {
	return s.Price > 0 && s.Price <= MaxPurchasablePrice
}

// Preset is a factory-configured weapon instance: a bundle of items sold at
// one price.
type Preset struct {
	ID           string
	Name         string
	Icon         string
	ContainedIDs []string
	Offers       []Offer
	LowestPrice  int
	PriceSource  string
}

// Purchasable reports whether any offer for this preset has a positive price.
func (p Preset) Purchasable() bool {
	return p.LowestPrice > 0
}

// Item is either a weapon or a mod.
type Item struct {
	ID        string
	Name      string
	Kind      Kind
	Icon      string
	Slots     []SlotDescriptor
	Stats     StatBlock
	Conflicts []string

	Presets []Preset // weapons only; empty for mods
	Offers  []Offer  // mods only; empty for weapons
}

// ItemLookup maps an item identifier to its normalized record.
type ItemLookup map[string]*Item
