package catalog

// Raw* types mirror the shape of the tarkov.dev GraphQL catalog responses
// that internal/adapters/catalogapi decodes JSON into. Normalize consumes
// them directly so the GraphQL response can be unmarshaled straight into
// these structs without an intermediate map[string]interface{} layer.

type RawCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RawVendor struct {
	Name            string `json:"name"`
	NormalizedName  string `json:"normalizedName"`
	MinTraderLevel  int    `json:"minTraderLevel"`
}

type RawOffer struct {
	PriceRUB int       `json:"priceRUB"`
	Source   string    `json:"source"`
	Vendor   RawVendor `json:"vendor"`
}

type RawSlotFilters struct {
	AllowedItems []RawItemRef `json:"allowedItems"`
}

type RawItemRef struct {
	ID string `json:"id"`
}

type RawSlot struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	NameID   string         `json:"nameId"`
	Required bool           `json:"required"`
	Filters  RawSlotFilters `json:"filters"`
}

type RawContainedItem struct {
	Item RawItemRef `json:"item"`
}

type RawPreset struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	ShortName        string             `json:"shortName"`
	Image512pxLink   string             `json:"image512pxLink"`
	ImageLink        string             `json:"imageLink"`
	ContainsItems    []RawContainedItem `json:"containsItems"`
	BuyFor           []RawOffer         `json:"buyFor"`
}

type RawProperties struct {
	Ergonomics              int         `json:"ergonomics"`
	RecoilVertical          int         `json:"recoilVertical"`
	RecoilHorizontal        int         `json:"recoilHorizontal"`
	DefaultErgonomics       int         `json:"defaultErgonomics"`
	DefaultRecoilVertical   int         `json:"defaultRecoilVertical"`
	DefaultRecoilHorizontal int         `json:"defaultRecoilHorizontal"`
	Caliber                 string      `json:"caliber"`
	SightingRange           int         `json:"sightingRange"`
	Slots                   []RawSlot   `json:"slots"`
	Presets                 []RawPreset `json:"presets"`
	Capacity                int         `json:"capacity"`
	RecoilModifier          float64     `json:"recoilModifier"`
}

type RawItem struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	IconLink           string        `json:"iconLink"`
	Weight             float64       `json:"weight"`
	BsgCategory        RawCategory   `json:"bsgCategory"`
	Properties         RawProperties `json:"properties"`
	BuyFor             []RawOffer    `json:"buyFor"`
	ConflictingItems   []RawItemRef  `json:"conflictingItems"`
	ErgonomicsModifier int           `json:"ergonomicsModifier"`
	RecoilModifier     int           `json:"recoilModifier"`
	MinLevelForFlea    int           `json:"minLevelForFlea"`
}
