package domain

type SortKey string

const (
	SortDateDesc    SortKey = "date-desc"
	SortPriceAsc    SortKey = "price-asc"
	SortPriceDesc   SortKey = "price-desc"
	SortYearDesc    SortKey = "year-desc"
	SortYearAsc     SortKey = "year-asc"
	SortMileageAsc  SortKey = "mileage-asc"
	SortMileageDesc SortKey = "mileage-desc"
)

// DefaultSort is used when no (or an unknown) sort key is given.
const DefaultSort = SortDateDesc

func SortKeys() []SortKey {
	return []SortKey{
		SortDateDesc, SortPriceAsc, SortPriceDesc, SortYearDesc,
		SortYearAsc, SortMileageAsc, SortMileageDesc,
	}
}

// ParseSortKey maps user input onto the fixed enumeration. Unknown input
// yields DefaultSort.
func ParseSortKey(s string) SortKey {
	for _, k := range SortKeys() {
		if string(k) == s {
			return k
		}
	}
	return DefaultSort
}

type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

func ParseViewMode(s string) ViewMode {
	if s == string(ViewList) {
		return ViewList
	}
	return ViewGrid
}

// FilterSpec describes a catalog query. The zero value matches everything.
// Set-valued fields use OR semantics within the set; an empty set is the
// same as no filter. Bounds are inclusive.
type FilterSpec struct {
	Make              []string       `json:"make,omitempty"`
	Category          []Category     `json:"category,omitempty"`
	Condition         []Condition    `json:"condition,omitempty"`
	EngineType        []EngineType   `json:"engineType,omitempty"`
	Transmission      []Transmission `json:"transmission,omitempty"`
	AxleConfiguration []string       `json:"axleConfiguration,omitempty"`
	Country           []string       `json:"country,omitempty"`

	PriceMin   *float64 `json:"priceMin,omitempty"`
	PriceMax   *float64 `json:"priceMax,omitempty"`
	YearMin    *int     `json:"yearMin,omitempty"`
	YearMax    *int     `json:"yearMax,omitempty"`
	MileageMin *int     `json:"mileageMin,omitempty"`
	MileageMax *int     `json:"mileageMax,omitempty"`

	Featured  bool `json:"featured,omitempty"`
	Certified bool `json:"certified,omitempty"`

	SortBy   SortKey  `json:"sortBy,omitempty"`
	ViewMode ViewMode `json:"viewMode,omitempty"`
}

// Dimension names the filter a chip removes.
type Dimension string

const (
	DimMake         Dimension = "make"
	DimCategory     Dimension = "category"
	DimCondition    Dimension = "condition"
	DimEngineType   Dimension = "engine"
	DimTransmission Dimension = "transmission"
	DimAxle         Dimension = "axle"
	DimCountry      Dimension = "country"
	DimPrice        Dimension = "price"
	DimYear         Dimension = "year"
	DimMileage      Dimension = "mileage"
	DimFeatured     Dimension = "featured"
	DimCertified    Dimension = "certified"
	DimClearAll     Dimension = "clear-all"
)

// FilterChip is one active filter rendered as a removable badge. Value is
// set only for set-valued dimensions.
type FilterChip struct {
	Dimension Dimension `json:"dimension"`
	Value     string    `json:"value,omitempty"`
	Label     string    `json:"label"`
}
