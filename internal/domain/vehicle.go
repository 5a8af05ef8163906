package domain

import "time"

type Category string

const (
	CategoryTipper        Category = "tipper"
	CategoryBoxTruck      Category = "box-truck"
	CategoryTractorUnit   Category = "tractor-unit"
	CategoryFlatbed       Category = "flatbed"
	CategoryRefrigerated  Category = "refrigerated"
	CategoryVan           Category = "van"
	CategoryTrailer       Category = "trailer"
	CategoryCraneTruck    Category = "crane-truck"
	CategoryConcreteMixer Category = "concrete-mixer"
)

// Categories lists every category tag the catalog knows about, in display order.
func Categories() []Category {
	return []Category{
		CategoryTipper, CategoryBoxTruck, CategoryTractorUnit, CategoryFlatbed,
		CategoryRefrigerated, CategoryVan, CategoryTrailer, CategoryCraneTruck,
		CategoryConcreteMixer,
	}
}

type Condition string

const (
	ConditionNew       Condition = "new"
	ConditionUsed      Condition = "used"
	ConditionCertified Condition = "certified"
)

func Conditions() []Condition {
	return []Condition{ConditionNew, ConditionUsed, ConditionCertified}
}

type EngineType string

const (
	EngineDiesel   EngineType = "diesel"
	EngineElectric EngineType = "electric"
	EngineHybrid   EngineType = "hybrid"
	EngineGas      EngineType = "gas"
)

func EngineTypes() []EngineType {
	return []EngineType{EngineDiesel, EngineElectric, EngineHybrid, EngineGas}
}

type Transmission string

const (
	TransmissionManual          Transmission = "manual"
	TransmissionAutomatic       Transmission = "automatic"
	TransmissionAutomatedManual Transmission = "automated-manual"
)

func Transmissions() []Transmission {
	return []Transmission{TransmissionManual, TransmissionAutomatic, TransmissionAutomatedManual}
}

// Vehicle is a read-only snapshot of one catalog listing.
type Vehicle struct {
	ID                string       `json:"id"`
	Make              string       `json:"make"`
	Model             string       `json:"model"`
	Category          Category     `json:"category"`
	Condition         Condition    `json:"condition"`
	Year              int          `json:"year"`
	Mileage           int          `json:"mileage"` // km
	Price             float64      `json:"price"`
	Horsepower        *int         `json:"horsepower,omitempty"`
	EngineType        EngineType   `json:"engineType"`
	Transmission      Transmission `json:"transmission"`
	AxleConfiguration string       `json:"axleConfiguration,omitempty"`
	Location          string       `json:"location"`
	Country           string       `json:"country"`
	Available         bool         `json:"available"`
	Featured          bool         `json:"featured"`
	Images            []string     `json:"images"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}

// Title is the make and model joined for headings.
func (v Vehicle) Title() string {
	if v.Model == "" {
		return v.Make
	}
	return v.Make + " " + v.Model
}

// Cover returns the first image or "" when the listing has none.
func (v Vehicle) Cover() string {
	if len(v.Images) == 0 {
		return ""
	}
	return v.Images[0]
}
