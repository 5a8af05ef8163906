package catalog

import (
	"cmp"
	"slices"

	"dealerlot/internal/domain"
)

// FacetValue is one selectable option of a set-valued filter.
type FacetValue struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type IntRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type FloatRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FacetSummary lists the options the filter controls offer for a catalog.
type FacetSummary struct {
	Total         int          `json:"total"`
	Makes         []FacetValue `json:"makes"`
	Categories    []FacetValue `json:"categories"`
	Conditions    []FacetValue `json:"conditions"`
	EngineTypes   []FacetValue `json:"engineTypes"`
	Transmissions []FacetValue `json:"transmissions"`
	Axles         []FacetValue `json:"axles"`
	Countries     []FacetValue `json:"countries"`
	Price         FloatRange   `json:"price"`
	Year          IntRange     `json:"year"`
	Mileage       IntRange     `json:"mileage"`
}

// Facets counts distinct values per dimension and the numeric ranges over
// records. Missing values (empty strings) are not offered as options.
func Facets(records []domain.Vehicle) FacetSummary {
	var (
		makes, cats, conds, engines = counter{}, counter{}, counter{}, counter{}
		trans, axles, countries     = counter{}, counter{}, counter{}
	)
	out := FacetSummary{Total: len(records)}
	for i, v := range records {
		makes.add(v.Make)
		cats.add(string(v.Category))
		conds.add(string(v.Condition))
		engines.add(string(v.EngineType))
		trans.add(string(v.Transmission))
		axles.add(v.AxleConfiguration)
		countries.add(v.Country)

		if i == 0 {
			out.Price = FloatRange{Min: v.Price, Max: v.Price}
			out.Year = IntRange{Min: v.Year, Max: v.Year}
			out.Mileage = IntRange{Min: v.Mileage, Max: v.Mileage}
			continue
		}
		out.Price.Min, out.Price.Max = min(out.Price.Min, v.Price), max(out.Price.Max, v.Price)
		out.Year.Min, out.Year.Max = min(out.Year.Min, v.Year), max(out.Year.Max, v.Year)
		out.Mileage.Min, out.Mileage.Max = min(out.Mileage.Min, v.Mileage), max(out.Mileage.Max, v.Mileage)
	}
	out.Makes = makes.values()
	out.Categories = cats.values()
	out.Conditions = conds.values()
	out.EngineTypes = engines.values()
	out.Transmissions = trans.values()
	out.Axles = axles.values()
	out.Countries = countries.values()
	return out
}

type counter map[string]int

func (c counter) add(v string) {
	if v != "" {
		c[v]++
	}
}

func (c counter) values() []FacetValue {
	out := make([]FacetValue, 0, len(c))
	for v, n := range c {
		out = append(out, FacetValue{Value: v, Count: n})
	}
	slices.SortFunc(out, func(a, b FacetValue) int { return cmp.Compare(a.Value, b.Value) })
	return out
}
