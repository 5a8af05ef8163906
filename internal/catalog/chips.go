package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"dealerlot/internal/domain"
)

// Display fallbacks for open-ended range chips.
const (
	priceCeilingLabel   = "150k"
	mileageCeilingLabel = "500k"
	yearFloor           = 2010
)

// Summarize turns the active filters of spec into removable chips. Each
// selected member of a set produces its own chip. A trailing clear-all chip
// is added once at least two filter chips are present.
func Summarize(spec domain.FilterSpec, currentYear int) []domain.FilterChip {
	var chips []domain.FilterChip

	for _, m := range spec.Make {
		chips = append(chips, setChip(domain.DimMake, m, m))
	}
	for _, c := range spec.Category {
		chips = append(chips, setChip(domain.DimCategory, string(c), TagLabel(string(c))))
	}
	for _, c := range spec.Condition {
		chips = append(chips, setChip(domain.DimCondition, string(c), capitalize(string(c))))
	}
	for _, e := range spec.EngineType {
		chips = append(chips, setChip(domain.DimEngineType, string(e), capitalize(string(e))))
	}
	for _, t := range spec.Transmission {
		chips = append(chips, setChip(domain.DimTransmission, string(t), TagLabel(string(t))))
	}
	for _, a := range spec.AxleConfiguration {
		chips = append(chips, setChip(domain.DimAxle, a, a))
	}
	for _, c := range spec.Country {
		chips = append(chips, setChip(domain.DimCountry, c, c))
	}

	if spec.PriceMin != nil || spec.PriceMax != nil {
		lo, hi := "0", priceCeilingLabel
		if spec.PriceMin != nil {
			lo = formatAmount(*spec.PriceMin)
		}
		if spec.PriceMax != nil {
			hi = formatAmount(*spec.PriceMax)
		}
		chips = append(chips, domain.FilterChip{Dimension: domain.DimPrice, Label: "€" + lo + " - €" + hi + "+"})
	}
	if spec.YearMin != nil || spec.YearMax != nil {
		lo, hi := yearFloor, currentYear
		if spec.YearMin != nil {
			lo = *spec.YearMin
		}
		if spec.YearMax != nil {
			hi = *spec.YearMax
		}
		chips = append(chips, domain.FilterChip{Dimension: domain.DimYear, Label: fmt.Sprintf("%d - %d", lo, hi)})
	}
	if spec.MileageMin != nil || spec.MileageMax != nil {
		lo, hi := "0", mileageCeilingLabel
		if spec.MileageMin != nil {
			lo = strconv.Itoa(*spec.MileageMin)
		}
		if spec.MileageMax != nil {
			hi = strconv.Itoa(*spec.MileageMax)
		}
		chips = append(chips, domain.FilterChip{Dimension: domain.DimMileage, Label: lo + "km - " + hi + "km"})
	}

	if spec.Featured {
		chips = append(chips, domain.FilterChip{Dimension: domain.DimFeatured, Label: "Featured"})
	}
	if spec.Certified {
		chips = append(chips, domain.FilterChip{Dimension: domain.DimCertified, Label: "Certified"})
	}

	if len(chips) >= 2 {
		chips = append(chips, domain.FilterChip{Dimension: domain.DimClearAll, Label: "Clear all"})
	}
	return chips
}

// ActiveFilters counts the filter chips of spec, not counting clear-all.
func ActiveFilters(spec domain.FilterSpec) int {
	n := 0
	for _, c := range Summarize(spec, 0) {
		if c.Dimension != domain.DimClearAll {
			n++
		}
	}
	return n
}

// Without returns a copy of spec with the filter represented by chip
// removed. Clear-all drops every filter but keeps sort and view mode.
func Without(spec domain.FilterSpec, chip domain.FilterChip) domain.FilterSpec {
	out := spec
	switch chip.Dimension {
	case domain.DimMake:
		out.Make = remove(spec.Make, chip.Value)
	case domain.DimCategory:
		out.Category = remove(spec.Category, domain.Category(chip.Value))
	case domain.DimCondition:
		out.Condition = remove(spec.Condition, domain.Condition(chip.Value))
	case domain.DimEngineType:
		out.EngineType = remove(spec.EngineType, domain.EngineType(chip.Value))
	case domain.DimTransmission:
		out.Transmission = remove(spec.Transmission, domain.Transmission(chip.Value))
	case domain.DimAxle:
		out.AxleConfiguration = remove(spec.AxleConfiguration, chip.Value)
	case domain.DimCountry:
		out.Country = remove(spec.Country, chip.Value)
	case domain.DimPrice:
		out.PriceMin, out.PriceMax = nil, nil
	case domain.DimYear:
		out.YearMin, out.YearMax = nil, nil
	case domain.DimMileage:
		out.MileageMin, out.MileageMax = nil, nil
	case domain.DimFeatured:
		out.Featured = false
	case domain.DimCertified:
		out.Certified = false
	case domain.DimClearAll:
		out = domain.FilterSpec{SortBy: spec.SortBy, ViewMode: spec.ViewMode}
	}
	return out
}

func setChip(dim domain.Dimension, value, label string) domain.FilterChip {
	return domain.FilterChip{Dimension: dim, Value: value, Label: label}
}

func remove[T comparable](set []T, value T) []T {
	out := make([]T, 0, len(set))
	for _, v := range set {
		if v != value {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// TagLabel renders a tag such as "box-truck" as "Box Truck".
func TagLabel(tag string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(tag, "-", " "))
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
