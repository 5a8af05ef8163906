// Package catalog holds the pure in-memory query logic behind the vehicle
// browser: filtering, sorting, filter chips and facet options. Nothing here
// performs I/O, mutates its inputs, or returns errors.
package catalog

import (
	"slices"

	"dealerlot/internal/domain"
)

// Filter returns the records matching every populated field of spec, in
// input order. The result is always a new slice.
func Filter(records []domain.Vehicle, spec domain.FilterSpec) []domain.Vehicle {
	out := make([]domain.Vehicle, 0, len(records))
	for _, v := range records {
		if Match(v, spec) {
			out = append(out, v)
		}
	}
	return out
}

// Match reports whether a single record satisfies spec. Inverted bounds
// (min > max) are not rejected; they just never match.
func Match(v domain.Vehicle, spec domain.FilterSpec) bool {
	switch {
	case !inSet(spec.Make, v.Make),
		!inSet(spec.Category, v.Category),
		!inSet(spec.Condition, v.Condition),
		!inSet(spec.EngineType, v.EngineType),
		!inSet(spec.Transmission, v.Transmission),
		!inSet(spec.AxleConfiguration, v.AxleConfiguration),
		!inSet(spec.Country, v.Country):
		return false
	case !inRange(v.Price, spec.PriceMin, spec.PriceMax),
		!inRange(v.Year, spec.YearMin, spec.YearMax),
		!inRange(v.Mileage, spec.MileageMin, spec.MileageMax):
		return false
	case spec.Featured && !v.Featured:
		return false
	case spec.Certified && v.Condition != domain.ConditionCertified:
		return false
	}
	return true
}

// inSet treats an empty set as "no filter". A missing value ("") never
// matches a non-empty set.
func inSet[T ~string](set []T, value T) bool {
	if len(set) == 0 {
		return true
	}
	if value == "" {
		return false
	}
	return slices.Contains(set, value)
}

func inRange[T int | float64](value T, lo, hi *T) bool {
	if lo != nil && value < *lo {
		return false
	}
	if hi != nil && value > *hi {
		return false
	}
	return true
}
