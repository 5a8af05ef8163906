package catalog

import (
	"cmp"
	"slices"

	"dealerlot/internal/domain"
)

// Sort returns a copy of records ordered by key. The sort is stable: records
// with equal keys keep their input order. Unknown keys sort as DefaultSort.
func Sort(records []domain.Vehicle, key domain.SortKey) []domain.Vehicle {
	out := slices.Clone(records)
	slices.SortStableFunc(out, comparator(key))
	return out
}

func comparator(key domain.SortKey) func(a, b domain.Vehicle) int {
	switch key {
	case domain.SortPriceAsc:
		return func(a, b domain.Vehicle) int { return cmp.Compare(a.Price, b.Price) }
	case domain.SortPriceDesc:
		return func(a, b domain.Vehicle) int { return cmp.Compare(b.Price, a.Price) }
	case domain.SortYearAsc:
		return func(a, b domain.Vehicle) int { return cmp.Compare(a.Year, b.Year) }
	case domain.SortYearDesc:
		return func(a, b domain.Vehicle) int { return cmp.Compare(b.Year, a.Year) }
	case domain.SortMileageAsc:
		return func(a, b domain.Vehicle) int { return cmp.Compare(a.Mileage, b.Mileage) }
	case domain.SortMileageDesc:
		return func(a, b domain.Vehicle) int { return cmp.Compare(b.Mileage, a.Mileage) }
	default:
		return func(a, b domain.Vehicle) int { return b.CreatedAt.Compare(a.CreatedAt) }
	}
}
