package catalog

import (
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"dealerlot/internal/domain"
)

// Query string keys understood by ParseQuery and written by Encode.
const (
	keyMake         = "make"
	keyCategory     = "category"
	keyCondition    = "condition"
	keyEngine       = "engine"
	keyTransmission = "transmission"
	keyAxle         = "axle"
	keyCountry      = "country"
	keyPriceMin     = "price_min"
	keyPriceMax     = "price_max"
	keyYearMin      = "year_min"
	keyYearMax      = "year_max"
	keyMileageMin   = "mileage_min"
	keyMileageMax   = "mileage_max"
	keyFeatured     = "featured"
	keyCertified    = "certified"
	keySort         = "sort"
	keyView         = "view"
)

// ParseQuery reads a FilterSpec from URL query values. Set keys may repeat
// and/or carry comma-separated values. Numbers that do not parse are
// dropped rather than rejected.
func ParseQuery(q url.Values) domain.FilterSpec {
	return domain.FilterSpec{
		Make:              list(q, keyMake),
		Category:          typedList[domain.Category](q, keyCategory),
		Condition:         typedList[domain.Condition](q, keyCondition),
		EngineType:        typedList[domain.EngineType](q, keyEngine),
		Transmission:      typedList[domain.Transmission](q, keyTransmission),
		AxleConfiguration: list(q, keyAxle),
		Country:           list(q, keyCountry),
		PriceMin:          parseFloat(q.Get(keyPriceMin)),
		PriceMax:          parseFloat(q.Get(keyPriceMax)),
		YearMin:           parseInt(q.Get(keyYearMin)),
		YearMax:           parseInt(q.Get(keyYearMax)),
		MileageMin:        parseInt(q.Get(keyMileageMin)),
		MileageMax:        parseInt(q.Get(keyMileageMax)),
		Featured:          truthy(q.Get(keyFeatured)),
		Certified:         truthy(q.Get(keyCertified)),
		SortBy:            domain.ParseSortKey(q.Get(keySort)),
		ViewMode:          domain.ParseViewMode(q.Get(keyView)),
	}
}

// Encode writes spec back as query values. Defaults (date-desc, grid) are
// omitted so an empty spec encodes to an empty string.
func Encode(spec domain.FilterSpec) url.Values {
	q := url.Values{}
	for _, v := range spec.Make {
		q.Add(keyMake, v)
	}
	for _, v := range spec.Category {
		q.Add(keyCategory, string(v))
	}
	for _, v := range spec.Condition {
		q.Add(keyCondition, string(v))
	}
	for _, v := range spec.EngineType {
		q.Add(keyEngine, string(v))
	}
	for _, v := range spec.Transmission {
		q.Add(keyTransmission, string(v))
	}
	for _, v := range spec.AxleConfiguration {
		q.Add(keyAxle, v)
	}
	for _, v := range spec.Country {
		q.Add(keyCountry, v)
	}
	if spec.PriceMin != nil {
		q.Set(keyPriceMin, formatAmount(*spec.PriceMin))
	}
	if spec.PriceMax != nil {
		q.Set(keyPriceMax, formatAmount(*spec.PriceMax))
	}
	setInt(q, keyYearMin, spec.YearMin)
	setInt(q, keyYearMax, spec.YearMax)
	setInt(q, keyMileageMin, spec.MileageMin)
	setInt(q, keyMileageMax, spec.MileageMax)
	if spec.Featured {
		q.Set(keyFeatured, "1")
	}
	if spec.Certified {
		q.Set(keyCertified, "1")
	}
	if spec.SortBy != "" && spec.SortBy != domain.DefaultSort {
		q.Set(keySort, string(spec.SortBy))
	}
	if spec.ViewMode == domain.ViewList {
		q.Set(keyView, string(spec.ViewMode))
	}
	return q
}

// list splits comma-joined and repeated values into a set, keeping the
// first-seen order.
func list(q url.Values, key string) []string {
	var out []string
	for _, raw := range q[key] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" && !slices.Contains(out, part) {
				out = append(out, part)
			}
		}
	}
	return out
}

func typedList[T ~string](q url.Values, key string) []T {
	raw := list(q, key)
	if raw == nil {
		return nil
	}
	out := make([]T, len(raw))
	for i, v := range raw {
		out[i] = T(v)
	}
	return out
}

func parseFloat(s string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) {
		return nil
	}
	return &f
}

func parseInt(s string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &n
}

func setInt(q url.Values, key string, v *int) {
	if v != nil {
		q.Set(key, strconv.Itoa(*v))
	}
}

func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
