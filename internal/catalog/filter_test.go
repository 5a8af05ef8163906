package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealerlot/internal/catalog"
	"dealerlot/internal/domain"
)

func TestFilter_EmptySpecIsIdentity(t *testing.T) {
	all := fixture()
	got := catalog.Filter(all, domain.FilterSpec{})
	assert.Equal(t, all, got)
}

func TestFilter_EmptySetsDoNotFilter(t *testing.T) {
	spec := domain.FilterSpec{Make: []string{}, Category: []domain.Category{}, Country: []string{}}
	assert.Len(t, catalog.Filter(fixture(), spec), 4)
}

func TestFilter_PriceMinScenario(t *testing.T) {
	all := []domain.Vehicle{
		vehicle("p1", func(v *domain.Vehicle) { v.Price = 10000 }),
		vehicle("p2", func(v *domain.Vehicle) { v.Price = 25000 }),
		vehicle("p3", func(v *domain.Vehicle) { v.Price = 50000 }),
	}
	got := catalog.Filter(all, domain.FilterSpec{PriceMin: ptr(20000.0)})
	assert.Equal(t, []string{"p2", "p3"}, ids(got))
}

func TestFilter_MakeSetScenario(t *testing.T) {
	all := []domain.Vehicle{
		vehicle("volvo", func(v *domain.Vehicle) { v.Make = "Volvo" }),
		vehicle("scania", func(v *domain.Vehicle) { v.Make = "Scania" }),
		vehicle("daf", func(v *domain.Vehicle) { v.Make = "DAF" }),
	}
	got := catalog.Filter(all, domain.FilterSpec{Make: []string{"Volvo", "Scania"}})
	assert.Equal(t, []string{"volvo", "scania"}, ids(got))
}

func TestFilter_InvertedRangeYieldsNothing(t *testing.T) {
	got := catalog.Filter(fixture(), domain.FilterSpec{YearMin: ptr(2020), YearMax: ptr(2015)})
	assert.Empty(t, got)
}

func TestFilter_RangeInclusivity(t *testing.T) {
	all := []domain.Vehicle{
		vehicle("below", func(v *domain.Vehicle) { v.Price = 19999 }),
		vehicle("lo", func(v *domain.Vehicle) { v.Price = 20000 }),
		vehicle("hi", func(v *domain.Vehicle) { v.Price = 30000 }),
		vehicle("above", func(v *domain.Vehicle) { v.Price = 30001 }),
	}
	got := catalog.Filter(all, domain.FilterSpec{PriceMin: ptr(20000.0), PriceMax: ptr(30000.0)})
	assert.Equal(t, []string{"lo", "hi"}, ids(got))

	years := []domain.Vehicle{
		vehicle("y1", func(v *domain.Vehicle) { v.Year = 2014 }),
		vehicle("y2", func(v *domain.Vehicle) { v.Year = 2015 }),
		vehicle("y3", func(v *domain.Vehicle) { v.Year = 2020 }),
		vehicle("y4", func(v *domain.Vehicle) { v.Year = 2021 }),
	}
	got = catalog.Filter(years, domain.FilterSpec{YearMin: ptr(2015), YearMax: ptr(2020)})
	assert.Equal(t, []string{"y2", "y3"}, ids(got))

	got = catalog.Filter(fixture(), domain.FilterSpec{MileageMax: ptr(120000)})
	assert.Equal(t, []string{"b", "c"}, ids(got))
}

func TestFilter_OpenEndedRanges(t *testing.T) {
	got := catalog.Filter(fixture(), domain.FilterSpec{MileageMin: ptr(300000)})
	assert.Equal(t, []string{"a", "d"}, ids(got))

	got = catalog.Filter(fixture(), domain.FilterSpec{PriceMax: ptr(10000.0)})
	assert.Equal(t, []string{"a"}, ids(got))
}

func TestFilter_MissingValueNeverMatchesSet(t *testing.T) {
	got := catalog.Filter(fixture(), domain.FilterSpec{AxleConfiguration: []string{"6x4", "8x4"}})
	assert.Equal(t, []string{"a", "c"}, ids(got))

	got = catalog.Filter(fixture(), domain.FilterSpec{AxleConfiguration: []string{""}})
	assert.Empty(t, got)
}

func TestFilter_FeaturedIgnoresAvailability(t *testing.T) {
	got := catalog.Filter(fixture(), domain.FilterSpec{Featured: true})
	require.Equal(t, []string{"b", "c"}, ids(got))
	assert.False(t, got[0].Available, "sold featured listing stays in the result")
}

func TestFilter_CertifiedRequiresCondition(t *testing.T) {
	got := catalog.Filter(fixture(), domain.FilterSpec{Certified: true})
	assert.Equal(t, []string{"b"}, ids(got))
}

func TestFilter_TypedSets(t *testing.T) {
	cases := []struct {
		name string
		spec domain.FilterSpec
		want []string
	}{
		{"category", domain.FilterSpec{Category: []domain.Category{domain.CategoryTipper}}, []string{"a", "c"}},
		{"condition", domain.FilterSpec{Condition: []domain.Condition{domain.ConditionNew, domain.ConditionCertified}}, []string{"b", "c"}},
		{"engine", domain.FilterSpec{EngineType: []domain.EngineType{domain.EngineElectric}}, []string{"b"}},
		{"transmission", domain.FilterSpec{Transmission: []domain.Transmission{domain.TransmissionManual}}, []string{"d"}},
		{"country", domain.FilterSpec{Country: []string{"DE"}}, []string{"b"}},
		{"unknown make", domain.FilterSpec{Make: []string{"MAN"}}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(catalog.Filter(fixture(), tc.spec)))
		})
	}
}

func TestFilter_Idempotent(t *testing.T) {
	spec := domain.FilterSpec{Make: []string{"Scania", "DAF"}, PriceMin: ptr(20000.0)}
	once := catalog.Filter(fixture(), spec)
	assert.Equal(t, once, catalog.Filter(once, spec))
}

func TestFilter_ANDComposition(t *testing.T) {
	a := domain.FilterSpec{Make: []string{"Scania", "DAF"}}
	b := domain.FilterSpec{PriceMax: ptr(25000.0)}
	both := domain.FilterSpec{Make: a.Make, PriceMax: b.PriceMax}

	direct := catalog.Filter(fixture(), both)
	assert.Equal(t, direct, catalog.Filter(catalog.Filter(fixture(), a), b))
	assert.Equal(t, direct, catalog.Filter(catalog.Filter(fixture(), b), a))
	assert.Equal(t, []string{"b", "d"}, ids(direct))
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	all := fixture()
	before := fixture()
	_ = catalog.Filter(all, domain.FilterSpec{Make: []string{"DAF"}})
	assert.Equal(t, before, all)
}
