package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dealerlot/internal/catalog"
)

func TestFacets(t *testing.T) {
	f := catalog.Facets(fixture())

	assert.Equal(t, 4, f.Total)
	assert.Equal(t, []catalog.FacetValue{{Value: "DAF", Count: 1}, {Value: "Scania", Count: 2}, {Value: "Volvo", Count: 1}}, f.Makes)
	assert.Equal(t, []catalog.FacetValue{{Value: "box-truck", Count: 1}, {Value: "tipper", Count: 2}, {Value: "tractor-unit", Count: 1}}, f.Categories)
	assert.Equal(t, []catalog.FacetValue{{Value: "6x4", Count: 1}, {Value: "8x4", Count: 1}}, f.Axles, "missing axle values are not options")
	assert.Equal(t, []catalog.FacetValue{{Value: "DE", Count: 1}, {Value: "NL", Count: 3}}, f.Countries)
	assert.Equal(t, catalog.FloatRange{Min: 10000, Max: 50000}, f.Price)
	assert.Equal(t, catalog.IntRange{Min: 2015, Max: 2022}, f.Year)
	assert.Equal(t, catalog.IntRange{Min: 20000, Max: 450000}, f.Mileage)
}

func TestFacets_Empty(t *testing.T) {
	f := catalog.Facets(nil)
	assert.Zero(t, f.Total)
	assert.Empty(t, f.Makes)
	assert.Equal(t, catalog.FloatRange{}, f.Price)
}
