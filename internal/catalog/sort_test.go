package catalog_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dealerlot/internal/catalog"
	"dealerlot/internal/domain"
)

func TestSort_PriceAscScenario(t *testing.T) {
	all := []domain.Vehicle{
		vehicle("50k", func(v *domain.Vehicle) { v.Price = 50000 }),
		vehicle("10k", func(v *domain.Vehicle) { v.Price = 10000 }),
		vehicle("25k", func(v *domain.Vehicle) { v.Price = 25000 }),
	}
	got := catalog.Sort(all, domain.SortPriceAsc)
	assert.Equal(t, []string{"10k", "25k", "50k"}, ids(got))
}

func TestSort_Keys(t *testing.T) {
	cases := []struct {
		key  domain.SortKey
		want []string
	}{
		{domain.SortDateDesc, []string{"b", "c", "a", "d"}},
		{domain.SortPriceAsc, []string{"a", "b", "d", "c"}},
		{domain.SortPriceDesc, []string{"c", "b", "d", "a"}},
		{domain.SortYearDesc, []string{"c", "b", "d", "a"}},
		{domain.SortYearAsc, []string{"a", "d", "b", "c"}},
		{domain.SortMileageAsc, []string{"c", "b", "d", "a"}},
		{domain.SortMileageDesc, []string{"a", "d", "b", "c"}},
		{"", []string{"b", "c", "a", "d"}},
		{"bogus", []string{"b", "c", "a", "d"}},
	}
	for _, tc := range cases {
		t.Run(string(tc.key), func(t *testing.T) {
			assert.Equal(t, tc.want, ids(catalog.Sort(fixture(), tc.key)))
		})
	}
}

func TestSort_StableForEqualKeys(t *testing.T) {
	all := []domain.Vehicle{
		vehicle("x1", func(v *domain.Vehicle) { v.Price = 100 }),
		vehicle("y", func(v *domain.Vehicle) { v.Price = 50 }),
		vehicle("x2", func(v *domain.Vehicle) { v.Price = 100 }),
		vehicle("x3", func(v *domain.Vehicle) { v.Price = 100 }),
	}
	assert.Equal(t, []string{"y", "x1", "x2", "x3"}, ids(catalog.Sort(all, domain.SortPriceAsc)))
	assert.Equal(t, []string{"x1", "x2", "x3", "y"}, ids(catalog.Sort(all, domain.SortPriceDesc)))

	// identical timestamps keep catalog order under the default sort
	same := []domain.Vehicle{vehicle("t1"), vehicle("t2"), vehicle("t3")}
	assert.Equal(t, []string{"t1", "t2", "t3"}, ids(catalog.Sort(same, domain.SortDateDesc)))
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	all := fixture()
	_ = catalog.Sort(all, domain.SortPriceAsc)
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(all))
}

func TestSort_DateDescNewestFirst(t *testing.T) {
	now := time.Now()
	all := []domain.Vehicle{
		vehicle("old", func(v *domain.Vehicle) { v.CreatedAt = now.Add(-48 * time.Hour) }),
		vehicle("new", func(v *domain.Vehicle) { v.CreatedAt = now }),
	}
	assert.Equal(t, []string{"new", "old"}, ids(catalog.Sort(all, domain.SortDateDesc)))
}
