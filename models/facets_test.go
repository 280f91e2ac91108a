package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithoutClearsOnlyTargetDimension(t *testing.T) {
	base := FilterSpec{
		RoastLevels:      []string{"medium"},
		Processes:        []string{"washed"},
		Statuses:         []string{"active"},
		RoasterIDs:       []int64{1},
		RoasterSlugs:     []string{"blue-tokai"},
		RegionIDs:        []int64{2},
		EstateIDs:        []int64{3},
		EstateKeys:       []string{"attikan"},
		BrewMethodIDs:    []int64{4},
		FlavorKeys:       []string{"berry"},
		CanonFlavorSlugs: []string{"citrus"},
		InStockOnly:      true,
		Page:             2,
	}

	cleared := map[Dimension]func(FilterSpec) bool{
		DimRoastLevels: func(f FilterSpec) bool { return f.RoastLevels == nil },
		DimProcesses:   func(f FilterSpec) bool { return f.Processes == nil },
		DimStatuses:    func(f FilterSpec) bool { return f.Statuses == nil },
		DimRoasters:    func(f FilterSpec) bool { return f.RoasterIDs == nil && f.RoasterSlugs == nil },
		DimRegions:     func(f FilterSpec) bool { return f.RegionIDs == nil },
		DimEstates:     func(f FilterSpec) bool { return f.EstateIDs == nil && f.EstateKeys == nil },
		DimBrewMethods: func(f FilterSpec) bool { return f.BrewMethodIDs == nil },
		DimFlavorNotes: func(f FilterSpec) bool { return f.FlavorKeys == nil && f.CanonFlavorSlugs == nil },
	}

	for dim, check := range cleared {
		t.Run(string(dim), func(t *testing.T) {
			masked := base.Without(dim)
			assert.True(t, check(masked), "dimension %s not cleared", dim)
			assert.True(t, base.Has(dim), "base should carry %s", dim)
			assert.False(t, masked.Has(dim))

			// everything else survives the mask
			assert.True(t, masked.InStockOnly)
			assert.Equal(t, 2, masked.Page)
			for other, otherCheck := range cleared {
				if other != dim {
					assert.False(t, otherCheck(masked), "dimension %s was cleared by masking %s", other, dim)
				}
			}
		})
	}

	// masking nothing returns the spec unchanged
	assert.Equal(t, base, base.Without(DimNone))
}

func TestHasOnEmptySpec(t *testing.T) {
	empty := FilterSpec{}
	for _, dim := range FacetDimensions {
		assert.False(t, empty.Has(dim), "empty spec should not carry %s", dim)
	}
}

func TestCategoricalLabel(t *testing.T) {
	assert.Equal(t, "Medium Dark", CategoricalLabel(DimRoastLevels, "medium-dark"))
	assert.Equal(t, "Monsooned", CategoricalLabel(DimProcesses, "monsooned"))
	assert.Equal(t, "Coming Soon", CategoricalLabel(DimStatuses, "coming-soon"))
	// unknown values fall back to the raw value
	assert.Equal(t, "mystery", CategoricalLabel(DimRoastLevels, "mystery"))
}

func TestEmptyFilterMeta(t *testing.T) {
	meta := EmptyFilterMeta()
	assert.Equal(t, 0, meta.Totals.Coffees)
	assert.Equal(t, 0, meta.Totals.Roasters)
	assert.NotNil(t, meta.RoastLevels)
	assert.Empty(t, meta.RoastLevels)
	assert.NotNil(t, meta.FlavorNotes)
	assert.Empty(t, meta.Statuses)
}
