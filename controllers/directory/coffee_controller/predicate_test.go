package coffee_controller

import (
	"strings"
	"testing"

	"github.com/3lokai/icb-directory-backend/models"
	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int { return &n }

func TestBuildPredicateEmptySpecMatchesEverything(t *testing.T) {
	where, args := BuildPredicate(models.FilterSpec{}, models.DimNone)
	assert.Equal(t, "TRUE", where)
	assert.Empty(t, args)
}

func TestBuildPredicateTextSearch(t *testing.T) {
	where, args := BuildPredicate(models.FilterSpec{Query: "malabar"}, models.DimNone)
	assert.Contains(t, where, "c.name ILIKE ?")
	assert.Equal(t, []any{"%malabar%"}, args)
}

func TestBuildPredicateIDListSuppressesTextMatch(t *testing.T) {
	// The name-match oracle's candidate list replaces the substring match.
	where, args := BuildPredicate(models.FilterSpec{
		Query:    "malabar",
		IDFilter: []int64{4, 9},
	}, models.DimNone)

	assert.Contains(t, where, "c.id IN (?,?)")
	assert.NotContains(t, where, "ILIKE")
	assert.Equal(t, []any{int64(4), int64(9)}, args)
}

func TestBuildPredicateAnyOfSemantics(t *testing.T) {
	// Brew methods are any-of: EXISTS over the join table with IN.
	where, args := BuildPredicate(models.FilterSpec{
		BrewMethodIDs: []int64{1, 2},
	}, models.DimNone)

	assert.Contains(t, where, "coffee_brew_methods")
	assert.Contains(t, where, "cb.brew_method_id IN (?,?)")
	assert.NotContains(t, where, "@>")
	assert.Len(t, args, 2)
}

func TestBuildPredicateAllOfFlavorKeys(t *testing.T) {
	// Legacy flavor keys are all-of: JSONB containment of the full set, so
	// an item tagged only ["berry"] cannot match {berry, chocolate}.
	where, args := BuildPredicate(models.FilterSpec{
		FlavorKeys: []string{"berry", "chocolate"},
	}, models.DimNone)

	assert.Contains(t, where, "c.flavor_keys @> ?::jsonb")
	assert.Equal(t, []any{`["berry","chocolate"]`}, args)
}

func TestBuildPredicateRangeAndFlags(t *testing.T) {
	where, args := BuildPredicate(models.FilterSpec{
		MinPrice:    intPtr(100),
		InStockOnly: true,
		DecafOnly:   true,
	}, models.DimNone)

	assert.Contains(t, where, "c.price_per_100g >= ?")
	assert.NotContains(t, where, "<=")
	assert.Contains(t, where, "c.in_stock_count > 0")
	assert.Contains(t, where, "c.is_decaf")
	assert.NotContains(t, where, "c.is_limited")
	assert.Equal(t, []any{100}, args)
}

func TestBuildPredicateExclusionMasksOneDimension(t *testing.T) {
	spec := models.FilterSpec{
		RoastLevels: []string{"medium"},
		InStockOnly: true,
	}

	full, _ := BuildPredicate(spec, models.DimNone)
	assert.Contains(t, full, "c.roast_level IN (?)")
	assert.Contains(t, full, "c.in_stock_count > 0")

	// With roastLevels excluded the predicate is {inStockOnly} alone, which
	// is what makes that dimension's facet counts self-excluding.
	masked, args := BuildPredicate(spec, models.DimRoastLevels)
	assert.NotContains(t, masked, "roast_level")
	assert.Contains(t, masked, "c.in_stock_count > 0")
	assert.Empty(t, args)
}

func TestBuildPredicatePlaceholdersMatchArgs(t *testing.T) {
	spec := models.FilterSpec{
		Query:         "estate",
		RoastLevels:   []string{"light", "dark"},
		Processes:     []string{"washed"},
		Statuses:      []string{"active", "seasonal"},
		Species:       []string{"arabica"},
		FlavorKeys:    []string{"berry"},
		RoasterIDs:    []int64{1, 2},
		RegionIDs:     []int64{3},
		EstateIDs:     []int64{4},
		BrewMethodIDs: []int64{5, 6},
		MinPrice:      intPtr(50),
		MaxPrice:      intPtr(500),
		InStockOnly:   true,
	}

	where, args := BuildPredicate(spec, models.DimNone)
	assert.Equal(t, strings.Count(where, "?"), len(args))
}
