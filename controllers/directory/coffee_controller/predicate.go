package coffee_controller

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/3lokai/icb-directory-backend/models"
)

// BuildPredicate translates a resolved FilterSpec into a WHERE clause over
// the wide catalog relation (aliased c), using gorm-style ? placeholders.
// Passing a dimension masks that dimension's constraint entirely, which is
// how facet counts answer "what if this filter weren't applied".
//
// The spec must already be resolved: only ID/key fields are consulted, slug
// fields are ignored.
func BuildPredicate(f models.FilterSpec, exclude models.Dimension) (string, []any) {
	f = f.Without(exclude)

	conditions := []string{}
	args := []any{}

	// The name-match candidate list replaces the naive substring match.
	if len(f.IDFilter) > 0 {
		conditions = append(conditions, fmt.Sprintf("c.id IN (%s)", placeholders(len(f.IDFilter))))
		args = appendIDs(args, f.IDFilter)
	} else if f.Query != "" {
		conditions = append(conditions, "c.name ILIKE ?")
		args = append(args, "%"+f.Query+"%")
	}

	if len(f.RoastLevels) > 0 {
		conditions = append(conditions, fmt.Sprintf("c.roast_level IN (%s)", placeholders(len(f.RoastLevels))))
		args = appendStrings(args, f.RoastLevels)
	}
	if len(f.Processes) > 0 {
		conditions = append(conditions, fmt.Sprintf("c.process IN (%s)", placeholders(len(f.Processes))))
		args = appendStrings(args, f.Processes)
	}
	if len(f.Statuses) > 0 {
		conditions = append(conditions, fmt.Sprintf("c.status IN (%s)", placeholders(len(f.Statuses))))
		args = appendStrings(args, f.Statuses)
	}
	if len(f.Species) > 0 {
		conditions = append(conditions, fmt.Sprintf("c.species IN (%s)", placeholders(len(f.Species))))
		args = appendStrings(args, f.Species)
	}

	if len(f.RoasterIDs) > 0 {
		conditions = append(conditions, fmt.Sprintf("c.roaster_id IN (%s)", placeholders(len(f.RoasterIDs))))
		args = appendIDs(args, f.RoasterIDs)
	}

	// Any-of over the joined dimensions: non-empty intersection with the
	// filter's value set.
	if len(f.RegionIDs) > 0 {
		cond := fmt.Sprintf(
			`EXISTS (
				SELECT 1 FROM coffee_regions cr
				WHERE cr.coffee_id = c.id AND cr.region_id IN (%s)
			)`,
			placeholders(len(f.RegionIDs)),
		)
		conditions = append(conditions, cond)
		args = appendIDs(args, f.RegionIDs)
	}
	if len(f.EstateIDs) > 0 {
		cond := fmt.Sprintf(
			`EXISTS (
				SELECT 1 FROM coffee_estates ce
				WHERE ce.coffee_id = c.id AND ce.estate_id IN (%s)
			)`,
			placeholders(len(f.EstateIDs)),
		)
		conditions = append(conditions, cond)
		args = appendIDs(args, f.EstateIDs)
	}
	if len(f.BrewMethodIDs) > 0 {
		cond := fmt.Sprintf(
			`EXISTS (
				SELECT 1 FROM coffee_brew_methods cb
				WHERE cb.coffee_id = c.id AND cb.brew_method_id IN (%s)
			)`,
			placeholders(len(f.BrewMethodIDs)),
		)
		conditions = append(conditions, cond)
		args = appendIDs(args, f.BrewMethodIDs)
	}

	// Legacy flavor keys are all-of: the coffee's tag array must contain
	// every selected key (JSONB containment on the denormalized column).
	if len(f.FlavorKeys) > 0 {
		keysJSON, _ := json.Marshal(f.FlavorKeys)
		conditions = append(conditions, "c.flavor_keys @> ?::jsonb")
		args = append(args, string(keysJSON))
	}

	if f.MinPrice != nil {
		conditions = append(conditions, "c.price_per_100g >= ?")
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		conditions = append(conditions, "c.price_per_100g <= ?")
		args = append(args, *f.MaxPrice)
	}

	if f.InStockOnly {
		conditions = append(conditions, "c.in_stock_count > 0")
	}
	if f.Has250gOnly {
		conditions = append(conditions, "c.has_250g")
	}
	if f.LimitedOnly {
		conditions = append(conditions, "c.is_limited")
	}
	if f.DecafOnly {
		conditions = append(conditions, "c.is_decaf")
	}
	if f.HasSensoryOnly {
		conditions = append(conditions, "c.has_sensory")
	}
	if f.WorksWithMilk {
		conditions = append(conditions, "c.works_with_milk")
	}

	if len(conditions) == 0 {
		// empty spec matches the whole catalog
		return "TRUE", args
	}
	return strings.Join(conditions, " AND "), args
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func appendStrings(args []any, values []string) []any {
	for _, v := range values {
		args = append(args, v)
	}
	return args
}

func appendIDs(args []any, ids []int64) []any {
	for _, id := range ids {
		args = append(args, id)
	}
	return args
}
