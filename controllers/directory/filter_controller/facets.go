package filter_controller

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/3lokai/icb-directory-backend/config"
	"github.com/3lokai/icb-directory-backend/controllers/directory/coffee_controller"
	"github.com/3lokai/icb-directory-backend/models"
	"golang.org/x/sync/errgroup"
)

// catalogQuerier is the query surface the facet engine runs on. Requests go
// through the pgx implementation below; tests substitute an in-memory fake,
// the same split the resolver uses with DirectoryLookup.
type catalogQuerier interface {
	// itemIDs resolves the predicate (with the given dimension masked) to
	// the matching coffee-ID set.
	itemIDs(ctx context.Context, spec models.FilterSpec, exclude models.Dimension) ([]int64, error)
	// categoricalTally groups a wide-relation enum column over the ID set,
	// returning value/count pairs (labels are filled in by the caller).
	categoricalTally(ctx context.Context, ids []int64, dim models.Dimension) ([]models.FacetBucket, error)
	// joinedTally aggregates (id, name, count) for a relational dimension's
	// join table restricted to the ID set.
	joinedTally(ctx context.Context, ids []int64, dim models.Dimension) ([]models.FacetBucket, error)
	// flavorTally buckets by legacy flavor key with labels from the
	// canonical flavor table.
	flavorTally(ctx context.Context, ids []int64) ([]models.FacetBucket, error)
	// roasterTotal counts distinct roasters across the ID set.
	roasterTotal(ctx context.Context, ids []int64) (int, error)
}

// buildFilterMeta computes the full sidebar payload for a resolved spec:
// the base ID set under every filter, then every dimension's self-excluded
// buckets concurrently. Any single failure cancels the siblings and fails
// the whole payload.
func buildFilterMeta(ctx context.Context, q catalogQuerier, spec models.FilterSpec) (models.FilterMeta, error) {
	// Base set: every filter applied, nothing excluded.
	baseIDs, err := q.itemIDs(ctx, spec, models.DimNone)
	if err != nil {
		return models.FilterMeta{}, err
	}

	// Required short-circuit: the per-dimension joins are invalid on an
	// empty ID set, so an empty base means an empty sidebar, not an error.
	if len(baseIDs) == 0 {
		return models.EmptyFilterMeta(), nil
	}

	meta := models.FilterMeta{
		Totals: models.FilterMetaTotals{Coffees: len(baseIDs)},
	}

	// Each dimension writes a distinct field, so the fan-out needs no lock.
	g, gctx := errgroup.WithContext(ctx)

	targets := map[models.Dimension]*[]models.FacetBucket{
		models.DimRoastLevels: &meta.RoastLevels,
		models.DimProcesses:   &meta.Processes,
		models.DimRegions:     &meta.Regions,
		models.DimEstates:     &meta.Estates,
		models.DimBrewMethods: &meta.BrewMethods,
		models.DimFlavorNotes: &meta.FlavorNotes,
		models.DimStatuses:    &meta.Statuses,
	}
	for _, dim := range models.FacetDimensions {
		dim := dim
		target := targets[dim]
		g.Go(func() error {
			buckets, err := facetForDimension(gctx, q, spec, dim, baseIDs)
			if err != nil {
				return err
			}
			*target = buckets
			return nil
		})
	}
	g.Go(func() error {
		total, err := q.roasterTotal(gctx, baseIDs)
		if err != nil {
			return err
		}
		meta.Totals.Roasters = total
		return nil
	})

	if err := g.Wait(); err != nil {
		return models.FilterMeta{}, err
	}
	return meta, nil
}

// facetForDimension computes one dimension's buckets with that dimension's
// own filter excluded and every other active filter applied. baseIDs is the
// fully-filtered ID set; it is reused directly when the dimension carries no
// active filter, since masking it changes nothing.
func facetForDimension(
	ctx context.Context,
	q catalogQuerier,
	spec models.FilterSpec,
	dim models.Dimension,
	baseIDs []int64,
) ([]models.FacetBucket, error) {
	ids := baseIDs
	if spec.Has(dim) {
		var err error
		ids, err = q.itemIDs(ctx, spec, dim)
		if err != nil {
			return nil, err
		}
	}
	if len(ids) == 0 {
		return []models.FacetBucket{}, nil
	}

	var (
		buckets []models.FacetBucket
		err     error
	)
	switch dim {
	case models.DimRoastLevels, models.DimProcesses, models.DimStatuses:
		buckets, err = q.categoricalTally(ctx, ids, dim)
		for i := range buckets {
			buckets[i].Label = models.CategoricalLabel(dim, buckets[i].Value)
		}
	case models.DimRegions, models.DimEstates, models.DimBrewMethods:
		buckets, err = q.joinedTally(ctx, ids, dim)
	case models.DimFlavorNotes:
		buckets, err = q.flavorTally(ctx, ids)
	default:
		return nil, fmt.Errorf("unknown facet dimension %q", dim)
	}
	if err != nil {
		return nil, err
	}

	sortBuckets(buckets)
	return buckets, nil
}

// sortBuckets orders count descending, label ascending. The label tie-break
// keeps sidebar ordering stable across requests.
func sortBuckets(buckets []models.FacetBucket) {
	sort.SliceStable(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Label < buckets[j].Label
	})
}

// ── pgx-backed querier ───────────────────────────────────────

// pgxQuerier runs the tallies on the shared pgx pool. The ID-set binds use
// native int64 arrays (= ANY($1)), which is why these queries bypass GORM.
type pgxQuerier struct{}

// rebind converts gorm-style ? placeholders (what BuildPredicate emits) to
// the $n form pgx expects. None of the predicate SQL contains a literal '?'.
func rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (pgxQuerier) itemIDs(ctx context.Context, spec models.FilterSpec, exclude models.Dimension) ([]int64, error) {
	whereClause, args := coffee_controller.BuildPredicate(spec, exclude)
	query := rebind("SELECT c.id FROM catalog_coffees c WHERE " + whereClause)

	rows, err := config.DirectoryDB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

var categoricalColumns = map[models.Dimension]string{
	models.DimRoastLevels: "roast_level",
	models.DimProcesses:   "process",
	models.DimStatuses:    "status",
}

// GROUP BY never emits zero counts, so no pruning is needed in the tallies.
func (pgxQuerier) categoricalTally(ctx context.Context, ids []int64, dim models.Dimension) ([]models.FacetBucket, error) {
	column, ok := categoricalColumns[dim]
	if !ok {
		return nil, fmt.Errorf("no categorical column for dimension %q", dim)
	}
	query := fmt.Sprintf(`
		SELECT c.%s, COUNT(*)::int
		FROM catalog_coffees c
		WHERE c.id = ANY($1)
		GROUP BY c.%s
	`, column, column)

	rows, err := config.DirectoryDB.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	buckets := make([]models.FacetBucket, 0)
	for rows.Next() {
		var b models.FacetBucket
		if err := rows.Scan(&b.Value, &b.Count); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

var joinedTallySQL = map[models.Dimension]string{
	models.DimRegions: `
		SELECT r.id, r.name, COUNT(DISTINCT cr.coffee_id)::int
		FROM coffee_regions cr
		JOIN regions r ON r.id = cr.region_id
		WHERE cr.coffee_id = ANY($1)
		GROUP BY r.id, r.name
	`,
	models.DimEstates: `
		SELECT e.id, e.name, COUNT(DISTINCT ce.coffee_id)::int
		FROM coffee_estates ce
		JOIN estates e ON e.id = ce.estate_id
		WHERE ce.coffee_id = ANY($1)
		GROUP BY e.id, e.name
	`,
	models.DimBrewMethods: `
		SELECT b.id, b.name, COUNT(DISTINCT cb.coffee_id)::int
		FROM coffee_brew_methods cb
		JOIN brew_methods b ON b.id = cb.brew_method_id
		WHERE cb.coffee_id = ANY($1)
		GROUP BY b.id, b.name
	`,
}

func (pgxQuerier) joinedTally(ctx context.Context, ids []int64, dim models.Dimension) ([]models.FacetBucket, error) {
	query, ok := joinedTallySQL[dim]
	if !ok {
		return nil, fmt.Errorf("no join table for dimension %q", dim)
	}

	rows, err := config.DirectoryDB.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	buckets := make([]models.FacetBucket, 0)
	for rows.Next() {
		var b models.FacetBucket
		if err := rows.Scan(&b.ID, &b.Label, &b.Count); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

// Labels come from the canonical flavor table, falling back to the raw key
// for unmapped legacy keys.
func (pgxQuerier) flavorTally(ctx context.Context, ids []int64) ([]models.FacetBucket, error) {
	query := `
		SELECT cf.flavor_key, COALESCE(n.label, cf.flavor_key), COUNT(DISTINCT cf.coffee_id)::int
		FROM coffee_flavor_notes cf
		LEFT JOIN flavor_notes n ON n.key = cf.flavor_key
		WHERE cf.coffee_id = ANY($1)
		GROUP BY cf.flavor_key, n.label
	`

	rows, err := config.DirectoryDB.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	buckets := make([]models.FacetBucket, 0)
	for rows.Next() {
		var b models.FacetBucket
		if err := rows.Scan(&b.Value, &b.Label, &b.Count); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

func (pgxQuerier) roasterTotal(ctx context.Context, ids []int64) (int, error) {
	var total int
	err := config.DirectoryDB.QueryRow(ctx, `
		SELECT COUNT(DISTINCT c.roaster_id)::int
		FROM catalog_coffees c
		WHERE c.id = ANY($1)
	`, ids).Scan(&total)
	return total, err
}
