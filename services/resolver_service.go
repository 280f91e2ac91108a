package services

import (
	"context"

	lookup_cache "github.com/3lokai/icb-directory-backend/cache"
	"github.com/3lokai/icb-directory-backend/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// DirectoryLookup loads the slug/key → internal-ID tables for the public
// identifier families. Implementations return whole-family maps; the tables
// are small and the maps are cached.
type DirectoryLookup interface {
	RoasterIDsBySlug(ctx context.Context) (map[string]int64, error)
	RegionIDsBySlug(ctx context.Context) (map[string]int64, error)
	EstateIDsByKey(ctx context.Context) (map[string]int64, error)
	FlavorKeysByCanonSlug(ctx context.Context) (map[string]string, error)
}

var directoryLookup DirectoryLookup

// InitDirectoryLookup wires the GORM-backed lookup used by the handlers.
func InitDirectoryLookup(db *gorm.DB) {
	directoryLookup = &gormDirectoryLookup{db: db}
}

// ResolveFilterSpec normalizes the spec's public slug/key identifiers into
// internal IDs so predicates only ever see IDs. Unresolvable values are
// dropped, not errors: a filter naming a nonexistent slug degrades to no
// constraint on that value. The four families resolve concurrently.
func ResolveFilterSpec(ctx context.Context, f models.FilterSpec) (models.FilterSpec, error) {
	return resolveWith(ctx, directoryLookup, f)
}

func resolveWith(ctx context.Context, lookup DirectoryLookup, f models.FilterSpec) (models.FilterSpec, error) {
	if len(f.RoasterSlugs) == 0 && len(f.RegionSlugs) == 0 &&
		len(f.EstateKeys) == 0 && len(f.CanonFlavorSlugs) == 0 {
		return f, nil
	}

	var (
		roasterIDs []int64
		regionIDs  []int64
		estateIDs  []int64
		flavorKeys []string
	)

	g, gctx := errgroup.WithContext(ctx)

	if len(f.RoasterSlugs) > 0 {
		g.Go(func() error {
			bySlug, err := cachedIDs(gctx, lookup_cache.Roasters, lookup.RoasterIDsBySlug)
			if err != nil {
				return err
			}
			roasterIDs = pickIDs(bySlug, f.RoasterSlugs)
			return nil
		})
	}
	if len(f.RegionSlugs) > 0 {
		g.Go(func() error {
			bySlug, err := cachedIDs(gctx, lookup_cache.Regions, lookup.RegionIDsBySlug)
			if err != nil {
				return err
			}
			regionIDs = pickIDs(bySlug, f.RegionSlugs)
			return nil
		})
	}
	if len(f.EstateKeys) > 0 {
		g.Go(func() error {
			byKey, err := cachedIDs(gctx, lookup_cache.Estates, lookup.EstateIDsByKey)
			if err != nil {
				return err
			}
			estateIDs = pickIDs(byKey, f.EstateKeys)
			return nil
		})
	}
	if len(f.CanonFlavorSlugs) > 0 {
		g.Go(func() error {
			bySlug, err := cachedFlavorKeys(gctx, lookup)
			if err != nil {
				return err
			}
			for _, slug := range f.CanonFlavorSlugs {
				if key, ok := bySlug[slug]; ok {
					flavorKeys = append(flavorKeys, key)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return models.FilterSpec{}, err
	}

	f.RoasterIDs = unionIDs(f.RoasterIDs, roasterIDs)
	f.RegionIDs = unionIDs(f.RegionIDs, regionIDs)
	f.EstateIDs = unionIDs(f.EstateIDs, estateIDs)
	f.FlavorKeys = unionStrings(f.FlavorKeys, flavorKeys)

	f.RoasterSlugs = nil
	f.RegionSlugs = nil
	f.EstateKeys = nil
	f.CanonFlavorSlugs = nil

	return f, nil
}

func cachedIDs(
	ctx context.Context,
	family lookup_cache.Family,
	load func(context.Context) (map[string]int64, error),
) (map[string]int64, error) {
	if byKey, ok := lookup_cache.GetIDs(family); ok {
		return byKey, nil
	}
	byKey, err := load(ctx)
	if err != nil {
		return nil, err
	}
	lookup_cache.SetIDs(family, byKey)
	return byKey, nil
}

func cachedFlavorKeys(ctx context.Context, lookup DirectoryLookup) (map[string]string, error) {
	if bySlug, ok := lookup_cache.GetFlavorKeys(); ok {
		return bySlug, nil
	}
	bySlug, err := lookup.FlavorKeysByCanonSlug(ctx)
	if err != nil {
		return nil, err
	}
	lookup_cache.SetFlavorKeys(bySlug)
	return bySlug, nil
}

func pickIDs(byKey map[string]int64, keys []string) []int64 {
	var ids []int64
	for _, key := range keys {
		if id, ok := byKey[key]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func unionIDs(a, b []int64) []int64 {
	if len(b) == 0 {
		return a
	}
	seen := map[int64]bool{}
	out := make([]int64, 0, len(a)+len(b))
	for _, id := range a {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range b {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func unionStrings(a, b []string) []string {
	if len(b) == 0 {
		return a
	}
	seen := map[string]bool{}
	out := make([]string, 0, len(a)+len(b))
	for _, v := range a {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	for _, v := range b {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// ── GORM-backed lookup ───────────────────────────────────────

type gormDirectoryLookup struct {
	db *gorm.DB
}

func (l *gormDirectoryLookup) RoasterIDsBySlug(ctx context.Context) (map[string]int64, error) {
	var rows []models.Roaster
	if err := l.db.WithContext(ctx).Select("id", "slug").Find(&rows).Error; err != nil {
		return nil, err
	}
	bySlug := make(map[string]int64, len(rows))
	for _, r := range rows {
		bySlug[r.Slug] = r.ID
	}
	return bySlug, nil
}

func (l *gormDirectoryLookup) RegionIDsBySlug(ctx context.Context) (map[string]int64, error) {
	var rows []models.Region
	if err := l.db.WithContext(ctx).Select("id", "slug").Find(&rows).Error; err != nil {
		return nil, err
	}
	bySlug := make(map[string]int64, len(rows))
	for _, r := range rows {
		bySlug[r.Slug] = r.ID
	}
	return bySlug, nil
}

func (l *gormDirectoryLookup) EstateIDsByKey(ctx context.Context) (map[string]int64, error) {
	var rows []models.Estate
	if err := l.db.WithContext(ctx).Select("id", "external_key").Find(&rows).Error; err != nil {
		return nil, err
	}
	byKey := make(map[string]int64, len(rows))
	for _, e := range rows {
		byKey[e.ExternalKey] = e.ID
	}
	return byKey, nil
}

func (l *gormDirectoryLookup) FlavorKeysByCanonSlug(ctx context.Context) (map[string]string, error) {
	var rows []models.FlavorNote
	if err := l.db.WithContext(ctx).Select("key", "canon_slug").Find(&rows).Error; err != nil {
		return nil, err
	}
	bySlug := make(map[string]string, len(rows))
	for _, n := range rows {
		bySlug[n.CanonSlug] = n.Key
	}
	return bySlug, nil
}
