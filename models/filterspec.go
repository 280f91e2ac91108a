package models

import (
	"net/url"
	"strconv"
	"strings"
)

// PageSize is the fixed page size for directory listings. Client-supplied
// limit values are ignored.
const PageSize = 24

type SortKey string

const (
	SortRelevance  SortKey = "relevance"
	SortPriceAsc   SortKey = "price_asc"
	SortPriceDesc  SortKey = "price_desc"
	SortNewest     SortKey = "newest"
	SortBestValue  SortKey = "best_value"
	SortRatingDesc SortKey = "rating_desc"
	SortNameAsc    SortKey = "name_asc"
)

var sortKeys = map[SortKey]bool{
	SortRelevance:  true,
	SortPriceAsc:   true,
	SortPriceDesc:  true,
	SortNewest:     true,
	SortBestValue:  true,
	SortRatingDesc: true,
	SortNameAsc:    true,
}

// FilterSpec is the canonical representation of a directory query. It
// round-trips losslessly through a flat query string, which is also the shape
// the address bar carries on the client.
//
// Slug/key fields (RoasterSlugs, RegionSlugs, EstateKeys, CanonFlavorSlugs)
// are the public identifier forms; the resolver folds them into the ID/key
// fields before any predicate is built.
type FilterSpec struct {
	Query    string
	IDFilter []int64 // name-match candidates; replaces the text match when set

	RoastLevels []string
	Processes   []string
	Statuses    []string
	Species     []string

	FlavorKeys       []string // legacy keys, all-of semantics
	CanonFlavorSlugs []string
	RoasterIDs       []int64
	RoasterSlugs     []string
	RegionIDs        []int64
	RegionSlugs      []string
	EstateIDs        []int64
	EstateKeys       []string
	BrewMethodIDs    []int64

	MinPrice *int
	MaxPrice *int

	InStockOnly    bool
	Has250gOnly    bool
	LimitedOnly    bool
	DecafOnly      bool
	HasSensoryOnly bool
	WorksWithMilk  bool

	Page int
	Sort SortKey
}

// ParseFilterSpec builds a FilterSpec from query parameters. Unknown enum
// values and malformed numbers are dropped silently; page is clamped to >= 1
// and the sort key falls back to relevance. An empty or malformed query maps
// to the empty spec (full catalog).
func ParseFilterSpec(values url.Values) FilterSpec {
	f := FilterSpec{
		Query:    strings.TrimSpace(values.Get("q")),
		IDFilter: parseIDList(values.Get("ids")),

		RoastLevels: parseEnumList(values.Get("roastLevels"), RoastLevelValues),
		Processes:   parseEnumList(values.Get("processes"), ProcessValues),
		Statuses:    parseEnumList(values.Get("status"), StatusValues),
		Species:     parseEnumList(values.Get("species"), SpeciesValues),

		FlavorKeys:       parseList(values.Get("flavor_keys")),
		CanonFlavorSlugs: parseList(values.Get("canon_flavor_slugs")),
		RoasterIDs:       parseIDList(values.Get("roaster_ids")),
		RoasterSlugs:     parseList(values.Get("roaster_slugs")),
		RegionIDs:        parseIDList(values.Get("region_ids")),
		RegionSlugs:      parseList(values.Get("region_slugs")),
		EstateIDs:        parseIDList(values.Get("estate_ids")),
		EstateKeys:       parseList(values.Get("estate_keys")),
		BrewMethodIDs:    parseIDList(values.Get("brew_method_ids")),

		MinPrice: parseOptionalInt(values.Get("minPrice")),
		MaxPrice: parseOptionalInt(values.Get("maxPrice")),

		InStockOnly:    values.Get("inStockOnly") == "1",
		Has250gOnly:    values.Get("has250gOnly") == "1",
		LimitedOnly:    values.Get("limitedOnly") == "1",
		DecafOnly:      values.Get("decafOnly") == "1",
		HasSensoryOnly: values.Get("hasSensoryOnly") == "1",
		WorksWithMilk:  values.Get("worksWithMilk") == "1",

		Page: 1,
		Sort: SortRelevance,
	}

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 1 {
		f.Page = page
	}
	if key := SortKey(values.Get("sort")); sortKeys[key] {
		f.Sort = key
	}

	return f
}

// ParseQueryString is ParseFilterSpec over a raw query string. Malformed
// input degrades to the empty spec rather than failing navigation.
func ParseQueryString(raw string) FilterSpec {
	values, err := url.ParseQuery(raw)
	if err != nil {
		values = url.Values{}
	}
	return ParseFilterSpec(values)
}

// Values serializes the spec back to query parameters. Defaults (page 1,
// relevance sort, unset flags) are omitted so the address bar stays clean.
func (f FilterSpec) Values() url.Values {
	values := url.Values{}

	setString(values, "q", f.Query)
	setString(values, "ids", joinIDs(f.IDFilter))

	setString(values, "roastLevels", strings.Join(f.RoastLevels, ","))
	setString(values, "processes", strings.Join(f.Processes, ","))
	setString(values, "status", strings.Join(f.Statuses, ","))
	setString(values, "species", strings.Join(f.Species, ","))

	setString(values, "flavor_keys", strings.Join(f.FlavorKeys, ","))
	setString(values, "canon_flavor_slugs", strings.Join(f.CanonFlavorSlugs, ","))
	setString(values, "roaster_ids", joinIDs(f.RoasterIDs))
	setString(values, "roaster_slugs", strings.Join(f.RoasterSlugs, ","))
	setString(values, "region_ids", joinIDs(f.RegionIDs))
	setString(values, "region_slugs", strings.Join(f.RegionSlugs, ","))
	setString(values, "estate_ids", joinIDs(f.EstateIDs))
	setString(values, "estate_keys", strings.Join(f.EstateKeys, ","))
	setString(values, "brew_method_ids", joinIDs(f.BrewMethodIDs))

	if f.MinPrice != nil {
		values.Set("minPrice", strconv.Itoa(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		values.Set("maxPrice", strconv.Itoa(*f.MaxPrice))
	}

	setFlag(values, "inStockOnly", f.InStockOnly)
	setFlag(values, "has250gOnly", f.Has250gOnly)
	setFlag(values, "limitedOnly", f.LimitedOnly)
	setFlag(values, "decafOnly", f.DecafOnly)
	setFlag(values, "hasSensoryOnly", f.HasSensoryOnly)
	setFlag(values, "worksWithMilk", f.WorksWithMilk)

	if f.Page > 1 {
		values.Set("page", strconv.Itoa(f.Page))
	}
	if f.Sort != "" && f.Sort != SortRelevance {
		values.Set("sort", string(f.Sort))
	}

	return values
}

// Encode is the canonical query-string form used for address-bar writes and
// last-written comparisons.
func (f FilterSpec) Encode() string {
	return f.Values().Encode()
}

// ── parsing helpers ──────────────────────────────────────────

func parseList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	seen := map[string]bool{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		out = append(out, part)
	}
	return out
}

func parseEnumList(raw string, allowed map[string]string) []string {
	var out []string
	for _, v := range parseList(raw) {
		if _, ok := allowed[v]; ok {
			out = append(out, v)
		}
	}
	return out
}

func parseIDList(raw string) []int64 {
	if raw == "" {
		return nil
	}
	var out []int64
	seen := map[int64]bool{}
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func parseOptionalInt(raw string) *int {
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

func joinIDs(ids []int64) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

func setString(values url.Values, key, value string) {
	if value != "" {
		values.Set(key, value)
	}
}

func setFlag(values url.Values, key string, on bool) {
	if on {
		values.Set(key, "1")
	}
}
