package models

// Dimension names one filterable axis of the directory. Facet counts for a
// dimension are always computed with that dimension's own filter removed.
type Dimension string

const (
	DimNone        Dimension = ""
	DimRoastLevels Dimension = "roastLevels"
	DimProcesses   Dimension = "processes"
	DimStatuses    Dimension = "statuses"
	DimRoasters    Dimension = "roasters"
	DimRegions     Dimension = "regions"
	DimEstates     Dimension = "estates"
	DimBrewMethods Dimension = "brewMethods"
	DimFlavorNotes Dimension = "flavorNotes"
)

// FacetDimensions are the axes the filter sidebar shows, in response order.
var FacetDimensions = []Dimension{
	DimRoastLevels,
	DimProcesses,
	DimRegions,
	DimEstates,
	DimBrewMethods,
	DimFlavorNotes,
	DimStatuses,
}

// Without returns a copy of the spec with the given dimension's constraint
// removed. This is what makes facet counts answer "what if I hadn't filtered
// on this axis yet".
func (f FilterSpec) Without(dim Dimension) FilterSpec {
	switch dim {
	case DimRoastLevels:
		f.RoastLevels = nil
	case DimProcesses:
		f.Processes = nil
	case DimStatuses:
		f.Statuses = nil
	case DimRoasters:
		f.RoasterIDs = nil
		f.RoasterSlugs = nil
	case DimRegions:
		f.RegionIDs = nil
		f.RegionSlugs = nil
	case DimEstates:
		f.EstateIDs = nil
		f.EstateKeys = nil
	case DimBrewMethods:
		f.BrewMethodIDs = nil
	case DimFlavorNotes:
		f.FlavorKeys = nil
		f.CanonFlavorSlugs = nil
	}
	return f
}

// Has reports whether the spec carries an active filter on the dimension.
// Dimensions without an active filter can reuse the base result set when
// computing facets, since excluding them changes nothing.
func (f FilterSpec) Has(dim Dimension) bool {
	switch dim {
	case DimRoastLevels:
		return len(f.RoastLevels) > 0
	case DimProcesses:
		return len(f.Processes) > 0
	case DimStatuses:
		return len(f.Statuses) > 0
	case DimRoasters:
		return len(f.RoasterIDs) > 0 || len(f.RoasterSlugs) > 0
	case DimRegions:
		return len(f.RegionIDs) > 0 || len(f.RegionSlugs) > 0
	case DimEstates:
		return len(f.EstateIDs) > 0 || len(f.EstateKeys) > 0
	case DimBrewMethods:
		return len(f.BrewMethodIDs) > 0
	case DimFlavorNotes:
		return len(f.FlavorKeys) > 0 || len(f.CanonFlavorSlugs) > 0
	}
	return false
}

// FacetBucket is one selectable value of a dimension plus the number of
// coffees that would match it under the current (self-excluded) filters.
// Zero-count buckets are never returned.
type FacetBucket struct {
	ID    int64  `json:"id,omitempty"`
	Value string `json:"value,omitempty"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// FilterMetaTotals are the headline counts for the active filter set.
type FilterMetaTotals struct {
	Coffees  int `json:"coffees"`
	Roasters int `json:"roasters"`
}

// FilterMeta is the full sidebar payload. Computed fresh per request, never
// cached.
type FilterMeta struct {
	Totals      FilterMetaTotals `json:"totals"`
	RoastLevels []FacetBucket    `json:"roastLevels"`
	Processes   []FacetBucket    `json:"processes"`
	Regions     []FacetBucket    `json:"regions"`
	Estates     []FacetBucket    `json:"estates"`
	BrewMethods []FacetBucket    `json:"brewMethods"`
	FlavorNotes []FacetBucket    `json:"flavorNotes"`
	Statuses    []FacetBucket    `json:"statuses"`
}

// EmptyFilterMeta is the short-circuit payload for an empty base result set.
func EmptyFilterMeta() FilterMeta {
	return FilterMeta{
		RoastLevels: []FacetBucket{},
		Processes:   []FacetBucket{},
		Regions:     []FacetBucket{},
		Estates:     []FacetBucket{},
		BrewMethods: []FacetBucket{},
		FlavorNotes: []FacetBucket{},
		Statuses:    []FacetBucket{},
	}
}

// ── enum value/label tables ──────────────────────────────────

var RoastLevelValues = map[string]string{
	"light":        "Light",
	"medium-light": "Medium Light",
	"medium":       "Medium",
	"medium-dark":  "Medium Dark",
	"dark":         "Dark",
}

var ProcessValues = map[string]string{
	"washed":         "Washed",
	"natural":        "Natural",
	"honey":          "Honey",
	"pulped-natural": "Pulped Natural",
	"anaerobic":      "Anaerobic",
	"monsooned":      "Monsooned",
}

var StatusValues = map[string]string{
	"active":       "Active",
	"seasonal":     "Seasonal",
	"coming-soon":  "Coming Soon",
	"discontinued": "Discontinued",
}

var SpeciesValues = map[string]string{
	"arabica":  "Arabica",
	"robusta":  "Robusta",
	"liberica": "Liberica",
	"blend":    "Blend",
}

// CategoricalLabel resolves a display label for an enum value, falling back
// to the raw value for anything the table doesn't know.
func CategoricalLabel(dim Dimension, value string) string {
	var table map[string]string
	switch dim {
	case DimRoastLevels:
		table = RoastLevelValues
	case DimProcesses:
		table = ProcessValues
	case DimStatuses:
		table = StatusValues
	}
	if label, ok := table[value]; ok {
		return label
	}
	return value
}
