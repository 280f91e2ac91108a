package lookup_cache

import (
	"sync"
	"time"
)

const TTL = 5 * time.Minute

// Family names one slug/key → internal-ID lookup table.
type Family string

const (
	Roasters Family = "roasters"
	Regions  Family = "regions"
	Estates  Family = "estates"
)

// ── slug → internal ID families ──────────────────────────────────────────────
// The lookup tables are small and hot (every request with slug filters hits
// them), so whole-family maps are cached with a short TTL.

type idEntry struct {
	byKey     map[string]int64
	fetchedAt time.Time
}

var (
	idMu    sync.RWMutex
	idCache = map[Family]*idEntry{}
)

func GetIDs(family Family) (map[string]int64, bool) {
	idMu.RLock()
	defer idMu.RUnlock()
	if e, ok := idCache[family]; ok && time.Since(e.fetchedAt) < TTL {
		return e.byKey, true
	}
	return nil, false
}

func SetIDs(family Family, byKey map[string]int64) {
	idMu.Lock()
	defer idMu.Unlock()
	idCache[family] = &idEntry{byKey: byKey, fetchedAt: time.Now()}
}

// ── canonical flavor slug → legacy key ───────────────────────────────────────

type flavorEntry struct {
	byCanonSlug map[string]string
	fetchedAt   time.Time
}

var (
	flavorMu    sync.RWMutex
	flavorCache *flavorEntry
)

func GetFlavorKeys() (map[string]string, bool) {
	flavorMu.RLock()
	defer flavorMu.RUnlock()
	if flavorCache != nil && time.Since(flavorCache.fetchedAt) < TTL {
		return flavorCache.byCanonSlug, true
	}
	return nil, false
}

func SetFlavorKeys(byCanonSlug map[string]string) {
	flavorMu.Lock()
	defer flavorMu.Unlock()
	flavorCache = &flavorEntry{byCanonSlug: byCanonSlug, fetchedAt: time.Now()}
}

// ── Invalidate everything (call when lookup tables change) ───────────────────

func Invalidate() {
	idMu.Lock()
	idCache = map[Family]*idEntry{}
	idMu.Unlock()

	flavorMu.Lock()
	flavorCache = nil
	flavorMu.Unlock()
}
