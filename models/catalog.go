package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
)

// ═══════════════════════════════════════════════════════════
// Wide catalog relation (read-only denormalized view)
// ═══════════════════════════════════════════════════════════

// FlavorKeyList is the denormalized flavor tag array on the wide relation,
// stored as JSONB so the all-of predicate can use containment (@>).
type FlavorKeyList []string

func (l *FlavorKeyList) Scan(value interface{}) error {
	if value == nil {
		*l = make(FlavorKeyList, 0)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan FlavorKeyList")
	}
	return json.Unmarshal(bytes, l)
}

func (l FlavorKeyList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(l)
}

// CatalogCoffee is one row of the wide catalog relation: product, owning
// roaster, first display image, and precomputed aggregates in a single
// read-optimized row. The view is refreshed by an external process; this
// service never writes it outside the dev seeder.
type CatalogCoffee struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Slug string `json:"slug" gorm:"uniqueIndex;not null"`
	Name string `json:"name" gorm:"not null;index"`

	RoasterID   int64  `json:"roaster_id" gorm:"not null;index"`
	RoasterName string `json:"roaster_name" gorm:"not null"`
	RoasterSlug string `json:"roaster_slug" gorm:"not null"`

	RoastLevel string `json:"roast_level" gorm:"not null;index"`
	Process    string `json:"process" gorm:"not null;index"`
	Status     string `json:"status" gorm:"not null;index"`
	Species    string `json:"species" gorm:"not null"`

	IsDecaf       bool `json:"is_decaf" gorm:"not null;default:false"`
	IsLimited     bool `json:"is_limited" gorm:"not null;default:false"`
	WorksWithMilk bool `json:"works_with_milk" gorm:"not null;default:false"`
	Has250g       bool `json:"has_250g" gorm:"not null;default:false"`
	HasSensory    bool `json:"has_sensory" gorm:"not null;default:false"`

	InStockCount int            `json:"in_stock_count" gorm:"not null;default:0"`
	PricePer100g *float64       `json:"price_per_100g" gorm:"type:numeric(10,2)"`
	Rating       *float64       `json:"rating" gorm:"type:numeric(3,2)"`
	BestVariant  datatypes.JSON `json:"best_variant" gorm:"type:jsonb"`
	ImageURL     string         `json:"image_url"`
	FlavorKeys   FlavorKeyList  `json:"flavor_keys" gorm:"type:jsonb;not null;default:'[]'"`

	UpdatedAt time.Time `json:"updated_at"`
}

func (CatalogCoffee) TableName() string {
	return "catalog_coffees"
}

// CoffeeListItem is the thin row the listing endpoint returns.
type CoffeeListItem struct {
	ID           int64    `json:"id"`
	Slug         string   `json:"slug"`
	Name         string   `json:"name"`
	RoasterName  string   `json:"roaster_name"`
	RoasterSlug  string   `json:"roaster_slug"`
	RoastLevel   string   `json:"roast_level"`
	Status       string   `json:"status"`
	ImageURL     string   `json:"image_url"`
	PricePer100g *float64 `json:"price_per_100g"`
	Rating       *float64 `json:"rating"`
	InStock      bool     `json:"in_stock"`
}

// ═══════════════════════════════════════════════════════════
// Lookup entities (slug/key → internal ID families)
// ═══════════════════════════════════════════════════════════

type Roaster struct {
	ID     int64  `json:"id" gorm:"primaryKey"`
	Slug   string `json:"slug" gorm:"uniqueIndex;not null"`
	Name   string `json:"name" gorm:"not null"`
	City   string `json:"city"`
	State  string `json:"state"`
	Active bool   `json:"active" gorm:"not null;default:true"`
}

type Region struct {
	ID    int64  `json:"id" gorm:"primaryKey"`
	Slug  string `json:"slug" gorm:"uniqueIndex;not null"`
	Name  string `json:"name" gorm:"not null"`
	State string `json:"state"`
}

type Estate struct {
	ID          int64  `json:"id" gorm:"primaryKey"`
	ExternalKey string `json:"external_key" gorm:"column:external_key;uniqueIndex;not null"`
	Name        string `json:"name" gorm:"not null"`
	RegionID    *int64 `json:"region_id" gorm:"index"`
}

type BrewMethod struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Slug string `json:"slug" gorm:"uniqueIndex;not null"`
	Name string `json:"name" gorm:"not null"`
}

// FlavorNote maps a canonical flavor slug to the legacy key the join table
// and the wide relation's tag array still use.
type FlavorNote struct {
	Key       string `json:"key" gorm:"primaryKey"`
	CanonSlug string `json:"canon_slug" gorm:"uniqueIndex;not null"`
	Label     string `json:"label" gorm:"not null"`
}

// ═══════════════════════════════════════════════════════════
// Join tables (item_id, dimension_id) per relational dimension
// ═══════════════════════════════════════════════════════════

type CoffeeRegion struct {
	CoffeeID int64 `gorm:"primaryKey"`
	RegionID int64 `gorm:"primaryKey;index"`
}

func (CoffeeRegion) TableName() string { return "coffee_regions" }

type CoffeeEstate struct {
	CoffeeID int64 `gorm:"primaryKey"`
	EstateID int64 `gorm:"primaryKey;index"`
}

func (CoffeeEstate) TableName() string { return "coffee_estates" }

type CoffeeBrewMethod struct {
	CoffeeID     int64 `gorm:"primaryKey"`
	BrewMethodID int64 `gorm:"primaryKey;index"`
}

func (CoffeeBrewMethod) TableName() string { return "coffee_brew_methods" }

type CoffeeFlavorNote struct {
	CoffeeID  int64  `gorm:"primaryKey"`
	FlavorKey string `gorm:"primaryKey;index"`
}

func (CoffeeFlavorNote) TableName() string { return "coffee_flavor_notes" }
