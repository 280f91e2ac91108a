package main

import (
	"fmt"
	"log"

	"github.com/3lokai/icb-directory-backend/config"
	"github.com/3lokai/icb-directory-backend/models"
	"github.com/joho/godotenv"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// init loads environment variables
func init() {
	_ = godotenv.Load()
}

// main seeds a small development dataset: lookup tables, join tables, and
// catalog_coffees as a plain table standing in for the production
// materialized view.
// Usage: go run cmd/seed/main.go
func main() {
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("ICB Directory - Dev Data Seeder")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()

	config.InitDB()
	defer config.CloseDB()
	log.Println("✓ Connected to database")

	db := config.DirectoryGorm

	if err := db.AutoMigrate(
		&models.Roaster{},
		&models.Region{},
		&models.Estate{},
		&models.BrewMethod{},
		&models.FlavorNote{},
		&models.CatalogCoffee{},
		&models.CoffeeRegion{},
		&models.CoffeeEstate{},
		&models.CoffeeBrewMethod{},
		&models.CoffeeFlavorNote{},
	); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}
	log.Println("✓ Schema migrated")

	var existing int64
	db.Model(&models.CatalogCoffee{}).Count(&existing)
	if existing > 0 {
		fmt.Printf("Catalog already has %d coffees, nothing to do\n", existing)
		return
	}

	seedLookups(db)
	seedCoffees(db)

	fmt.Println()
	fmt.Println("✅ Seed complete")
	fmt.Println("Next: go run main.go, then GET /api/v1/directory/coffees")
}

func seedLookups(db *gorm.DB) {
	roasters := []models.Roaster{
		{ID: 1, Slug: "blue-tokai", Name: "Blue Tokai Coffee Roasters", City: "New Delhi", State: "Delhi", Active: true},
		{ID: 2, Slug: "kc-roasters", Name: "KC Roasters", City: "Mumbai", State: "Maharashtra", Active: true},
		{ID: 3, Slug: "naivo", Name: "Naivo Cafe & Roasters", City: "Bengaluru", State: "Karnataka", Active: true},
	}
	regions := []models.Region{
		{ID: 1, Slug: "chikmagalur", Name: "Chikmagalur", State: "Karnataka"},
		{ID: 2, Slug: "coorg", Name: "Coorg", State: "Karnataka"},
		{ID: 3, Slug: "araku-valley", Name: "Araku Valley", State: "Andhra Pradesh"},
	}
	regionID := func(id int64) *int64 { return &id }
	estates := []models.Estate{
		{ID: 1, ExternalKey: "attikan", Name: "Attikan Estate", RegionID: regionID(1)},
		{ID: 2, ExternalKey: "ratnagiri", Name: "Ratnagiri Estate", RegionID: regionID(1)},
		{ID: 3, ExternalKey: "mercara-gold", Name: "Mercara Gold Estate", RegionID: regionID(2)},
	}
	brewMethods := []models.BrewMethod{
		{ID: 1, Slug: "espresso", Name: "Espresso"},
		{ID: 2, Slug: "pour-over", Name: "Pour Over"},
		{ID: 3, Slug: "french-press", Name: "French Press"},
		{ID: 4, Slug: "moka-pot", Name: "Moka Pot"},
	}
	flavorNotes := []models.FlavorNote{
		{Key: "berry", CanonSlug: "berry", Label: "Berry"},
		{Key: "chocolate", CanonSlug: "dark-chocolate", Label: "Chocolate"},
		{Key: "citrus", CanonSlug: "citrus", Label: "Citrus"},
		{Key: "caramel", CanonSlug: "caramel", Label: "Caramel"},
		{Key: "floral", CanonSlug: "floral", Label: "Floral"},
	}

	mustCreate(db, &roasters)
	mustCreate(db, &regions)
	mustCreate(db, &estates)
	mustCreate(db, &brewMethods)
	mustCreate(db, &flavorNotes)
	log.Println("✓ Lookup tables seeded")
}

func seedCoffees(db *gorm.DB) {
	price := func(p float64) *float64 { return &p }
	coffees := []models.CatalogCoffee{
		{
			ID: 1, Slug: "attikan-estate-light", Name: "Attikan Estate",
			RoasterID: 1, RoasterName: "Blue Tokai Coffee Roasters", RoasterSlug: "blue-tokai",
			RoastLevel: "light", Process: "washed", Status: "active", Species: "arabica",
			WorksWithMilk: false, Has250g: true, HasSensory: true,
			InStockCount: 3, PricePer100g: price(180), Rating: price(4.4),
			BestVariant: datatypes.JSON([]byte(`{"size_g":250,"price":450}`)),
			ImageURL:    "https://cdn.example.com/coffees/attikan-light.jpg",
			FlavorKeys:  models.FlavorKeyList{"citrus", "floral"},
		},
		{
			ID: 2, Slug: "monsoon-malabar-dark", Name: "Monsooned Malabar AA",
			RoasterID: 2, RoasterName: "KC Roasters", RoasterSlug: "kc-roasters",
			RoastLevel: "dark", Process: "monsooned", Status: "active", Species: "arabica",
			WorksWithMilk: true, Has250g: true,
			InStockCount: 5, PricePer100g: price(140), Rating: price(4.1),
			BestVariant: datatypes.JSON([]byte(`{"size_g":500,"price":700}`)),
			ImageURL:    "https://cdn.example.com/coffees/monsoon-malabar.jpg",
			FlavorKeys:  models.FlavorKeyList{"chocolate", "caramel"},
		},
		{
			ID: 3, Slug: "ratnagiri-honey-medium", Name: "Ratnagiri Honey",
			RoasterID: 3, RoasterName: "Naivo Cafe & Roasters", RoasterSlug: "naivo",
			RoastLevel: "medium", Process: "honey", Status: "seasonal", Species: "arabica",
			IsLimited: true, Has250g: true, HasSensory: true,
			InStockCount: 0, PricePer100g: price(220), Rating: price(4.6),
			BestVariant: datatypes.JSON([]byte(`{"size_g":250,"price":550}`)),
			ImageURL:    "https://cdn.example.com/coffees/ratnagiri-honey.jpg",
			FlavorKeys:  models.FlavorKeyList{"berry", "chocolate", "caramel"},
		},
		{
			ID: 4, Slug: "araku-decaf-medium", Name: "Araku Valley Decaf",
			RoasterID: 1, RoasterName: "Blue Tokai Coffee Roasters", RoasterSlug: "blue-tokai",
			RoastLevel: "medium", Process: "natural", Status: "active", Species: "arabica",
			IsDecaf: true, WorksWithMilk: true,
			InStockCount: 2, PricePer100g: price(160),
			BestVariant: datatypes.JSON([]byte(`{"size_g":250,"price":400}`)),
			ImageURL:    "https://cdn.example.com/coffees/araku-decaf.jpg",
			FlavorKeys:  models.FlavorKeyList{"chocolate"},
		},
	}

	coffeeRegions := []models.CoffeeRegion{
		{CoffeeID: 1, RegionID: 1},
		{CoffeeID: 2, RegionID: 2},
		{CoffeeID: 3, RegionID: 1},
		{CoffeeID: 4, RegionID: 3},
	}
	coffeeEstates := []models.CoffeeEstate{
		{CoffeeID: 1, EstateID: 1},
		{CoffeeID: 2, EstateID: 3},
		{CoffeeID: 3, EstateID: 2},
	}
	coffeeBrewMethods := []models.CoffeeBrewMethod{
		{CoffeeID: 1, BrewMethodID: 2},
		{CoffeeID: 1, BrewMethodID: 3},
		{CoffeeID: 2, BrewMethodID: 1},
		{CoffeeID: 2, BrewMethodID: 4},
		{CoffeeID: 3, BrewMethodID: 2},
		{CoffeeID: 4, BrewMethodID: 1},
		{CoffeeID: 4, BrewMethodID: 3},
	}
	var coffeeFlavorNotes []models.CoffeeFlavorNote
	for _, coffee := range coffees {
		for _, key := range coffee.FlavorKeys {
			coffeeFlavorNotes = append(coffeeFlavorNotes, models.CoffeeFlavorNote{
				CoffeeID: coffee.ID, FlavorKey: key,
			})
		}
	}

	mustCreate(db, &coffees)
	mustCreate(db, &coffeeRegions)
	mustCreate(db, &coffeeEstates)
	mustCreate(db, &coffeeBrewMethods)
	mustCreate(db, &coffeeFlavorNotes)
	log.Printf("✓ Seeded %d coffees", len(coffees))
}

func mustCreate(db *gorm.DB, value interface{}) {
	if err := db.Create(value).Error; err != nil {
		log.Fatalf("Failed to seed %T: %v", value, err)
	}
}
