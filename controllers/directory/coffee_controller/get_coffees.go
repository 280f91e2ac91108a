package coffee_controller

import (
	"log"
	"net/http"

	"github.com/3lokai/icb-directory-backend/models"
	"github.com/3lokai/icb-directory-backend/services"
	"github.com/gin-gonic/gin"
)

// GetCoffees godoc
// @Summary List directory coffees
// @Description Paginated coffee listing with text search, categorical, relational, range and flag filters.
// @Tags Directory - Coffees
// @Produce json
// @Param q query string false "Name search"
// @Param ids query string false "Explicit coffee ID list (comma-separated, replaces q matching)"
// @Param roastLevels query string false "Roast levels (comma-separated)"
// @Param processes query string false "Processing methods (comma-separated)"
// @Param status query string false "Statuses (comma-separated)"
// @Param species query string false "Bean species (comma-separated)"
// @Param flavor_keys query string false "Legacy flavor keys, all must match (comma-separated)"
// @Param canon_flavor_slugs query string false "Canonical flavor slugs (comma-separated)"
// @Param roaster_ids query string false "Roaster IDs (comma-separated)"
// @Param roaster_slugs query string false "Roaster slugs (comma-separated)"
// @Param region_ids query string false "Region IDs (comma-separated)"
// @Param region_slugs query string false "Region slugs (comma-separated)"
// @Param estate_ids query string false "Estate IDs (comma-separated)"
// @Param estate_keys query string false "Estate keys (comma-separated)"
// @Param brew_method_ids query string false "Brew method IDs (comma-separated)"
// @Param minPrice query int false "Minimum normalized price"
// @Param maxPrice query int false "Maximum normalized price"
// @Param inStockOnly query string false "1 = only coffees with stock"
// @Param decafOnly query string false "1 = only decaf"
// @Param limitedOnly query string false "1 = only limited releases"
// @Param hasSensoryOnly query string false "1 = only coffees with sensory data"
// @Param has250gOnly query string false "1 = only coffees with a 250g pack"
// @Param worksWithMilk query string false "1 = only milk-friendly coffees"
// @Param page query int false "Page number" default(1)
// @Param sort query string false "Sort key" Enums(relevance, price_asc, price_desc, newest, best_value, rating_desc, name_asc)
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /directory/coffees [get]
func GetCoffees(c *gin.Context) {
	ctx := c.Request.Context()
	spec := models.ParseFilterSpec(c.Request.URL.Query())

	resolved, err := services.ResolveFilterSpec(ctx, spec)
	if err != nil {
		log.Printf("ERROR resolving filter identifiers: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch coffees"))
		return
	}

	whereClause, args := BuildPredicate(resolved, models.DimNone)

	items, total, err := fetchCoffees(ctx, whereClause, args, resolved.Page, resolved.Sort)
	if err != nil {
		log.Printf("ERROR in fetchCoffees: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch coffees"))
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(
		c,
		"Coffees fetched successfully",
		items,
		&models.Pagination{
			Page:       resolved.Page,
			Limit:      models.PageSize,
			Total:      total,
			TotalPages: totalPagesFor(total, models.PageSize),
		},
	))
}
