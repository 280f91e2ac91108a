package filter_controller

import (
	"log"
	"net/http"

	"github.com/3lokai/icb-directory-backend/models"
	"github.com/3lokai/icb-directory-backend/services"
	"github.com/gin-gonic/gin"
)

// GetFilterMeta godoc
// @Summary Get filter sidebar metadata
// @Description Per-dimension facet counts for the current filters, each dimension computed with its own filter excluded, plus matching coffee and roaster totals. Accepts the same query parameters as the coffee listing.
// @Tags Directory - Filters
// @Produce json
// @Success 200 {object} models.ApiResponse{data=models.FilterMeta}
// @Failure 500 {object} models.ApiResponse
// @Router /directory/filters/meta [get]
func GetFilterMeta(c *gin.Context) {
	ctx := c.Request.Context()
	spec := models.ParseFilterSpec(c.Request.URL.Query())

	resolved, err := services.ResolveFilterSpec(ctx, spec)
	if err != nil {
		log.Printf("ERROR resolving filter identifiers: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch filter metadata"))
		return
	}

	meta, err := buildFilterMeta(ctx, pgxQuerier{}, resolved)
	if err != nil {
		log.Printf("ERROR computing facets: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch filter metadata"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Filter metadata fetched", meta))
}
