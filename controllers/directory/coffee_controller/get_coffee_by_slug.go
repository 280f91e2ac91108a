package coffee_controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/3lokai/icb-directory-backend/config"
	"github.com/3lokai/icb-directory-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetCoffeeBySlug godoc
// @Summary Get a single coffee
// @Description Full wide-relation row for one coffee, addressed by slug.
// @Tags Directory - Coffees
// @Produce json
// @Param slug path string true "Coffee slug"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /directory/coffees/{slug} [get]
func GetCoffeeBySlug(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	slug := c.Param("slug")

	var coffee models.CatalogCoffee
	err := config.DirectoryGorm.
		WithContext(ctx).
		Where("slug = ?", slug).
		First(&coffee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Coffee not found"))
		return
	}
	if err != nil {
		log.Printf("ERROR fetching coffee %q: %v", slug, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch coffee"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Coffee fetched successfully", coffee))
}
