package roaster_controller

import (
	"log"
	"net/http"
	"strconv"

	"github.com/3lokai/icb-directory-backend/config"
	"github.com/3lokai/icb-directory-backend/models"
	"github.com/gin-gonic/gin"
)

// RoasterListItem is a roaster row plus its live coffee count.
type RoasterListItem struct {
	models.Roaster
	CoffeeCount int `json:"coffee_count"`
}

// GetRoasters godoc
// @Summary List roasters
// @Description Paginated roaster directory with per-roaster coffee counts.
// @Tags Directory - Roasters
// @Produce json
// @Param q query string false "Name search"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(24)
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /directory/roasters [get]
func GetRoasters(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	page, limit := parsePagination(c)
	search := c.Query("q")

	query := config.DirectoryGorm.WithContext(ctx).Model(&models.Roaster{}).Where("active")
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("ERROR counting roasters: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch roasters"))
		return
	}

	roasters := make([]RoasterListItem, 0)
	err := query.
		Select(`roasters.*, (
			SELECT COUNT(*) FROM catalog_coffees c WHERE c.roaster_id = roasters.id
		) AS coffee_count`).
		Order("name ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Scan(&roasters).Error
	if err != nil {
		log.Printf("ERROR fetching roasters: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch roasters"))
		return
	}

	totalPages := 0
	if total > 0 {
		totalPages = (int(total) + limit - 1) / limit
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(
		c,
		"Roasters fetched successfully",
		roasters,
		&models.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      int(total),
			TotalPages: totalPages,
		},
	))
}

func parsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "24"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 24
	}

	return page, limit
}
