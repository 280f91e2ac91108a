package coffee_controller

import (
	"context"
	"fmt"

	"github.com/3lokai/icb-directory-backend/config"
	"github.com/3lokai/icb-directory-backend/models"
)

// orderClause maps a sort key onto the wide relation's columns. Price sorts
// use the precomputed normalized price with NULLs last; "newest" uses the
// serial ID as a stable recency proxy. Ties beyond these keys fall back to
// the store's row order.
func orderClause(sort models.SortKey) string {
	switch sort {
	case models.SortPriceAsc:
		return "c.price_per_100g ASC NULLS LAST"
	case models.SortPriceDesc:
		return "c.price_per_100g DESC NULLS LAST"
	case models.SortNewest:
		return "c.id DESC"
	case models.SortBestValue:
		return "c.price_per_100g ASC NULLS LAST, c.rating DESC NULLS LAST"
	case models.SortRatingDesc:
		return "c.rating DESC NULLS LAST"
	default:
		// relevance and name_asc
		return "c.name ASC"
	}
}

func totalPagesFor(total, limit int) int {
	if total == 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// fetchCoffees runs the count/data query pair for one page of the directory.
func fetchCoffees(
	ctx context.Context,
	whereClause string,
	args []any,
	page int,
	sort models.SortKey,
) ([]models.CoffeeListItem, int, error) {
	offset := (page - 1) * models.PageSize

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM catalog_coffees c
		WHERE %s
	`, whereClause)

	var totalCount int64
	if err := config.DirectoryGorm.
		WithContext(ctx).
		Raw(countQuery, args...).
		Scan(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	dataQuery := fmt.Sprintf(`
		SELECT
			c.id,
			c.slug,
			c.name,
			c.roaster_name,
			c.roaster_slug,
			c.roast_level,
			c.status,
			c.image_url,
			c.price_per_100g,
			c.rating,
			(c.in_stock_count > 0) AS in_stock
		FROM catalog_coffees c
		WHERE %s
		ORDER BY %s
		LIMIT ? OFFSET ?
	`, whereClause, orderClause(sort))

	dataArgs := append(append([]any{}, args...), models.PageSize, offset)

	items := make([]models.CoffeeListItem, 0)
	if err := config.DirectoryGorm.
		WithContext(ctx).
		Raw(dataQuery, dataArgs...).
		Scan(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, int(totalCount), nil
}
