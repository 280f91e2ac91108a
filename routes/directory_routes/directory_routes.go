package directory_routes

import (
	"github.com/3lokai/icb-directory-backend/controllers/directory/coffee_controller"
	"github.com/3lokai/icb-directory-backend/controllers/directory/filter_controller"
	"github.com/3lokai/icb-directory-backend/controllers/directory/roaster_controller"
	"github.com/gin-gonic/gin"
)

func SetupDirectoryRoutes(router *gin.RouterGroup) {
	// Public directory routes (no auth)
	directory := router.Group("/directory")

	coffees := directory.Group("/coffees")
	{
		coffees.GET("", coffee_controller.GetCoffees)
		coffees.GET("/:slug", coffee_controller.GetCoffeeBySlug)
	}

	directory.GET("/roasters", roaster_controller.GetRoasters)
	directory.GET("/filters/meta", filter_controller.GetFilterMeta)
}
