package router

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"garage-be/internal/controllers"
	"garage-be/internal/middleware"
)

// Controllers groups every handler the router mounts
type Controllers struct {
	Users      *controllers.UserController
	Profiles   *controllers.ProfileController
	Cars       *controllers.CarController
	Favourites *controllers.FavouriteController
}

// NewRouter builds the gin engine with all routes registered
func NewRouter(ctrl Controllers, logger *zap.SugaredLogger) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(logger), middleware.Recovery(logger))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Not found",
		})
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	users := router.Group("/users")
	{
		users.GET("", ctrl.Users.List)
		users.POST("", ctrl.Users.Create)
		users.GET("/profile", ctrl.Profiles.List)
		users.GET("/:id", ctrl.Users.Get)
		users.PUT("/:id", ctrl.Users.Update)
		users.DELETE("/:id", ctrl.Users.Delete)

		users.GET("/:id/profile", ctrl.Profiles.Get)
		users.POST("/:id/profile", ctrl.Profiles.Create)
		users.PUT("/:id/profile", ctrl.Profiles.Update)
		users.DELETE("/:id/profile", ctrl.Profiles.Delete)

		users.POST("/:id/cars", ctrl.Cars.CreateForUser)
	}

	cars := router.Group("/cars")
	{
		cars.GET("", ctrl.Cars.List)
		cars.POST("", ctrl.Cars.Create)
		cars.GET("/:id", ctrl.Cars.Get)
		cars.PUT("/:id", ctrl.Cars.Update)
		cars.DELETE("/:id", ctrl.Cars.Delete)
	}

	favourites := router.Group("/favourites")
	{
		favourites.GET("", ctrl.Favourites.List)
		favourites.GET("/:id", ctrl.Favourites.Get)
		favourites.POST("/:id/:car_id", ctrl.Favourites.Create)
		favourites.PUT("/:id", ctrl.Favourites.Update)
		favourites.DELETE("/:id", ctrl.Favourites.Delete)
	}

	router.GET("/", sitemap(router))

	return router
}

// sitemap lists every registered endpoint as "METHOD path"
func sitemap(router *gin.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		routes := router.Routes()
		endpoints := make([]string, 0, len(routes))
		for _, r := range routes {
			endpoints = append(endpoints, r.Method+" "+r.Path)
		}
		sort.Strings(endpoints)

		c.JSON(http.StatusOK, gin.H{
			"endpoints": endpoints,
		})
	}
}
