package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"garage-be/internal/models"
	"garage-be/internal/service"
)

type FavouriteController struct {
	favouriteService service.FavouriteService
	logger           *zap.SugaredLogger
}

func NewFavouriteController(favouriteService service.FavouriteService, logger *zap.SugaredLogger) *FavouriteController {
	return &FavouriteController{
		favouriteService: favouriteService,
		logger:           logger,
	}
}

// List handles GET /favourites
func (fc *FavouriteController) List(c *gin.Context) {
	favourites, err := fc.favouriteService.List(c.Request.Context())
	if err != nil {
		writeError(c, fc.logger, err)
		return
	}
	c.JSON(http.StatusOK, favourites)
}

// Get handles GET /favourites/:id
func (fc *FavouriteController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	favourite, err := fc.favouriteService.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, fc.logger, err)
		return
	}
	c.JSON(http.StatusOK, favourite)
}

// Create handles POST /favourites/:id/:car_id, where :id is the user
func (fc *FavouriteController) Create(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	carID, ok := pathID(c, "car_id")
	if !ok {
		return
	}

	favourite, err := fc.favouriteService.Create(c.Request.Context(), userID, carID)
	if err != nil {
		writeError(c, fc.logger, err)
		return
	}
	c.JSON(http.StatusCreated, favourite)
}

// Update handles PUT /favourites/:id
func (fc *FavouriteController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var patch models.FavouritePatch
	if !bindJSON(c, &patch) {
		return
	}

	favourite, err := fc.favouriteService.Update(c.Request.Context(), id, patch)
	if err != nil {
		writeError(c, fc.logger, err)
		return
	}
	c.JSON(http.StatusOK, favourite)
}

// Delete handles DELETE /favourites/:id
func (fc *FavouriteController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := fc.favouriteService.Delete(c.Request.Context(), id); err != nil {
		writeError(c, fc.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "favourite deleted"})
}
