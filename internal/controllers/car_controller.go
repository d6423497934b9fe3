package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"garage-be/internal/models"
	"garage-be/internal/service"
)

type CarController struct {
	carService service.CarService
	logger     *zap.SugaredLogger
}

func NewCarController(carService service.CarService, logger *zap.SugaredLogger) *CarController {
	return &CarController{
		carService: carService,
		logger:     logger,
	}
}

// List handles GET /cars
func (cc *CarController) List(c *gin.Context) {
	cars, err := cc.carService.List(c.Request.Context())
	if err != nil {
		writeError(c, cc.logger, err)
		return
	}
	c.JSON(http.StatusOK, cars)
}

// Get handles GET /cars/:id
func (cc *CarController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	car, err := cc.carService.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, cc.logger, err)
		return
	}
	c.JSON(http.StatusOK, car)
}

// Create handles POST /cars
func (cc *CarController) Create(c *gin.Context) {
	var req models.CreateCarRequest
	if !bindJSON(c, &req) {
		return
	}

	car, err := cc.carService.Create(c.Request.Context(), &req)
	if err != nil {
		writeError(c, cc.logger, err)
		return
	}
	c.JSON(http.StatusCreated, car)
}

// CreateForUser handles POST /users/:id/cars
func (cc *CarController) CreateForUser(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.CreateCarRequest
	if !bindJSON(c, &req) {
		return
	}

	car, err := cc.carService.CreateForUser(c.Request.Context(), userID, &req)
	if err != nil {
		writeError(c, cc.logger, err)
		return
	}
	c.JSON(http.StatusCreated, car)
}

// Update handles PUT /cars/:id
func (cc *CarController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var patch models.CarPatch
	if !bindJSON(c, &patch) {
		return
	}

	car, err := cc.carService.Update(c.Request.Context(), id, patch)
	if err != nil {
		writeError(c, cc.logger, err)
		return
	}
	c.JSON(http.StatusOK, car)
}

// Delete handles DELETE /cars/:id
func (cc *CarController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := cc.carService.Delete(c.Request.Context(), id); err != nil {
		writeError(c, cc.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "car deleted"})
}
