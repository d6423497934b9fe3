package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"garage-be/internal/models"
	"garage-be/internal/service"
)

type UserController struct {
	userService service.UserService
	logger      *zap.SugaredLogger
}

func NewUserController(userService service.UserService, logger *zap.SugaredLogger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

// List handles GET /users
func (uc *UserController) List(c *gin.Context) {
	users, err := uc.userService.List(c.Request.Context())
	if err != nil {
		writeError(c, uc.logger, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Get handles GET /users/:id
func (uc *UserController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := uc.userService.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, uc.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Create handles POST /users
func (uc *UserController) Create(c *gin.Context) {
	var req models.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := uc.userService.Create(c.Request.Context(), &req)
	if err != nil {
		writeError(c, uc.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Update handles PUT /users/:id
func (uc *UserController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var patch models.UserPatch
	if !bindJSON(c, &patch) {
		return
	}

	user, err := uc.userService.Update(c.Request.Context(), id, patch)
	if err != nil {
		writeError(c, uc.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /users/:id
func (uc *UserController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := uc.userService.Delete(c.Request.Context(), id); err != nil {
		writeError(c, uc.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "user deleted"})
}
