package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"garage-be/internal/models"
	"garage-be/internal/service"
)

// ProfileController serves /users/:id/profile and the profile listing
type ProfileController struct {
	profileService service.ProfileService
	logger         *zap.SugaredLogger
}

func NewProfileController(profileService service.ProfileService, logger *zap.SugaredLogger) *ProfileController {
	return &ProfileController{
		profileService: profileService,
		logger:         logger,
	}
}

// List handles GET /users/profile
func (pc *ProfileController) List(c *gin.Context) {
	profiles, err := pc.profileService.List(c.Request.Context())
	if err != nil {
		writeError(c, pc.logger, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

func (pc *ProfileController) Get(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	profile, err := pc.profileService.Get(c.Request.Context(), userID)
	if err != nil {
		writeError(c, pc.logger, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (pc *ProfileController) Create(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.CreateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := pc.profileService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		writeError(c, pc.logger, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (pc *ProfileController) Update(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var patch models.ProfilePatch
	if !bindJSON(c, &patch) {
		return
	}

	profile, err := pc.profileService.Update(c.Request.Context(), userID, patch)
	if err != nil {
		writeError(c, pc.logger, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (pc *ProfileController) Delete(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := pc.profileService.Delete(c.Request.Context(), userID); err != nil {
		writeError(c, pc.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "User profile deleted"})
}
