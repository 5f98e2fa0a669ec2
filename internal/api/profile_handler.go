package api

import (
	"net/http"

	"family-gifts/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves per-(user, family) preference records.
type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetProfile returns a member's profile; userId defaults to the caller.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	familyID, ok := queryID(c, "familyId", true)
	if !ok {
		return
	}
	targetID, ok := queryID(c, "userId", false)
	if !ok {
		return
	}

	target := userID
	if targetID != nil {
		target = *targetID
	}

	view, err := h.profileService.GetProfile(userID, *familyID, target)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	var req service.UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	view, err := h.profileService.UpsertProfile(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
