// internal/handlers/msme_profile.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/karyadesa/karya-desa-backend/internal/services"
	"github.com/karyadesa/karya-desa-backend/internal/utils"
)

type MsmeProfileHandler struct {
	profileService *services.MsmeProfileService
}

func NewMsmeProfileHandler(profileService *services.MsmeProfileService) *MsmeProfileHandler {
	return &MsmeProfileHandler{profileService: profileService}
}

// GET /msme/profile
func (h *MsmeProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, profile)
}

// PUT /msme/profile
func (h *MsmeProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.UpdateMsmeProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, profile)
}
