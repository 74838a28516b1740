// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/karyadesa/karya-desa-backend/internal/models"
	"github.com/karyadesa/karya-desa-backend/internal/services"
	"github.com/karyadesa/karya-desa-backend/internal/utils"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// GET /admin/dashboard
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.adminService.GetDashboard(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, dashboard)
}

// GET /admin/msmes
func (h *AdminHandler) GetMsmes(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	filter := services.AdminMsmeFilter{
		PaginationParams: params,
	}
	if status := c.Query("status"); status != "" {
		msmeStatus := models.MsmeStatus(status)
		filter.Status = &msmeStatus
	}

	profiles, total, err := h.adminService.ListMsmes(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	result := utils.CreatePaginationResult(profiles, total, params)
	utils.PaginatedResponse(c, result)
}

// PATCH /admin/msmes/:id
func (h *AdminHandler) UpdateMsmeStatus(c *gin.Context) {
	profileID, ok := parseID(c, msmeNotFound())
	if !ok {
		return
	}
	adminID, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.UpdateMsmeStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.adminService.UpdateMsmeStatus(c.Request.Context(), profileID, adminID, req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, profile)
}
