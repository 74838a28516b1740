// internal/handlers/community.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/karyadesa/karya-desa-backend/internal/i18n"
	"github.com/karyadesa/karya-desa-backend/internal/services"
	"github.com/karyadesa/karya-desa-backend/internal/utils"
)

type CommunityHandler struct {
	communityService *services.CommunityService
	storageService   *services.StorageService
}

func NewCommunityHandler(communityService *services.CommunityService, storageService *services.StorageService) *CommunityHandler {
	return &CommunityHandler{
		communityService: communityService,
		storageService:   storageService,
	}
}

// GET /community/home
func (h *CommunityHandler) GetHome(c *gin.Context) {
	home, err := h.communityService.GetHome(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, home)
}

// POST /community/news
func (h *CommunityHandler) CreateNews(c *gin.Context) {
	var req services.CreateNewsRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.communityService.CreateNewsItem(c.Request.Context(), &req, optionalUser(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, item)
}

// DELETE /community/news/:id
func (h *CommunityHandler) DeleteNews(c *gin.Context) {
	newsID, ok := parseID(c, newsNotFound())
	if !ok {
		return
	}

	role, _ := utils.GetUserRoleFromContext(c)
	if err := h.communityService.DeleteNewsItem(c.Request.Context(), newsID, role); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// POST /community/tourism
func (h *CommunityHandler) CreateTourismSpot(c *gin.Context) {
	var req services.CreateTourismRequest
	if !bindJSON(c, &req) {
		return
	}

	spot, err := h.communityService.CreateTourismSpot(c.Request.Context(), &req, optionalUser(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, spot)
}

// DELETE /community/tourism/:id
func (h *CommunityHandler) DeleteTourismSpot(c *gin.Context) {
	spotID, ok := parseID(c, tourismNotFound())
	if !ok {
		return
	}

	role, _ := utils.GetUserRoleFromContext(c)
	if err := h.communityService.DeleteTourismSpot(c.Request.Context(), spotID, role); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// POST /community/tourism/images
// Multipart form with a single "file" field.
func (h *CommunityHandler) UploadTourismImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	header, err := c.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileMissing), nil)
		return
	}

	options := services.TourismImageOptions()
	if header.Size > options.MaxSize {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileTooLarge), nil)
		return
	}

	file, err := header.Open()
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileMissing), nil)
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadFile(c.Request.Context(), header.Filename, file, options)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}
