package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/holybond/holybond-v2/backend/internal/middleware"
	"github.com/holybond/holybond-v2/backend/internal/service"
	"github.com/holybond/holybond-v2/backend/internal/types"
)

// ProfileHandler serves the caller's own profile, photo uploads, and the
// public profile surface (search and single-profile view).
type ProfileHandler struct {
	profileService *service.ProfileService
	photoService   *service.PhotoService
	authService    *service.AuthService
}

func NewProfileHandler(profileService *service.ProfileService, photoService *service.PhotoService, authService *service.AuthService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		photoService:   photoService,
		authService:    authService,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	profile.Use(middleware.AuthMiddleware(h.authService))
	{
		profile.GET("", h.GetMyProfile)
		profile.PUT("", h.UpdateMyProfile)
		profile.PUT("/photos", h.UpdatePhotos)
		profile.POST("/photos/upload", h.UploadPhoto)
	}

	// Search and single-profile view are public for APPROVED profiles;
	// a token widens visibility for admins and owners.
	public := router.Group("/profiles")
	public.Use(middleware.OptionalAuthMiddleware(h.authService))
	{
		public.GET("", h.Search)
		public.GET("/:id", h.GetProfile)
	}
}

func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	profile, err := h.profileService.GetMyProfile(c.Request.Context(), middleware.GetClaims(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	profile, err := h.profileService.UpdateMyProfile(c.Request.Context(), middleware.GetClaims(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdatePhotos replaces the ordered photo key list without touching any
// other field, so it never triggers re-review.
func (h *ProfileHandler) UpdatePhotos(c *gin.Context) {
	var req struct {
		Photos []string `json:"photos" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	profile, err := h.profileService.UpdateMyProfile(c.Request.Context(), middleware.GetClaims(c), &types.UpdateProfileRequest{
		Photos: &req.Photos,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UploadPhoto stores one photo and returns its key. The client attaches
// the key to the profile via the photos patch.
func (h *ProfileHandler) UploadPhoto(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, 6<<20))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return
	}

	contentType := c.ContentType()
	key, err := h.photoService.Upload(c.Request.Context(), middleware.GetClaims(c), data, contentType)
	if err != nil {
		respondError(c, err)
		return
	}

	url, err := h.photoService.URL(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"key": key, "url": url})
}

func (h *ProfileHandler) Search(c *gin.Context) {
	var filters types.SearchFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	profiles, err := h.profileService.Search(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profiles": profiles, "count": len(profiles)})
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile id"})
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), middleware.GetClaims(c), profileID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
