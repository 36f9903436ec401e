package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/holybond/holybond-v2/backend/internal/middleware"
	"github.com/holybond/holybond-v2/backend/internal/models"
	"github.com/holybond/holybond-v2/backend/internal/service"
	"github.com/holybond/holybond-v2/backend/internal/types"
	"gorm.io/gorm"
)

// AdminHandler serves the moderation surface: the approval queue, user and
// profile listings, report review and the dashboard stats.
type AdminHandler struct {
	db             *gorm.DB
	profileService *service.ProfileService
	reportService  *service.ReportService
	authService    *service.AuthService
}

func NewAdminHandler(db *gorm.DB, profileService *service.ProfileService, reportService *service.ReportService, authService *service.AuthService) *AdminHandler {
	return &AdminHandler{
		db:             db,
		profileService: profileService,
		reportService:  reportService,
		authService:    authService,
	}
}

func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(h.authService), middleware.RequireAdmin())
	{
		admin.GET("/stats", h.GetStats)
		admin.GET("/profiles", h.ListProfiles)
		admin.GET("/profiles/pending", h.ListPendingProfiles)
		admin.PUT("/profiles/:id", h.UpdateProfile)
		admin.PUT("/profiles/:id/status", h.SetProfileStatus)
		admin.GET("/users", h.ListUsers)
		admin.GET("/users/:id", h.GetUser)
		admin.GET("/reports", h.ListReports)
		admin.PUT("/reports/:id/review", h.ReviewReport)
	}
}

// AdminStats summarizes the moderation workload.
type AdminStats struct {
	TotalAccounts    int64 `json:"total_accounts"`
	TotalProfiles    int64 `json:"total_profiles"`
	PendingProfiles  int64 `json:"pending_profiles"`
	ApprovedProfiles int64 `json:"approved_profiles"`
	RejectedProfiles int64 `json:"rejected_profiles"`
	OpenReports      int64 `json:"open_reports"`
}

func (h *AdminHandler) GetStats(c *gin.Context) {
	var stats AdminStats
	ctx := c.Request.Context()

	countQueries := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&stats.TotalAccounts, h.db.WithContext(ctx).Model(&models.Account{})},
		{&stats.TotalProfiles, h.db.WithContext(ctx).Model(&models.Profile{})},
		{&stats.PendingProfiles, h.db.WithContext(ctx).Model(&models.Profile{}).Where("status = ?", models.ProfilePending)},
		{&stats.ApprovedProfiles, h.db.WithContext(ctx).Model(&models.Profile{}).Where("status = ?", models.ProfileApproved)},
		{&stats.RejectedProfiles, h.db.WithContext(ctx).Model(&models.Profile{}).Where("status = ?", models.ProfileRejected)},
		{&stats.OpenReports, h.db.WithContext(ctx).Model(&models.Report{}).Where("reviewed_at IS NULL")},
	}
	for _, cq := range countQueries {
		if err := cq.query.Count(cq.dst).Error; err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) ListProfiles(c *gin.Context) {
	profiles, err := h.profileService.ListProfiles(c.Request.Context(), middleware.GetClaims(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profiles": profiles})
}

func (h *AdminHandler) ListPendingProfiles(c *gin.Context) {
	profiles, err := h.profileService.ListPendingProfiles(c.Request.Context(), middleware.GetClaims(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profiles": profiles})
}

func (h *AdminHandler) UpdateProfile(c *gin.Context) {
	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile id"})
		return
	}

	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	profile, err := h.profileService.AdminUpdateProfile(c.Request.Context(), middleware.GetClaims(c), profileID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *AdminHandler) SetProfileStatus(c *gin.Context) {
	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile id"})
		return
	}

	var req types.SetProfileStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	profile, err := h.profileService.SetProfileStatus(c.Request.Context(), middleware.GetClaims(c), profileID, models.ProfileStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	accounts, err := h.profileService.ListAccounts(c.Request.Context(), middleware.GetClaims(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": accountViews(accounts)})
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account id"})
		return
	}

	account, profile, err := h.profileService.GetAccountWithProfile(c.Request.Context(), middleware.GetClaims(c), accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": accountView(account), "profile": profile})
}

func (h *AdminHandler) ListReports(c *gin.Context) {
	reports, err := h.reportService.List(c.Request.Context(), middleware.GetClaims(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

func (h *AdminHandler) ReviewReport(c *gin.Context) {
	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return
	}

	report, err := h.reportService.MarkReviewed(c.Request.Context(), middleware.GetClaims(c), reportID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
