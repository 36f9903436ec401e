package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/holybond/holybond-v2/backend/internal/middleware"
	"github.com/holybond/holybond-v2/backend/internal/models"
	"github.com/holybond/holybond-v2/backend/internal/service"
	"github.com/holybond/holybond-v2/backend/internal/types"
)

// RelationshipHandler serves shortlists, interests, blocks and reports.
type RelationshipHandler struct {
	shortlistService *service.ShortlistService
	interestService  *service.InterestService
	blockService     *service.BlockService
	reportService    *service.ReportService
	authService      *service.AuthService
	interestLimiter  *middleware.RateLimiter
}

func NewRelationshipHandler(
	shortlistService *service.ShortlistService,
	interestService *service.InterestService,
	blockService *service.BlockService,
	reportService *service.ReportService,
	authService *service.AuthService,
	interestLimiter *middleware.RateLimiter,
) *RelationshipHandler {
	return &RelationshipHandler{
		shortlistService: shortlistService,
		interestService:  interestService,
		blockService:     blockService,
		reportService:    reportService,
		authService:      authService,
		interestLimiter:  interestLimiter,
	}
}

func (h *RelationshipHandler) RegisterRoutes(router *gin.RouterGroup) {
	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware(h.authService))
	{
		shortlist := protected.Group("/shortlist")
		{
			shortlist.GET("", h.ListShortlist)
			shortlist.POST("/:profileID", h.AddShortlist)
			shortlist.DELETE("/:profileID", h.RemoveShortlist)
		}

		interests := protected.Group("/interests")
		{
			if h.interestLimiter != nil {
				interests.POST("", h.interestLimiter.Middleware(), h.SendInterest)
			} else {
				interests.POST("", h.SendInterest)
			}
			interests.GET("/sent", h.ListSentInterests)
			interests.GET("/received", h.ListReceivedInterests)
			interests.PUT("/:id/status", h.SetInterestStatus)
		}

		blocks := protected.Group("/blocks")
		{
			blocks.GET("", h.ListBlocks)
			blocks.POST("/:profileID", h.Block)
			blocks.DELETE("/:profileID", h.Unblock)
		}

		protected.POST("/reports", h.CreateReport)
	}
}

func (h *RelationshipHandler) ListShortlist(c *gin.Context) {
	profiles, err := h.shortlistService.List(c.Request.Context(), middleware.GetClaims(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profiles": profiles})
}

func (h *RelationshipHandler) AddShortlist(c *gin.Context) {
	profileID, ok := pathProfileID(c)
	if !ok {
		return
	}
	if err := h.shortlistService.Add(c.Request.Context(), middleware.GetClaims(c), profileID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "shortlisted"})
}

func (h *RelationshipHandler) RemoveShortlist(c *gin.Context) {
	profileID, ok := pathProfileID(c)
	if !ok {
		return
	}
	if err := h.shortlistService.Remove(c.Request.Context(), middleware.GetClaims(c), profileID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "removed"})
}

func (h *RelationshipHandler) SendInterest(c *gin.Context) {
	var req types.SendInterestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	interest, err := h.interestService.Send(c.Request.Context(), middleware.GetClaims(c), req.ToProfileID, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, interest)
}

func (h *RelationshipHandler) ListSentInterests(c *gin.Context) {
	interests, err := h.interestService.ListSent(c.Request.Context(), middleware.GetClaims(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"interests": interests})
}

func (h *RelationshipHandler) ListReceivedInterests(c *gin.Context) {
	interests, err := h.interestService.ListReceived(c.Request.Context(), middleware.GetClaims(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"interests": interests})
}

func (h *RelationshipHandler) SetInterestStatus(c *gin.Context) {
	interestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid interest id"})
		return
	}

	var req types.SetInterestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	interest, err := h.interestService.SetStatus(c.Request.Context(), middleware.GetClaims(c), interestID, models.InterestStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, interest)
}

func (h *RelationshipHandler) ListBlocks(c *gin.Context) {
	blocks, err := h.blockService.List(c.Request.Context(), middleware.GetClaims(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocks": blocks})
}

func (h *RelationshipHandler) Block(c *gin.Context) {
	profileID, ok := pathProfileID(c)
	if !ok {
		return
	}
	if err := h.blockService.Block(c.Request.Context(), middleware.GetClaims(c), profileID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "blocked"})
}

func (h *RelationshipHandler) Unblock(c *gin.Context) {
	profileID, ok := pathProfileID(c)
	if !ok {
		return
	}
	if err := h.blockService.Unblock(c.Request.Context(), middleware.GetClaims(c), profileID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "unblocked"})
}

func (h *RelationshipHandler) CreateReport(c *gin.Context) {
	var req types.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	report, err := h.reportService.Create(c.Request.Context(), middleware.GetClaims(c), req.ReportedProfileID, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

func pathProfileID(c *gin.Context) (uuid.UUID, bool) {
	profileID, err := uuid.Parse(c.Param("profileID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile id"})
		return uuid.Nil, false
	}
	return profileID, true
}
