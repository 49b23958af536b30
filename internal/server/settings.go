package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	settingsdomain "github.com/solostack/mentordesk/internal/settings/domain"
)

func (s *Server) GetSettings(c *gin.Context) {
	resp, err := s.settingsSvc.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateSettingsRequest struct {
	MonthlyGoal           *int64 `json:"monthly_goal"`
	CommunityMonthlyCount *int   `json:"community_monthly_count"`
}

func (s *Server) UpdateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.settingsSvc.Update(c.Request.Context(), settingsdomain.UpdateSettingsRequest{
		MonthlyGoal:           req.MonthlyGoal,
		CommunityMonthlyCount: req.CommunityMonthlyCount,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
