package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	communitydomain "github.com/solostack/mentordesk/internal/community/domain"
)

type createAnnualMemberRequest struct {
	Name       string `json:"name"`
	AmountPaid int64  `json:"amount_paid"`
	Source     string `json:"source"`
	JoinedAt   string `json:"joined_at"`
}

func (s *Server) CreateAnnualMember(c *gin.Context) {
	var req createAnnualMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.communitySvc.Create(c.Request.Context(), communitydomain.CreateAnnualMemberRequest{
		Name:       strings.TrimSpace(req.Name),
		AmountPaid: req.AmountPaid,
		Source:     strings.TrimSpace(req.Source),
		JoinedAt:   strings.TrimSpace(req.JoinedAt),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListAnnualMembers(c *gin.Context) {
	resp, err := s.communitySvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteAnnualMember(c *gin.Context) {
	if err := s.communitySvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func isCommunityValidationError(err error) bool {
	switch err {
	case communitydomain.ErrInvalidID,
		communitydomain.ErrInvalidName,
		communitydomain.ErrInvalidAmount,
		communitydomain.ErrInvalidDate:
		return true
	default:
		return false
	}
}
