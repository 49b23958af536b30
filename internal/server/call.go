package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	calldomain "github.com/solostack/mentordesk/internal/call/domain"
)

func (s *Server) CreateCall(c *gin.Context) {
	var req calldomain.CreateCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.callSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListCalls(c *gin.Context) {
	var query struct {
		StudentID string `form:"student_id"`
		Upcoming  bool   `form:"upcoming"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.callSvc.List(c.Request.Context(), calldomain.ListCallRequest{
		StudentID: strings.TrimSpace(query.StudentID),
		Upcoming:  query.Upcoming,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateCall(c *gin.Context) {
	var req calldomain.UpdateCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.callSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteCall(c *gin.Context) {
	if err := s.callSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func isCallValidationError(err error) bool {
	switch err {
	case calldomain.ErrInvalidID,
		calldomain.ErrInvalidTitle,
		calldomain.ErrInvalidScheduledAt,
		calldomain.ErrInvalidDuration:
		return true
	default:
		return false
	}
}
