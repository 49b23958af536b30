package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	notedomain "github.com/solostack/mentordesk/internal/note/domain"
)

func (s *Server) CreateNote(c *gin.Context) {
	var req notedomain.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.noteSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListNotes(c *gin.Context) {
	resp, err := s.noteSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetNoteByID(c *gin.Context) {
	resp, err := s.noteSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateNote(c *gin.Context) {
	var req notedomain.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.noteSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteNote(c *gin.Context) {
	if err := s.noteSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func isNoteValidationError(err error) bool {
	switch err {
	case notedomain.ErrInvalidID,
		notedomain.ErrInvalidTitle:
		return true
	default:
		return false
	}
}
