package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// 20 MB is generous for contract PDFs.
const maxUploadBytes = 20 << 20

func (s *Server) UploadFile(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		AbortWithError(c, newValidationError("file", "required", "file is required"))
		return
	}
	if header.Size > maxUploadBytes {
		AbortWithError(c, newValidationError("file", "too_large", "file exceeds 20MB"))
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.EqualFold(contentType, "application/pdf") &&
		!strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		AbortWithError(c, newValidationError("file", "invalid_type", "only PDF uploads are accepted"))
		return
	}

	f, err := header.Open()
	if err != nil {
		AbortWithError(c, err)
		return
	}
	defer f.Close()

	url, err := s.uploads.Upload(c.Request.Context(), header.Filename, contentType, f)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"url": url}})
}
