package server

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	revenuedomain "github.com/solostack/mentordesk/internal/revenue/domain"
)

func (s *Server) GetRevenueBreakdown(c *gin.Context) {
	resp, err := s.revenueSvc.Breakdown(c.Request.Context(), strings.TrimSpace(c.Param("month")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type upsertMonthlyRevenueRequest struct {
	AgencyRevenue  int64 `json:"agency_revenue"`
	GumroadRevenue int64 `json:"gumroad_revenue"`
}

func (s *Server) UpsertMonthlyRevenue(c *gin.Context) {
	var req upsertMonthlyRevenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.revenueSvc.Upsert(c.Request.Context(), revenuedomain.UpsertMonthlyRevenueRequest{
		MonthKey:       strings.TrimSpace(c.Param("month")),
		AgencyRevenue:  req.AgencyRevenue,
		GumroadRevenue: req.GumroadRevenue,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetRevenueReport(c *gin.Context) {
	month := strings.TrimSpace(c.Param("month"))
	report, err := s.revenueSvc.Report(c.Request.Context(), month)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="revenue-`+month+`.pdf"`)
	c.Header("Content-Type", "application/pdf")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, report)
}
