package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	studentdomain "github.com/solostack/mentordesk/internal/student/domain"
	"github.com/solostack/mentordesk/pkg/db/pagination"
)

type createStudentRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Occupation string `json:"occupation"`
	StartDate  string `json:"start_date"`
	PaidInFull bool   `json:"paid_in_full"`
	AmountOwed int64  `json:"amount_owed"`
}

func (s *Server) CreateStudent(c *gin.Context) {
	var req createStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.studentSvc.Create(c.Request.Context(), studentdomain.CreateStudentRequest{
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.TrimSpace(req.Email),
		Occupation: strings.TrimSpace(req.Occupation),
		StartDate:  strings.TrimSpace(req.StartDate),
		PaidInFull: req.PaidInFull,
		AmountOwed: req.AmountOwed,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListStudents(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Status string `form:"status"`
		Name   string `form:"name"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.studentSvc.List(c.Request.Context(), studentdomain.ListStudentRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		Status:    strings.TrimSpace(query.Status),
		Name:      strings.TrimSpace(query.Name),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetStudentByID(c *gin.Context) {
	resp, err := s.studentSvc.GetByID(c.Request.Context(), studentdomain.GetStudentRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateStudentRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Occupation  *string `json:"occupation"`
	Status      *string `json:"status"`
	PaidInFull  *bool   `json:"paid_in_full"`
	AmountOwed  *int64  `json:"amount_owed"`
	ContractURL *string `json:"contract_url"`
}

func (s *Server) UpdateStudent(c *gin.Context) {
	var req updateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.studentSvc.Update(c.Request.Context(), studentdomain.UpdateStudentRequest{
		ID:          strings.TrimSpace(c.Param("id")),
		Name:        req.Name,
		Email:       req.Email,
		Occupation:  req.Occupation,
		Status:      req.Status,
		PaidInFull:  req.PaidInFull,
		AmountOwed:  req.AmountOwed,
		ContractURL: req.ContractURL,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteStudent(c *gin.Context) {
	if err := s.studentSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type recordPaymentRequest struct {
	Amount      int64  `json:"amount"`
	PaidAt      string `json:"paid_at"`
	Note        string `json:"note"`
	ExtendCycle bool   `json:"extend_cycle"`
}

func (s *Server) RecordStudentPayment(c *gin.Context) {
	var req recordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.studentSvc.RecordPayment(c.Request.Context(), studentdomain.RecordPaymentRequest{
		StudentID:   strings.TrimSpace(c.Param("id")),
		Amount:      req.Amount,
		PaidAt:      strings.TrimSpace(req.PaidAt),
		Note:        req.Note,
		ExtendCycle: req.ExtendCycle,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListStudentPayments(c *gin.Context) {
	payments, err := s.studentSvc.ListPayments(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": payments})
}

func isStudentValidationError(err error) bool {
	switch err {
	case studentdomain.ErrInvalidID,
		studentdomain.ErrInvalidName,
		studentdomain.ErrInvalidStartDate,
		studentdomain.ErrInvalidStatus,
		studentdomain.ErrInvalidAmount,
		studentdomain.ErrInvalidPaidAt,
		studentdomain.ErrPaymentInFuture:
		return true
	default:
		return false
	}
}
