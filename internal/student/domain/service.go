package domain

import (
	"context"
	"errors"
	"time"

	"github.com/solostack/mentordesk/internal/billing"
	"github.com/solostack/mentordesk/pkg/db/pagination"
)

type CreateStudentRequest struct {
	Name       string
	Email      string
	Occupation string
	StartDate  string // "2006-01-02"
	PaidInFull bool
	AmountOwed int64
}

type UpdateStudentRequest struct {
	ID          string
	Name        *string
	Email       *string
	Occupation  *string
	Status      *string
	PaidInFull  *bool
	AmountOwed  *int64
	ContractURL *string
}

type ListStudentRequest struct {
	PageToken string
	PageSize  int
	Status    string
	Name      string
}

type GetStudentRequest struct {
	ID string
}

type RecordPaymentRequest struct {
	StudentID   string
	Amount      int64
	PaidAt      string // RFC3339 or "2006-01-02"; empty means now
	Note        string
	ExtendCycle bool
}

// StudentView pairs the stored record with its derived billing status so
// every consumer renders the same numbers.
type StudentView struct {
	Student
	Billing billing.Status `json:"billing"`
}

type ListStudentResponse struct {
	pagination.PageInfo
	Students []StudentView `json:"students"`
}

type RecordPaymentResponse struct {
	Payment Payment     `json:"payment"`
	Student StudentView `json:"student"`
}

type Service interface {
	Create(context.Context, CreateStudentRequest) (StudentView, error)
	List(context.Context, ListStudentRequest) (ListStudentResponse, error)
	GetByID(context.Context, GetStudentRequest) (StudentView, error)
	Update(context.Context, UpdateStudentRequest) (StudentView, error)
	Delete(ctx context.Context, id string) error
	RecordPayment(context.Context, RecordPaymentRequest) (RecordPaymentResponse, error)
	ListPayments(ctx context.Context, studentID string) ([]Payment, error)
	StatusAsOf(ctx context.Context, id string, asOf time.Time) (billing.Status, error)
}

var (
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidStartDate = errors.New("invalid_start_date")
	ErrInvalidStatus    = errors.New("invalid_status")
	ErrInvalidAmount    = errors.New("invalid_amount")
	ErrInvalidPaidAt    = errors.New("invalid_paid_at")
	ErrPaymentInFuture  = errors.New("payment_in_future")
	ErrNotFound         = errors.New("not_found")
)
