package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	"github.com/solostack/mentordesk/internal/billing"
	"github.com/solostack/mentordesk/internal/clock"
	"github.com/solostack/mentordesk/internal/config"
	"github.com/solostack/mentordesk/internal/student/domain"
	"github.com/solostack/mentordesk/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Clock   clock.Clock
	Billing *config.BillingConfigHolder
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	clock   clock.Clock
	billing *config.BillingConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("student.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		clock:   p.Clock,
		billing: p.Billing,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateStudentRequest) (domain.StudentView, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.StudentView{}, domain.ErrInvalidName
	}

	startDate, err := time.Parse("2006-01-02", strings.TrimSpace(req.StartDate))
	if err != nil {
		return domain.StudentView{}, domain.ErrInvalidStartDate
	}
	if req.AmountOwed < 0 {
		return domain.StudentView{}, domain.ErrInvalidAmount
	}

	now := s.clock.Now()
	student := domain.Student{
		ID:         s.genID.Generate(),
		Name:       name,
		Email:      strings.TrimSpace(req.Email),
		Occupation: strings.TrimSpace(req.Occupation),
		Status:     domain.StudentStatusActive,
		StartDate:  billing.DateOnly(startDate),
		PaidInFull: req.PaidInFull,
		AmountOwed: req.AmountOwed,
		Metadata:   datatypes.JSONMap{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Insert(ctx, s.db, &student); err != nil {
		return domain.StudentView{}, err
	}

	return s.view(student), nil
}

func (s *Service) List(ctx context.Context, req domain.ListStudentRequest) (domain.ListStudentResponse, error) {
	filter := domain.ListStudentFilter{Name: strings.TrimSpace(req.Name)}
	if status := strings.TrimSpace(req.Status); status != "" {
		st := domain.StudentStatus(status)
		if !st.Valid() {
			return domain.ListStudentResponse{}, domain.ErrInvalidStatus
		}
		filter.Status = st
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListStudentResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(student *domain.Student) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        student.ID.String(),
			CreatedAt: student.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	views := make([]domain.StudentView, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		views = append(views, s.view(*item))
	}

	resp := domain.ListStudentResponse{Students: views}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetStudentRequest) (domain.StudentView, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.StudentView{}, err
	}

	student, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.StudentView{}, err
	}
	if student == nil {
		return domain.StudentView{}, domain.ErrNotFound
	}

	return s.view(*student), nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateStudentRequest) (domain.StudentView, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.StudentView{}, err
	}

	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.StudentView{}, domain.ErrInvalidName
		}
		fields["name"] = name
	}
	if req.Email != nil {
		fields["email"] = strings.TrimSpace(*req.Email)
	}
	if req.Occupation != nil {
		fields["occupation"] = strings.TrimSpace(*req.Occupation)
	}
	if req.Status != nil {
		st := domain.StudentStatus(strings.TrimSpace(*req.Status))
		if !st.Valid() {
			return domain.StudentView{}, domain.ErrInvalidStatus
		}
		fields["status"] = st
	}
	if req.PaidInFull != nil {
		fields["paid_in_full"] = *req.PaidInFull
	}
	if req.AmountOwed != nil {
		if *req.AmountOwed < 0 {
			return domain.StudentView{}, domain.ErrInvalidAmount
		}
		fields["amount_owed"] = *req.AmountOwed
	}
	if req.ContractURL != nil {
		fields["contract_url"] = strings.TrimSpace(*req.ContractURL)
	}

	if len(fields) > 0 {
		fields["updated_at"] = s.clock.Now()
		if err := s.repo.Update(ctx, s.db, id, fields); err != nil {
			return domain.StudentView{}, err
		}
	}

	student, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.StudentView{}, err
	}
	if student == nil {
		return domain.StudentView{}, domain.ErrNotFound
	}
	return s.view(*student), nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := s.parseID(rawID)
	if err != nil {
		return err
	}

	student, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if student == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, id)
}

// RecordPayment appends an immutable payment. With ExtendCycle the student's
// cached next_billing_date moves to paid_at + cycle; the computed status
// reflects the new window either way because it derives from the payment
// history, not the cached column.
func (s *Service) RecordPayment(ctx context.Context, req domain.RecordPaymentRequest) (domain.RecordPaymentResponse, error) {
	id, err := s.parseID(req.StudentID)
	if err != nil {
		return domain.RecordPaymentResponse{}, err
	}
	if req.Amount <= 0 {
		return domain.RecordPaymentResponse{}, domain.ErrInvalidAmount
	}

	now := s.clock.Now()
	paidAt := now
	if raw := strings.TrimSpace(req.PaidAt); raw != "" {
		paidAt, err = parsePaidAt(raw)
		if err != nil {
			return domain.RecordPaymentResponse{}, err
		}
	}
	if billing.DateOnly(paidAt).After(billing.DateOnly(now)) {
		return domain.RecordPaymentResponse{}, domain.ErrPaymentInFuture
	}

	student, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.RecordPaymentResponse{}, err
	}
	if student == nil {
		return domain.RecordPaymentResponse{}, domain.ErrNotFound
	}

	payment := domain.Payment{
		ID:            s.genID.Generate(),
		StudentID:     id,
		Amount:        req.Amount,
		PaidAt:        paidAt,
		Note:          strings.TrimSpace(req.Note),
		ReceiptNumber: ulid.Make().String(),
		CreatedAt:     now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.InsertPayment(ctx, tx, &payment); err != nil {
			return err
		}

		fields := map[string]any{
			"amount_paid": student.AmountPaid + req.Amount,
			"updated_at":  now,
		}
		if req.ExtendCycle {
			fields["next_billing_date"] = billing.NextDueDate(paidAt, s.rules())
		}
		return s.repo.Update(ctx, tx, id, fields)
	})
	if err != nil {
		return domain.RecordPaymentResponse{}, err
	}

	updated, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.RecordPaymentResponse{}, err
	}
	if updated == nil {
		return domain.RecordPaymentResponse{}, domain.ErrNotFound
	}

	s.log.Info("payment recorded",
		zap.String("student_id", id.String()),
		zap.Int64("amount", req.Amount),
		zap.Bool("extend_cycle", req.ExtendCycle),
	)

	return domain.RecordPaymentResponse{
		Payment: payment,
		Student: s.view(*updated),
	}, nil
}

func (s *Service) ListPayments(ctx context.Context, rawID string) ([]domain.Payment, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListPayments(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	payments := make([]domain.Payment, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		payments = append(payments, *item)
	}
	return payments, nil
}

func (s *Service) StatusAsOf(ctx context.Context, rawID string, asOf time.Time) (billing.Status, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return billing.Status{}, err
	}

	student, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return billing.Status{}, err
	}
	if student == nil {
		return billing.Status{}, domain.ErrNotFound
	}

	return s.compute(*student, asOf), nil
}

func (s *Service) view(student domain.Student) domain.StudentView {
	return domain.StudentView{
		Student: student,
		Billing: s.compute(student, s.clock.Now()),
	}
}

func (s *Service) compute(student domain.Student, asOf time.Time) billing.Status {
	events := make([]billing.PaymentEvent, 0, len(student.Payments))
	for _, p := range student.Payments {
		events = append(events, billing.PaymentEvent{Amount: p.Amount, PaidAt: p.PaidAt})
	}
	return billing.Compute(billing.Input{
		StartDate:  student.StartDate,
		PaidInFull: student.PaidInFull,
		Payments:   events,
		AsOf:       asOf,
		Rules:      s.rules(),
	})
}

func (s *Service) rules() billing.Rules {
	if s.billing == nil {
		return billing.DefaultRules()
	}
	cfg := s.billing.Current()
	return billing.Rules{
		CycleDays:        cfg.CycleDays,
		UrgentWindowDays: cfg.UrgentWindowDays,
	}
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func parsePaidAt(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, domain.ErrInvalidPaidAt
}
