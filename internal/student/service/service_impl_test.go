package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/solostack/mentordesk/internal/clock"
	"github.com/solostack/mentordesk/internal/student/domain"
	"github.com/solostack/mentordesk/internal/student/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&domain.Student{}, &domain.Payment{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestService(t *testing.T, now time.Time) (domain.Service, *clock.FakeClock) {
	t.Helper()

	node, err := snowflake.NewNode(2)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}
	fc := clock.NewFakeClock(now)
	svc := New(Params{
		DB:    setupTestDB(t),
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
		Clock: fc,
	})
	return svc, fc
}

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCreateStudentDerivesStatusFromStartDate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, date("2024-01-15"))

	view, err := svc.Create(ctx, domain.CreateStudentRequest{
		Name:      "Ada Lovelace",
		Email:     "ada@example.com",
		StartDate: "2024-01-10",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if view.Status != domain.StudentStatusActive {
		t.Fatalf("status = %q, want active", view.Status)
	}
	if got, want := view.Billing.DueDate, date("2024-02-09"); !got.Equal(want) {
		t.Fatalf("due date = %s, want %s", got, want)
	}
	if view.Billing.IsOverdue {
		t.Fatal("fresh student must not be overdue")
	}
	if view.Billing.CurrentProgramMonth != 1 {
		t.Fatalf("program month = %d, want 1", view.Billing.CurrentProgramMonth)
	}
}

func TestCreateStudentValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, date("2024-01-15"))

	if _, err := svc.Create(ctx, domain.CreateStudentRequest{Name: "  ", StartDate: "2024-01-10"}); err != domain.ErrInvalidName {
		t.Fatalf("blank name: err = %v, want %v", err, domain.ErrInvalidName)
	}
	if _, err := svc.Create(ctx, domain.CreateStudentRequest{Name: "Ada", StartDate: "10/01/2024"}); err != domain.ErrInvalidStartDate {
		t.Fatalf("bad start date: err = %v, want %v", err, domain.ErrInvalidStartDate)
	}
	if _, err := svc.Create(ctx, domain.CreateStudentRequest{Name: "Ada", StartDate: "2024-01-10", AmountOwed: -1}); err != domain.ErrInvalidAmount {
		t.Fatalf("negative owed: err = %v, want %v", err, domain.ErrInvalidAmount)
	}
}

func TestRecordPaymentExtendsCycleFromPaidAt(t *testing.T) {
	ctx := context.Background()
	svc, fc := newTestService(t, date("2024-01-10"))

	view, err := svc.Create(ctx, domain.CreateStudentRequest{
		Name:      "Grace Hopper",
		StartDate: "2024-01-10",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	fc.SetNow(date("2024-02-05"))
	resp, err := svc.RecordPayment(ctx, domain.RecordPaymentRequest{
		StudentID:   view.ID.String(),
		Amount:      59000,
		PaidAt:      "2024-02-05",
		ExtendCycle: true,
	})
	if err != nil {
		t.Fatalf("record payment: %v", err)
	}

	// The window re-anchors to the payment date, not the old due date.
	wantDue := date("2024-03-06")
	if got := resp.Student.Billing.DueDate; !got.Equal(wantDue) {
		t.Fatalf("due date = %s, want %s", got, wantDue)
	}
	if resp.Student.NextBillingDate == nil || !resp.Student.NextBillingDate.Equal(wantDue) {
		t.Fatalf("next_billing_date cache = %v, want %s", resp.Student.NextBillingDate, wantDue)
	}
	if resp.Student.AmountPaid != 59000 {
		t.Fatalf("amount_paid = %d, want 59000", resp.Student.AmountPaid)
	}
	if resp.Payment.ReceiptNumber == "" {
		t.Fatal("payment must carry a receipt number")
	}
}

func TestRecordPaymentRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, date("2024-01-15"))

	view, err := svc.Create(ctx, domain.CreateStudentRequest{
		Name:      "Alan Turing",
		StartDate: "2024-01-10",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.RecordPayment(ctx, domain.RecordPaymentRequest{
		StudentID: view.ID.String(),
		Amount:    0,
	}); err != domain.ErrInvalidAmount {
		t.Fatalf("zero amount: err = %v, want %v", err, domain.ErrInvalidAmount)
	}
	if _, err := svc.RecordPayment(ctx, domain.RecordPaymentRequest{
		StudentID: view.ID.String(),
		Amount:    1000,
		PaidAt:    "2024-01-16",
	}); err != domain.ErrPaymentInFuture {
		t.Fatalf("future paid_at: err = %v, want %v", err, domain.ErrPaymentInFuture)
	}
	if _, err := svc.RecordPayment(ctx, domain.RecordPaymentRequest{
		StudentID: view.ID.String(),
		Amount:    1000,
		PaidAt:    "yesterday",
	}); err != domain.ErrInvalidPaidAt {
		t.Fatalf("garbage paid_at: err = %v, want %v", err, domain.ErrInvalidPaidAt)
	}
}

func TestPaymentClearsOverdueAccount(t *testing.T) {
	ctx := context.Background()
	svc, fc := newTestService(t, date("2024-01-10"))

	view, err := svc.Create(ctx, domain.CreateStudentRequest{
		Name:      "Barbara Liskov",
		StartDate: "2024-01-10",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Two days past the 30-day window.
	fc.SetNow(date("2024-02-11"))
	status, err := svc.StatusAsOf(ctx, view.ID.String(), fc.Now())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.IsOverdue {
		t.Fatal("expected overdue before any payment")
	}

	resp, err := svc.RecordPayment(ctx, domain.RecordPaymentRequest{
		StudentID: view.ID.String(),
		Amount:    59000,
		PaidAt:    "2024-02-11",
	})
	if err != nil {
		t.Fatalf("record payment: %v", err)
	}
	if resp.Student.Billing.IsOverdue {
		t.Fatal("payment must clear overdue state")
	}
	if got, want := resp.Student.Billing.DueDate, date("2024-03-12"); !got.Equal(want) {
		t.Fatalf("due date = %s, want %s", got, want)
	}
}

func TestPaidInFullStudentNeverOverdue(t *testing.T) {
	ctx := context.Background()
	svc, fc := newTestService(t, date("2024-01-10"))

	view, err := svc.Create(ctx, domain.CreateStudentRequest{
		Name:       "Donald Knuth",
		StartDate:  "2023-01-10",
		PaidInFull: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	fc.Advance(90 * 24 * time.Hour)
	status, err := svc.StatusAsOf(ctx, view.ID.String(), fc.Now())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.IsOverdue || status.IsUrgent {
		t.Fatalf("paid-in-full flagged overdue=%v urgent=%v", status.IsOverdue, status.IsUrgent)
	}
	if status.MonthsOwed != 0 {
		t.Fatalf("months owed = %d, want 0", status.MonthsOwed)
	}
}

func TestUpdateStudentPartialFields(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, date("2024-01-15"))

	view, err := svc.Create(ctx, domain.CreateStudentRequest{
		Name:      "Edsger Dijkstra",
		StartDate: "2024-01-10",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	status := string(domain.StudentStatusPaused)
	updated, err := svc.Update(ctx, domain.UpdateStudentRequest{
		ID:     view.ID.String(),
		Status: &status,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != domain.StudentStatusPaused {
		t.Fatalf("status = %q, want paused", updated.Status)
	}
	if updated.Name != "Edsger Dijkstra" {
		t.Fatalf("name changed unexpectedly: %q", updated.Name)
	}

	bad := "archived"
	if _, err := svc.Update(ctx, domain.UpdateStudentRequest{ID: view.ID.String(), Status: &bad}); err != domain.ErrInvalidStatus {
		t.Fatalf("bad status: err = %v, want %v", err, domain.ErrInvalidStatus)
	}
}

func TestDeleteStudentRemovesPayments(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, date("2024-02-01"))

	view, err := svc.Create(ctx, domain.CreateStudentRequest{
		Name:      "Ken Thompson",
		StartDate: "2024-01-10",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.RecordPayment(ctx, domain.RecordPaymentRequest{
		StudentID: view.ID.String(),
		Amount:    10000,
		PaidAt:    "2024-01-20",
	}); err != nil {
		t.Fatalf("record payment: %v", err)
	}

	if err := svc.Delete(ctx, view.ID.String()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, domain.GetStudentRequest{ID: view.ID.String()}); err != domain.ErrNotFound {
		t.Fatalf("get after delete: err = %v, want %v", err, domain.ErrNotFound)
	}
	if payments, err := svc.ListPayments(ctx, view.ID.String()); err != nil || len(payments) != 0 {
		t.Fatalf("payments after delete = %v (err %v), want none", payments, err)
	}
}

func TestListStudentsFiltersByStatus(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, date("2024-02-01"))

	active, err := svc.Create(ctx, domain.CreateStudentRequest{Name: "Active One", StartDate: "2024-01-10"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	paused, err := svc.Create(ctx, domain.CreateStudentRequest{Name: "Paused One", StartDate: "2024-01-10"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	status := string(domain.StudentStatusPaused)
	if _, err := svc.Update(ctx, domain.UpdateStudentRequest{ID: paused.ID.String(), Status: &status}); err != nil {
		t.Fatalf("update: %v", err)
	}

	resp, err := svc.List(ctx, domain.ListStudentRequest{Status: "active"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(resp.Students) != 1 || resp.Students[0].ID != active.ID {
		t.Fatalf("active filter returned %d students", len(resp.Students))
	}

	if _, err := svc.List(ctx, domain.ListStudentRequest{Status: "bogus"}); err != domain.ErrInvalidStatus {
		t.Fatalf("bogus status: err = %v, want %v", err, domain.ErrInvalidStatus)
	}
}
