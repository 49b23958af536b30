package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/solostack/mentordesk/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListStudentFilter struct {
	Status StudentStatus
	Name   string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, student *Student) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Student, error)
	List(ctx context.Context, db *gorm.DB, filter ListStudentFilter, page pagination.Pagination) ([]*Student, error)
	Update(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	InsertPayment(ctx context.Context, db *gorm.DB, payment *Payment) error
	ListPayments(ctx context.Context, db *gorm.DB, studentID snowflake.ID) ([]*Payment, error)
}
