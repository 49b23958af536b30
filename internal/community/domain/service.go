package domain

import (
	"context"
	"errors"
)

type CreateAnnualMemberRequest struct {
	Name       string
	AmountPaid int64
	Source     string
	// JoinedAt optionally backdates the membership ("2006-01-02"); empty
	// means now.
	JoinedAt string
}

type Service interface {
	Create(context.Context, CreateAnnualMemberRequest) (AnnualMember, error)
	List(ctx context.Context) ([]AnnualMember, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID     = errors.New("invalid_id")
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidAmount = errors.New("invalid_amount")
	ErrInvalidDate   = errors.New("invalid_date")
	ErrNotFound      = errors.New("not_found")
)
