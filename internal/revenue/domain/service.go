package domain

import (
	"context"
	"errors"
	"io"
)

type UpsertMonthlyRevenueRequest struct {
	MonthKey       string
	AgencyRevenue  int64
	GumroadRevenue int64
}

type Service interface {
	// Breakdown aggregates the month's revenue across all four sources.
	Breakdown(ctx context.Context, monthKey string) (Breakdown, error)
	// Upsert records the manually entered agency/product figures.
	Upsert(ctx context.Context, req UpsertMonthlyRevenueRequest) (MonthlyRevenue, error)
	// Report renders the month's breakdown as a PDF.
	Report(ctx context.Context, monthKey string) (io.Reader, error)
}

var (
	ErrInvalidMonthKey = errors.New("invalid_month_key")
	ErrInvalidAmount   = errors.New("invalid_amount")
)
