package pdf

import (
	"context"
	"io"
)

// ReportLine is one labelled amount on the revenue report.
type ReportLine struct {
	Label  string
	Amount string
}

// ReportData feeds the monthly revenue report.
type ReportData struct {
	Title           string
	MonthKey        string
	GeneratedAt     string
	Lines           []ReportLine
	Total           string
	Goal            string
	ProgressPercent string
}

type Provider interface {
	RenderRevenueReport(ctx context.Context, data ReportData) (io.Reader, error)
}

type NoOpProvider struct{}

func (p *NoOpProvider) RenderRevenueReport(ctx context.Context, data ReportData) (io.Reader, error) {
	return nil, nil
}
