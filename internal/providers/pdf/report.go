package pdf

import (
	"bytes"
	"context"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type MarotoProvider struct{}

func New() Provider {
	return &MarotoProvider{}
}

func (p *MarotoProvider) RenderRevenueReport(ctx context.Context, data ReportData) (io.Reader, error) {
	_ = ctx

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(14,
		text.NewCol(8, data.Title, props.Text{
			Size:  16,
			Style: fontstyle.Bold,
		}),
		text.NewCol(4, data.MonthKey, props.Text{
			Size:  14,
			Align: align.Right,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, "Generated "+data.GeneratedAt, props.Text{
			Size:  8,
			Align: align.Right,
		}),
	)
	m.AddRows(row.New(6))

	m.AddRow(8,
		text.NewCol(8, "Source", props.Text{Style: fontstyle.Bold}),
		text.NewCol(4, "Amount", props.Text{Style: fontstyle.Bold, Align: align.Right}),
	)
	for _, line := range data.Lines {
		m.AddRow(7,
			text.NewCol(8, line.Label),
			text.NewCol(4, line.Amount, props.Text{Align: align.Right}),
		)
	}

	m.AddRows(row.New(4))
	m.AddRow(9,
		text.NewCol(8, "Total", props.Text{Style: fontstyle.Bold}),
		text.NewCol(4, data.Total, props.Text{Style: fontstyle.Bold, Align: align.Right}),
	)
	m.AddRow(7,
		text.NewCol(8, "Monthly goal"),
		text.NewCol(4, data.Goal, props.Text{Align: align.Right}),
	)
	m.AddRow(7,
		text.NewCol(8, "Progress"),
		text.NewCol(4, data.ProgressPercent, props.Text{Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(doc.GetBytes()), nil
}
