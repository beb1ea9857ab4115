package util

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"modcell.io/popio/pkg/multiobjective/framework"
)

// PlotFront renders a scatter plot of a two-objective front as HTML. labels
// name the x and y axes.
func PlotFront(w io.Writer, title string, labels [2]string, points []framework.ObjectiveSpacePoint) error {
	if len(points) == 0 {
		return fmt.Errorf("no points to plot for %s", title)
	}
	for i, p := range points {
		if len(p) != 2 {
			return fmt.Errorf("can only plot 2D points, point %d has %d objectives", i, len(p))
		}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: labels[0],
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: labels[1],
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}))

	data := make([]opts.ScatterData, len(points))
	for i, p := range points {
		data[i] = opts.ScatterData{
			Value:      []float64{p[0], p[1]},
			Symbol:     "circle",
			SymbolSize: 10,
		}
	}

	scatter.AddSeries("Non-dominated designs", data).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
			charts.WithEmphasisOpts(opts.Emphasis{}),
		)

	return scatter.Render(w)
}
