package main

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	kmeans "github.com/yyyoichi/kmeans_stepper"
)

var colors = []string{"#3b82f6", "#ef4444", "#10b981", "#f59e0b", "#8b5cf6"}

func color(cluster int) string {
	if cluster < 0 {
		return "#94a3b8"
	}
	return colors[cluster%len(colors)]
}

// newPage lays out one scatter chart per snapshot followed by the final cluster sizes.
func newPage(states []kmeans.State) *components.Page {
	page := components.NewPage()
	for _, s := range states {
		page.AddCharts(newScatter(s))
	}
	page.AddCharts(newSummary(states[len(states)-1]))
	return page
}

func newScatter(s kmeans.State) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Iteration %d", s.Iteration),
			Subtitle: s.Status.String(),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Total rentals"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Total spending ($)"}),
	)

	members := make([][]opts.ScatterData, len(s.Centroids))
	for _, p := range s.Points {
		if p.Cluster < 0 || p.Cluster >= len(members) {
			continue
		}
		members[p.Cluster] = append(members[p.Cluster], opts.ScatterData{
			Name:  fmt.Sprintf("customer %d", p.ID),
			Value: []any{round(p.Rentals, 1), round(p.Spending, 2)},
		})
	}
	for i, data := range members {
		scatter.AddSeries(fmt.Sprintf("Segment %d", i+1), data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: color(i)}),
		)
	}

	centroids := make([]opts.ScatterData, len(s.Centroids))
	for i, c := range s.Centroids {
		centroids[i] = opts.ScatterData{
			Name:       fmt.Sprintf("centroid %d", c.Index),
			Value:      []any{round(c.Rentals, 1), round(c.Spending, 2)},
			Symbol:     "diamond",
			SymbolSize: 20,
		}
	}
	scatter.AddSeries("Centroids", centroids,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#1e293b"}),
	)
	return scatter
}

func newSummary(s kmeans.State) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Segments",
			Subtitle: fmt.Sprintf("after %d iterations", s.Iteration),
		}),
	)

	summaries := kmeans.Summarize(s)
	names := make([]string, len(summaries))
	counts := make([]opts.BarData, len(summaries))
	for i, sum := range summaries {
		names[i] = fmt.Sprintf("Segment %d", sum.Cluster+1)
		counts[i] = opts.BarData{
			Name:      fmt.Sprintf("avg rentals %.1f, avg spending $%.2f", sum.MeanRentals, sum.MeanSpending),
			Value:     sum.Count,
			ItemStyle: &opts.ItemStyle{Color: color(sum.Cluster)},
		}
	}
	bar.SetXAxis(names).AddSeries("Customers", counts)
	return bar
}
