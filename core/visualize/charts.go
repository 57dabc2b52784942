package visualize

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/siherrmann/absa/helper"
	"github.com/siherrmann/absa/model"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Default chart titles
const (
	TitleDistribution = "Sentiment Distribution"
	TitleNetwork      = "Aspect-Opinion Network"
	TitleTemporal     = "Temporal Sentiment Trends"
	TitleKeywords     = "Keyword Associations"
)

// HistogramBins is the number of bins of the score distribution
const HistogramBins = 20

// Chart is a renderable chart that can be exported as a static HTML document
type Chart interface {
	Render(w io.Writer) error
}

// TrendPoint is the sentiment of an aspect at a point in time
type TrendPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Sentiment float64   `json:"sentiment"`
}

// Visualizer creates charts from analysis results
type Visualizer struct {
	// Seed of the network layout
	Seed uint64
}

// NewVisualizer creates a new visualizer with a fixed layout seed
func NewVisualizer() *Visualizer {
	return &Visualizer{Seed: 42}
}

// PlotScoreDistribution draws a histogram of the compound scores.
// Scores are split into equal width bins between the smallest and largest value,
// a single distinct value gives a single bar.
func (v *Visualizer) PlotScoreDistribution(scores []model.SentimentScore, title string) (*charts.Bar, error) {
	if len(scores) == 0 {
		return nil, helper.NewError("plot score distribution", fmt.Errorf("no scores given"))
	}
	if title == "" {
		title = TitleDistribution
	}

	labels, counts := histogram(scores)

	data := make([]opts.BarData, len(counts))
	for i, count := range counts {
		data[i] = opts.BarData{Value: count}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "compound"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "count"}),
	)
	bar.SetXAxis(labels).AddSeries("compound", data)

	return bar, nil
}

func histogram(scores []model.SentimentScore) ([]string, []float64) {
	values := make([]float64, len(scores))
	for i, s := range scores {
		values[i] = s.Compound
	}
	sort.Float64s(values)

	low, high := floats.Min(values), floats.Max(values)
	if low == high {
		return []string{fmt.Sprintf("%.2f", low)}, []float64{float64(len(values))}
	}

	dividers := make([]float64, HistogramBins+1)
	floats.Span(dividers, low, high)
	// the last bin is closed
	dividers[HistogramBins] = math.Nextafter(high, math.Inf(1))

	counts := stat.Histogram(nil, dividers, values, nil)

	labels := make([]string, HistogramBins)
	for i := range labels {
		labels[i] = fmt.Sprintf("%.2f to %.2f", dividers[i], dividers[i+1])
	}
	return labels, counts
}

// PlotAspectNetwork draws the aspect-opinion network with a force-directed layout.
// Every distinct aspect and opinion is one node, every distinct pair one link.
func (v *Visualizer) PlotAspectNetwork(pairs []model.AspectOpinionPair, title string) (*charts.Graph, error) {
	if title == "" {
		title = TitleNetwork
	}

	network := BuildAspectNetwork(pairs)
	coords := network.Layout(v.Seed)
	names := nodeNames(network)

	nodes := make([]opts.GraphNode, 0, len(network.Nodes()))
	for _, node := range network.Nodes() {
		category := 0
		if node.Role == RoleOpinion {
			category = 1
		}
		c := coords[node.ID()]
		nodes = append(nodes, opts.GraphNode{
			Name:       names[node.ID()],
			X:          float32(c.X),
			Y:          float32(c.Y),
			Category:   category,
			SymbolSize: 10,
		})
	}

	links := make([]opts.GraphLink, 0, len(network.Edges()))
	for _, edge := range network.Edges() {
		links = append(links, opts.GraphLink{
			Source: names[edge.From().ID()],
			Target: names[edge.To().ID()],
			Value:  float32(edge.Sentiment),
		})
	}

	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	graph.AddSeries("pairs", nodes, links,
		charts.WithGraphChartOpts(opts.GraphChart{
			Layout: "none",
			Roam:   opts.Bool(true),
			Categories: []*opts.GraphCategory{
				{Name: string(RoleAspect)},
				{Name: string(RoleOpinion)},
			},
		}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}),
	)

	return graph, nil
}

// nodeNames returns unique chart names, an opinion sharing its text with an aspect gets a suffix
func nodeNames(network *AspectNetwork) map[int64]string {
	names := make(map[int64]string, len(network.Nodes()))
	for _, node := range network.Nodes() {
		name := node.Text
		if node.Role == RoleOpinion {
			if _, clash := network.Node(RoleAspect, node.Text); clash {
				name = fmt.Sprintf("%s (%s)", node.Text, RoleOpinion)
			}
		}
		names[node.ID()] = name
	}
	return names
}

// PlotTemporalTrend draws the sentiment of an aspect over time in the given order
func (v *Visualizer) PlotTemporalTrend(points []TrendPoint, aspect string, title string) (*charts.Line, error) {
	if title == "" {
		title = TitleTemporal
	}

	timestamps := make([]string, len(points))
	data := make([]opts.LineData, len(points))
	for i, p := range points {
		timestamps[i] = p.Timestamp.Format(time.DateTime)
		data[i] = opts.LineData{Value: p.Sentiment}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: aspect}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "timestamp"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "sentiment"}),
	)
	line.SetXAxis(timestamps).AddSeries(aspect, data)

	return line, nil
}

// PlotKeywordBar draws a bar per keyword, sorted by keyword
func (v *Visualizer) PlotKeywordBar(keywords map[string]float64, title string) (*charts.Bar, error) {
	if title == "" {
		title = TitleKeywords
	}

	keys := make([]string, 0, len(keywords))
	for k := range keywords {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	data := make([]opts.BarData, len(keys))
	for i, k := range keys {
		data[i] = opts.BarData{Value: keywords[k]}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "keyword"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "score"}),
	)
	bar.SetXAxis(keys).AddSeries("score", data)

	return bar, nil
}

// SaveHTML renders the chart into an HTML file
func SaveHTML(chart Chart, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return helper.NewError("create chart file", err)
	}

	if err := chart.Render(f); err != nil {
		_ = f.Close()
		return helper.NewError("render chart", err)
	}
	return f.Close()
}
