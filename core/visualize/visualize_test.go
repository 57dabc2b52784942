package visualize

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/siherrmann/absa/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pairs = []model.AspectOpinionPair{
	{Aspect: "life", Opinion: "terrible", SentimentScore: -0.5},
	{Aspect: "screen", Opinion: "great", SentimentScore: 0.6},
	{Aspect: "screen", Opinion: "bright", SentimentScore: 0.4},
	{Aspect: "price", Opinion: "great", SentimentScore: 0.6},
}

func TestBuildAspectNetwork(t *testing.T) {
	t.Run("One node per distinct aspect and opinion", func(t *testing.T) {
		network := BuildAspectNetwork(pairs)
		assert.Len(t, network.Nodes(), 3+3)
		assert.Len(t, network.Edges(), len(pairs))
	})

	t.Run("Nodes are tagged by role in order of appearance", func(t *testing.T) {
		network := BuildAspectNetwork(pairs)
		nodes := network.Nodes()
		assert.Equal(t, "life", nodes[0].Text)
		assert.Equal(t, RoleAspect, nodes[0].Role)
		assert.Equal(t, "terrible", nodes[1].Text)
		assert.Equal(t, RoleOpinion, nodes[1].Role)
	})

	t.Run("Edges carry the pair score", func(t *testing.T) {
		network := BuildAspectNetwork(pairs)
		edge := network.Edges()[0]
		assert.Equal(t, -0.5, edge.Sentiment)
		assert.Equal(t, "life", edge.From().(*NetworkNode).Text)
		assert.Equal(t, "terrible", edge.To().(*NetworkNode).Text)
	})

	t.Run("Duplicate pairs collapse into one edge", func(t *testing.T) {
		network := BuildAspectNetwork([]model.AspectOpinionPair{
			{Aspect: "screen", Opinion: "great", SentimentScore: 0.5},
			{Aspect: "screen", Opinion: "great", SentimentScore: 0.9},
		})
		assert.Len(t, network.Nodes(), 2)
		require.Len(t, network.Edges(), 1)
		assert.Equal(t, 0.5, network.Edges()[0].Sentiment)
	})

	t.Run("Same word as aspect and opinion gives two nodes", func(t *testing.T) {
		network := BuildAspectNetwork([]model.AspectOpinionPair{
			{Aspect: "light", Opinion: "light", SentimentScore: 0.5},
		})
		assert.Len(t, network.Nodes(), 2)
		assert.Len(t, network.Edges(), 1)
	})

	t.Run("Empty pairs give an empty network", func(t *testing.T) {
		network := BuildAspectNetwork(nil)
		assert.Empty(t, network.Nodes())
		assert.Empty(t, network.Layout(1))
	})
}

func TestLayout(t *testing.T) {
	t.Run("Places every node", func(t *testing.T) {
		network := BuildAspectNetwork(pairs)
		coords := network.Layout(7)
		assert.Len(t, coords, len(network.Nodes()))
	})

	t.Run("Same seed gives the same layout", func(t *testing.T) {
		first := BuildAspectNetwork(pairs).Layout(7)
		second := BuildAspectNetwork(pairs).Layout(7)
		assert.Equal(t, first, second)
	})

	t.Run("Nodes are spread apart", func(t *testing.T) {
		network := BuildAspectNetwork(pairs)
		coords := network.Layout(7)
		assert.NotEqual(t, coords[0], coords[1])
	})
}

func TestPlotScoreDistribution(t *testing.T) {
	visualizer := NewVisualizer()

	t.Run("A single score gives a single bar", func(t *testing.T) {
		bar, err := visualizer.PlotScoreDistribution([]model.SentimentScore{{Compound: 0.42}}, "")
		require.NoError(t, err)
		data := bar.MultiSeries[0].Data.([]opts.BarData)
		require.Len(t, data, 1)
		assert.Equal(t, 1.0, data[0].Value)
		assert.Equal(t, TitleDistribution, bar.Title.Title)
	})

	t.Run("Spread scores use twenty bins", func(t *testing.T) {
		scores := []model.SentimentScore{{Compound: -1}, {Compound: 0}, {Compound: 0.5}, {Compound: 1}}
		bar, err := visualizer.PlotScoreDistribution(scores, "Scores")
		require.NoError(t, err)
		data := bar.MultiSeries[0].Data.([]opts.BarData)
		require.Len(t, data, HistogramBins)

		total := 0.0
		for _, d := range data {
			total += d.Value.(float64)
		}
		assert.Equal(t, 4.0, total, "Every score should be counted once")
		assert.Equal(t, 1.0, data[0].Value, "Minimum falls into the first bin")
		assert.Equal(t, 1.0, data[HistogramBins-1].Value, "Maximum falls into the last bin")
		assert.Equal(t, "Scores", bar.Title.Title)
	})

	t.Run("No scores is an error", func(t *testing.T) {
		_, err := visualizer.PlotScoreDistribution(nil, "")
		assert.Error(t, err)
	})
}

func TestPlotAspectNetwork(t *testing.T) {
	visualizer := NewVisualizer()

	t.Run("Represents every node and link once", func(t *testing.T) {
		graph, err := visualizer.PlotAspectNetwork(pairs, "")
		require.NoError(t, err)
		nodes := graph.MultiSeries[0].Data.([]opts.GraphNode)
		links := graph.MultiSeries[0].Links.([]opts.GraphLink)
		assert.Len(t, nodes, 6)
		assert.Len(t, links, 4)
		assert.Equal(t, TitleNetwork, graph.Title.Title)
	})

	t.Run("Clashing names get a role suffix", func(t *testing.T) {
		graph, err := visualizer.PlotAspectNetwork([]model.AspectOpinionPair{
			{Aspect: "light", Opinion: "light", SentimentScore: 0.5},
		}, "")
		require.NoError(t, err)
		nodes := graph.MultiSeries[0].Data.([]opts.GraphNode)
		require.Len(t, nodes, 2)
		assert.Equal(t, "light", nodes[0].Name)
		assert.Equal(t, "light (opinion)", nodes[1].Name)
		links := graph.MultiSeries[0].Links.([]opts.GraphLink)
		assert.Equal(t, "light (opinion)", links[0].Target)
	})

	t.Run("Renders to HTML", func(t *testing.T) {
		graph, err := visualizer.PlotAspectNetwork(pairs, "")
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, graph.Render(&buf))
		assert.Contains(t, buf.String(), "terrible")
	})
}

func TestPlotTemporalTrend(t *testing.T) {
	visualizer := NewVisualizer()
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Keeps one point per timestamp", func(t *testing.T) {
		line, err := visualizer.PlotTemporalTrend([]TrendPoint{
			{Timestamp: start, Sentiment: 0.1},
			{Timestamp: start.Add(time.Hour), Sentiment: -0.3},
		}, "battery", "")
		require.NoError(t, err)
		data := line.MultiSeries[0].Data.([]opts.LineData)
		require.Len(t, data, 2)
		assert.Equal(t, -0.3, data[1].Value)
		assert.Equal(t, "battery", line.MultiSeries[0].Name)
		assert.Equal(t, TitleTemporal, line.Title.Title)
	})
}

func TestPlotKeywordBar(t *testing.T) {
	visualizer := NewVisualizer()

	t.Run("Sorts keywords", func(t *testing.T) {
		bar, err := visualizer.PlotKeywordBar(map[string]float64{"screen": 0.6, "battery": -0.4}, "")
		require.NoError(t, err)
		data := bar.MultiSeries[0].Data.([]opts.BarData)
		require.Len(t, data, 2)
		assert.Equal(t, -0.4, data[0].Value)
		assert.Equal(t, 0.6, data[1].Value)
		assert.Equal(t, TitleKeywords, bar.Title.Title)
	})
}

func TestSaveHTML(t *testing.T) {
	visualizer := NewVisualizer()

	t.Run("Writes the chart document", func(t *testing.T) {
		bar, err := visualizer.PlotKeywordBar(map[string]float64{"screen": 0.6}, "")
		require.NoError(t, err)

		path := filepath.Join(t.TempDir(), "keywords.html")
		require.NoError(t, SaveHTML(bar, path))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "<html")
		assert.Contains(t, string(content), TitleKeywords)
	})

	t.Run("Fails for a missing directory", func(t *testing.T) {
		bar, err := visualizer.PlotKeywordBar(map[string]float64{"screen": 0.6}, "")
		require.NoError(t, err)
		assert.Error(t, SaveHTML(bar, filepath.Join(t.TempDir(), "missing", "chart.html")))
	})
}
