package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/siherrmann/absa"
	"github.com/siherrmann/absa/core/visualize"
	"github.com/siherrmann/absa/helper"
	"github.com/siherrmann/absa/model"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [files...]",
	Short: "Analyze the sentiment of documents",
	Long: `Analyze reads every file (or stdin for "-"), runs aspect based sentiment
analysis on it and prints the result. HTML files are reduced to their visible
text first. Use --text to analyze a string directly.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("text", "", "text to analyze instead of files")
	analyzeCmd.Flags().StringP("format", "f", "markdown", "output format (markdown, json, yaml)")
	analyzeCmd.Flags().String("charts-dir", "", "write the charts of every document as HTML into this directory")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) (err error) {
	texts, err := collectTexts(cmd, args)
	if err != nil {
		return err
	}

	config, err := loadConfig()
	if err != nil {
		return err
	}

	logLevel, _ := cmd.Flags().GetString("log-level")
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}

	analyzer, err := absa.NewDefaultAnalyzer(config, absa.WithLogger(helper.NewLogger(os.Stderr, level)))
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := analyzer.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	results := analyzer.AnalyzeBatch(cmd.Context(), texts)

	format, _ := cmd.Flags().GetString("format")
	if err := writeResults(cmd.OutOrStdout(), format, results); err != nil {
		return err
	}

	chartsDir, _ := cmd.Flags().GetString("charts-dir")
	if chartsDir != "" {
		if err := writeCharts(analyzer, chartsDir, results); err != nil {
			return err
		}
	}

	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("%d of %d documents failed", countFailed(results), len(results))
		}
	}
	return nil
}

func collectTexts(cmd *cobra.Command, args []string) ([]string, error) {
	text, _ := cmd.Flags().GetString("text")
	if text != "" {
		return []string{text}, nil
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("no input: pass files or --text")
	}

	texts := make([]string, 0, len(args))
	for _, path := range args {
		doc, err := readDocument(path)
		if err != nil {
			return nil, err
		}
		texts = append(texts, doc)
	}
	return texts, nil
}

func writeResults(w io.Writer, format string, results []model.BatchResult) error {
	switch format {
	case "markdown", "md":
		for i, r := range results {
			if i > 0 {
				fmt.Fprintln(w)
			}
			if r.Err != nil {
				fmt.Fprintf(w, "# Document %d failed\n\n%v\n", r.Index, r.Err)
				continue
			}
			fmt.Fprintln(w, absa.GenerateReport(r.Result))
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(toOutput(results))
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(toOutput(results))
	}
	return fmt.Errorf("unknown format %q", format)
}

// documentOutput is the serialized form of a batch result
type documentOutput struct {
	Index  int                   `json:"index" yaml:"index"`
	Result *model.AnalysisResult `json:"result,omitempty" yaml:"result,omitempty"`
	Error  string                `json:"error,omitempty" yaml:"error,omitempty"`
}

func toOutput(results []model.BatchResult) []documentOutput {
	out := make([]documentOutput, len(results))
	for i, r := range results {
		out[i] = documentOutput{Index: r.Index, Result: r.Result}
		if r.Err != nil {
			out[i].Error = r.Err.Error()
		}
	}
	return out
}

func writeCharts(analyzer *absa.Analyzer, dir string, results []model.BatchResult) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	for _, r := range results {
		if r.Err != nil {
			continue
		}
		charts, err := analyzer.Visualize(r.Result)
		if err != nil {
			return err
		}

		names := make([]string, 0, len(charts))
		for name := range charts {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			file := filepath.Join(dir, chartFileName(name, r.Index, len(results)))
			if err := visualize.SaveHTML(charts[name], file); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, "Wrote", file)
		}
	}
	return nil
}

// chartFileName is <name>.html for a single document and <name>_<index>.html otherwise
func chartFileName(name string, index int, total int) string {
	if total == 1 {
		return name + ".html"
	}
	return fmt.Sprintf("%s_%d.html", name, index)
}

func countFailed(results []model.BatchResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
