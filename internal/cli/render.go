package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowergraph/pkg/flower"
	"github.com/matzehuels/flowergraph/pkg/io"
	"github.com/matzehuels/flowergraph/pkg/pipeline"
)

// renderCommand creates the render command for generating visualizations.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags      graphFlags
		formatsStr string
		vizType    string
		output     string
		static     bool
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "render [records]",
		Short: "Render a record file as a flower graph",
		Long: `Render a record file as a flower graph.

Records are read from JSON, YAML or TOML (by extension). Each record needs a
label field and a types field (--label, --types); the types field may be a
list or a single value.

Output formats are svg (default), png, pdf, json and, for the node-link view
(-t nodelink), dot. PNG and PDF need rsvg-convert on the PATH.

Results are cached locally for faster subsequent runs. Set FLOWERGRAPH_CACHE
to a redis:// or mongodb:// URL to share the cache.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, fc, err := flags.options(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") || len(opts.Formats) == 0 {
				opts.Formats = parseFormats(formatsStr)
			}
			if cmd.Flags().Changed("type") || fc.Viz == "" {
				opts.VizType = vizType
			}
			opts.Static = static
			opts.Refresh = refresh
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().StringVarP(&vizType, "type", "t", pipeline.DefaultVizType, "visualization type: flower (default), nodelink")
	cmd.Flags().BoolVar(&static, "static", false, "omit the hover script from SVG output")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached results")

	return cmd
}

// runRender loads the records, runs the pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spin := newSpinner(ctx, os.Stderr, "Reading "+input)
	spin.Start()

	prog := newProgress(logger)
	records, err := io.ImportRecords(input)
	if err != nil {
		spin.StopWithError("Read failed")
		return err
	}

	spin.SetMessage("Rendering %d records as %s graph...", len(records), opts.VizType)
	opts.Logger = logger
	result, err := runner.Execute(ctx, records, opts)
	if err != nil {
		spin.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spin.Stop()
	prog.done(fmt.Sprintf("Rendered %d records from %s", len(records), input))
	if len(records) == 0 {
		printWarning("%s contains no records", input)
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, input, output)
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.RecordCount, result.Stats.TypeCount, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	if opts.IsFlower() && result.Stats.RecordCount > 0 {
		printNewline()
		printNextStep("Explore interactively", appName+" explore "+input)
	}
	return nil
}

// writeArtifacts writes one file per format and returns the written paths in
// format order. A single format goes to output as given; several formats
// share the base path of output (or input) and differ by extension.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	var paths []string
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := basePath(output, input) + "." + format
		if len(formats) == 1 && output != "" {
			path = output
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return paths, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// loadGraph reads a record file and builds the graph the interactive
// commands work on.
func loadGraph(cmd *cobra.Command, flags *graphFlags, input string) (*flower.Graph[flower.Record], pipeline.Options, fileConfig, error) {
	opts, fc, err := flags.options(cmd)
	if err != nil {
		return nil, opts, fc, err
	}
	records, err := io.ImportRecords(input)
	if err != nil {
		return nil, opts, fc, err
	}
	loggerFromContext(cmd.Context()).Debug("loaded records", "file", input, "count", len(records))

	g := pipeline.NewGraph(records, opts)
	g.Hover().Apply(opts.HoverState())
	return g, opts, fc, nil
}
