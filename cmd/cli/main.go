package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"launchdash/adapters/plot"
	"launchdash/adapters/sqlstore"
	"launchdash/domain/viewstate"
	"launchdash/internal/config"
	"launchdash/internal/container"
	"launchdash/ui/services"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// datasetFlags select where launches are read from
type datasetFlags struct {
	data   string
	driver string
	dsn    string
	sites  string
	seed   int64
	count  int
}

func (f *datasetFlags) config() *config.Config {
	return &config.Config{
		Data: config.DataConfig{
			File:           f.data,
			SitesFile:      f.sites,
			SyntheticSeed:  f.seed,
			SyntheticCount: f.count,
		},
		Database: config.DatabaseConfig{Driver: f.driver, URL: f.dsn},
	}
}

func (f *datasetFlags) load(ctx context.Context, cfg *config.Config) (*container.Container, error) {
	if cfg.Data.File != "" && cfg.Database.Enabled() {
		return nil, fmt.Errorf("use either --data or --driver/--dsn, not both")
	}
	c, err := container.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := c.Load(ctx); err != nil {
		c.Shutdown(ctx)
		return nil, err
	}
	return c, nil
}

// viewFlags carry the view-state of one invocation
type viewFlags struct {
	site string
	low  float64
	high float64
}

func (v *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&v.site, "site", "ALL", "Launch site or ALL")
	cmd.Flags().Float64Var(&v.low, "low", 0, "Lowest payload mass in kg (default: dataset minimum)")
	cmd.Flags().Float64Var(&v.high, "high", 0, "Highest payload mass in kg (default: dataset maximum)")
}

// state validates the flags the same way the HTTP API validates its query string
func (v *viewFlags) state(cmd *cobra.Command, data *services.DataService) (viewstate.State, error) {
	var low, high string
	if cmd.Flags().Changed("low") {
		low = strconv.FormatFloat(v.low, 'f', -1, 64)
	}
	if cmd.Flags().Changed("high") {
		high = strconv.FormatFloat(v.high, 'f', -1, 64)
	}
	return data.ParseQuery(v.site, low, high)
}

func newRootCmd() *cobra.Command {
	flags := &datasetFlags{}

	rootCmd := &cobra.Command{
		Use:           "launchdash-cli",
		Short:         "Launch records dashboard views from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&flags.data, "data", "", "CSV or XLSX launch file")
	rootCmd.PersistentFlags().StringVar(&flags.driver, "driver", "", "Database driver (postgres or sqlite)")
	rootCmd.PersistentFlags().StringVar(&flags.dsn, "dsn", "", "Database connection string")
	rootCmd.PersistentFlags().StringVar(&flags.sites, "sites", "", "YAML site catalog")
	rootCmd.PersistentFlags().Int64Var(&flags.seed, "seed", 42, "Seed for synthetic launches")
	rootCmd.PersistentFlags().IntVar(&flags.count, "count", 56, "Number of synthetic launches")

	rootCmd.AddCommand(
		newSummaryCmd(flags),
		newFigureCmd(flags, services.ViewProportion, "Print the success pie chart as JSON"),
		newFigureCmd(flags, services.ViewDistribution, "Print the payload scatter chart as JSON"),
		newRenderCmd(flags),
		newExportCmd(flags),
		newImportCmd(flags),
	)
	return rootCmd
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newSummaryCmd(flags *datasetFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print dataset summary statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := flags.load(cmd.Context(), flags.config())
			if err != nil {
				return err
			}
			defer c.Shutdown(cmd.Context())
			return printJSON(cmd.OutOrStdout(), c.Data.Summary())
		},
	}
}

func newFigureCmd(flags *datasetFlags, view, short string) *cobra.Command {
	v := &viewFlags{}
	cmd := &cobra.Command{
		Use:   view,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := flags.load(cmd.Context(), flags.config())
			if err != nil {
				return err
			}
			defer c.Shutdown(cmd.Context())

			state, err := v.state(cmd, c.Data)
			if err != nil {
				return err
			}
			fig, err := c.Data.Figure(view, state)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), fig)
		},
	}
	v.register(cmd)
	return cmd
}

// renderCharts draws both views into dir concurrently
func renderCharts(ctx context.Context, data *services.DataService, dir string, format plot.Format, state viewstate.State) ([]string, error) {
	views := []string{services.ViewProportion, services.ViewDistribution}
	paths := make([]string, len(views))

	g, _ := errgroup.WithContext(ctx)
	for i, view := range views {
		paths[i] = filepath.Join(dir, view+"."+string(format))
		path := paths[i]
		g.Go(func() error {
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			if err := data.RenderChart(f, view, format, state); err != nil {
				f.Close()
				return fmt.Errorf("failed to render %s: %w", view, err)
			}
			return f.Close()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func newRenderCmd(flags *datasetFlags) *cobra.Command {
	v := &viewFlags{}
	var outDir, formatName string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render both charts as SVG or PNG files",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := plot.ParseFormat(formatName)
			if err != nil {
				return err
			}
			c, err := flags.load(cmd.Context(), flags.config())
			if err != nil {
				return err
			}
			defer c.Shutdown(cmd.Context())

			state, err := v.state(cmd, c.Data)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			paths, err := renderCharts(cmd.Context(), c.Data, outDir, format, state)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", p)
			}
			return nil
		},
	}
	v.register(cmd)
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "Directory for the chart files")
	cmd.Flags().StringVar(&formatName, "format", "svg", "Image format: svg or png")
	return cmd
}

func newExportCmd(flags *datasetFlags) *cobra.Command {
	v := &viewFlags{}
	var out string
	var charts bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the launches behind the scatter chart as XLSX",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := flags.load(cmd.Context(), flags.config())
			if err != nil {
				return err
			}
			defer c.Shutdown(cmd.Context())

			state, err := v.state(cmd, c.Data)
			if err != nil {
				return err
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				if err := c.Data.ExportRecords(f, state); err != nil {
					f.Close()
					return err
				}
				return f.Close()
			})
			if charts {
				g.Go(func() error {
					_, err := renderCharts(ctx, c.Data, filepath.Dir(out), plot.FormatSVG, state)
					return err
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	v.register(cmd)
	cmd.Flags().StringVar(&out, "out", "launches.xlsx", "Output XLSX path")
	cmd.Flags().BoolVar(&charts, "charts", false, "Also write both charts as SVG next to the export")
	return cmd
}

func newImportCmd(flags *datasetFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Load launches from --data (or synthetic data) into the --driver/--dsn database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.driver == "" || flags.dsn == "" {
				return fmt.Errorf("import needs --driver and --dsn")
			}

			// read from the file or generator, never from the target database
			cfg := flags.config()
			cfg.Database = config.DatabaseConfig{}
			source, err := container.New(cfg)
			if err != nil {
				return err
			}
			src, err := source.OpenSource()
			if err != nil {
				return err
			}

			store, err := sqlstore.Open(flags.driver, flags.dsn)
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := container.Import(cmd.Context(), src, store)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d launches from %s into %s\n",
				n, src.Describe(), store.Describe())
			return nil
		},
	}
}
