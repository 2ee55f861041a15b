package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/spektr-org/salesdesk/config"
	"github.com/spektr-org/salesdesk/crm"
	"github.com/spektr-org/salesdesk/dashboard"
	"github.com/spektr-org/salesdesk/dataset"
	"github.com/spektr-org/salesdesk/engine"
)

var (
	// List flags, shared by view and metrics
	viewFacets []string
	viewQuery  string
	viewText   []string
	viewSort   string
	viewMins   []string
	viewFormat string
	viewFile   string

	initForce bool
)

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&viewFacets, "facet", nil, "Facet filter key=value[,value] (repeatable)")
	cmd.Flags().StringVarP(&viewQuery, "query", "q", "", "Case-insensitive search text")
	cmd.Flags().StringSliceVar(&viewText, "text", nil, "Fields searched by --query (default: the list's search fields)")
	cmd.Flags().StringVar(&viewSort, "sort", "", "Sort field[:asc|desc]")
	cmd.Flags().StringArrayVar(&viewMins, "min", nil, "Minimum measure key=n (repeatable)")
	cmd.Flags().StringVarP(&viewFormat, "format", "f", formatTable, "Output format: json, pretty, table, csv")
}

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List the dashboard pages and the lists behind them",
	Args:  cobra.NoArgs,
	RunE:  runPages,
}

var viewCmd = &cobra.Command{
	Use:   "view [list]",
	Short: "Print a filtered, sorted list",
	Long: `Print a list after applying facet filters, search, minimums and sort.

The list is a name (accounts, pipeline, quotations, screens, campaigns,
tasks) or a page path (/accounts). With --file the CSV is loaded instead and
its schema is discovered from the data.

Unknown field names are errors.`,
	Example: `  salesdesk view accounts --facet region=North,West --sort total_outstanding:desc
  salesdesk view screens --facet city=Mumbai --min seats=200 --format csv
  salesdesk view --file jira.csv --facet status=Done --query login`,
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

var metricsCmd = &cobra.Command{
	Use:   "metrics <list>",
	Short: "Print the summary metrics of a list",
	Args:  cobra.ExactArgs(1),
	RunE:  runMetrics,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to --config",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Print the schema discovered for a CSV file",
	Args:  cobra.NoArgs,
	RunE:  runDiscover,
}

func runPages(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	if isJSON(viewFormat) {
		return writeJSON(w, dashboard.Pages, viewFormat)
	}
	rows := make([][]string, len(dashboard.Pages))
	for i, p := range dashboard.Pages {
		rows[i] = []string{p.Path, p.Label, p.Title, p.List}
	}
	return writeRows(w, []string{"Path", "Label", "Title", "List"}, rows, viewFormat)
}

func runView(cmd *cobra.Command, args []string) error {
	st, err := listState()
	if err != nil {
		return err
	}
	if viewFile != "" {
		return viewDataset(cmd.OutOrStdout(), st)
	}
	if len(args) == 0 {
		return fmt.Errorf("a list name or --file is required")
	}

	l, res, err := deriveList(args[0], st)
	if err != nil {
		return err
	}
	return writeResult(cmd.OutOrStdout(), l.Name, res, catalogColumns(l.Catalog), viewFormat)
}

func runMetrics(cmd *cobra.Command, args []string) error {
	st, err := listState()
	if err != nil {
		return err
	}
	l, res, err := deriveList(args[0], st)
	if err != nil {
		return err
	}

	var breakdown *engine.TableData
	if dim, groups, ok := l.Breakdown(res.View); ok {
		breakdown = engine.BuildGroupTable(engine.LabelForField(l.Name)+" by "+engine.LabelForField(dim), dim, groups)
	}
	return writeMetrics(cmd.OutOrStdout(), res, breakdown, viewFormat)
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(configPath); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	}
	if err := config.Default().Save(configPath); err != nil {
		return err
	}
	appLog.Infow("config written", "path", configPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configPath)
	return nil
}

func runDiscover(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(viewFile)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	_, sch, err := dataset.Load(data, discoverOptions())
	if err != nil {
		return err
	}
	appLog.Infow("schema discovered", "name", sch.Name, "dimensions", len(sch.Dimensions), "measures", len(sch.Measures), "skipped", len(sch.Skipped))

	format := viewFormat
	if !isJSON(format) {
		format = formatPretty
	}
	return writeJSON(cmd.OutOrStdout(), sch, format)
}

// deriveList runs the seeded list name through the engine in strict mode.
func deriveList(name string, st dashboard.ListState) (dashboard.List, *engine.Result, error) {
	l, err := dashboard.LookupList(name)
	if err != nil {
		return dashboard.List{}, nil, err
	}
	if len(viewText) > 0 {
		l.Catalog.TextFields = viewText
	}

	d := crm.SeedDataset()
	extra, err := dashboard.ExtraMetrics(cfg, l, d)
	if err != nil {
		return dashboard.List{}, nil, err
	}
	res, err := l.Derive(d, st, extra, engine.WithStrictFields(), engine.WithLogger(appLog.Zap()))
	if err != nil {
		return dashboard.List{}, nil, err
	}
	appLog.Debugw("list derived", "list", l.Name, "count", res.Count, "total", res.Total)
	return l, res, nil
}

// viewDataset runs an ad-hoc CSV through the engine. Every measure is summed
// over the filtered rows.
func viewDataset(w io.Writer, st dashboard.ListState) error {
	data, err := os.ReadFile(viewFile)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	view, sch, err := dataset.Load(data, discoverOptions())
	if err != nil {
		return err
	}

	text := viewText
	if len(text) == 0 {
		text = sch.TextKeys()
	}
	metrics := []engine.Metric{{Name: "showing", Scope: engine.ScopeFiltered, Reducer: engine.ReduceCount}}
	for _, m := range sch.Measures {
		if !m.Synthetic {
			metrics = append(metrics, engine.Metric{Name: m.Key, Scope: engine.ScopeFiltered, Reducer: engine.ReduceSum, Measure: m.Key})
		}
	}

	res, err := engine.Execute(view, st.Criteria(text), metrics, engine.WithStrictFields(), engine.WithLogger(appLog.Zap()))
	if err != nil {
		return err
	}
	return writeResult(w, sch.Name, res, schemaColumns(sch), viewFormat)
}

func discoverOptions() dataset.DiscoverOptions {
	opts := dataset.DefaultDiscoverOptions()
	opts.Name = filepath.Base(viewFile)
	return opts
}

// listState turns the list flags into dashboard state.
func listState() (dashboard.ListState, error) {
	facets, err := parseFacets(viewFacets)
	if err != nil {
		return dashboard.ListState{}, err
	}
	sort, err := parseSort(viewSort)
	if err != nil {
		return dashboard.ListState{}, err
	}
	floors, err := parseFloors(viewMins)
	if err != nil {
		return dashboard.ListState{}, err
	}
	return dashboard.ListState{Facets: facets, Query: viewQuery, Sort: sort, Floors: floors}, nil
}
