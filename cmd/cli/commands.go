package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"gogeomap/adapters/excel"
	"gogeomap/app"
	"gogeomap/domain/dataset"
	"gogeomap/internal"
	"gogeomap/internal/config"
	"gogeomap/internal/mapset"
	"gogeomap/internal/testkit"
	"gogeomap/ports"

	"github.com/spf13/cobra"
)

// runtime bundles what every data command needs
type runtime struct {
	config  *config.Config
	service *app.MapSetService
	reader  *excel.DataReader
}

func newRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	internal.SetDefaultLevel(cfg.Logging.Level)

	service, err := app.NewMapSetService(app.MapSetServiceConfigFrom(cfg))
	if err != nil {
		return nil, err
	}

	readerConfig := excel.DefaultReaderConfig()
	readerConfig.MaxBytes = 0 // local files are not upload-limited
	return &runtime{config: cfg, service: service, reader: excel.NewDataReader(readerConfig)}, nil
}

func (rt *runtime) readTable(path string) (*dataset.Table, error) {
	return rt.reader.ReadFile(path)
}

func newColumnsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "columns [data-file]",
		Short: "List columns and the detected latitude/longitude columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			table, err := rt.readTable(args[0])
			if err != nil {
				return err
			}
			printTableInfo(cmd.OutOrStdout(), rt.service.Inspect(table))
			return nil
		},
	}
}

func newGenerateCmd() *cobra.Command {
	var groups, labels []string
	var noMap bool
	var out string

	cmd := &cobra.Command{
		Use:   "generate [data-file]",
		Short: "Render one map per group and write them as a zip archive",
		Long: `Render one Leaflet map per distinct value of the first --group column.

Rows without valid coordinates are dropped. When no coordinate columns are
found, or --no-map is given, a grouping summary is printed instead.

Example: gogeomap generate sites.xlsx --group region --label name --out maps.zip`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			table, err := rt.readTable(args[0])
			if err != nil {
				return err
			}

			sel := ports.Selection{GroupColumns: groups, LabelColumns: labels, VisualizeMap: !noMap}
			result, err := rt.service.GenerateMapSet(cmd.Context(), table, sel)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if !result.HasMaps() {
				fmt.Fprintln(w, result.Message)
				printSummary(w, result.Summary)
				return nil
			}

			if out == "" {
				out = result.ArchiveName
			}
			if err := os.WriteFile(out, result.Archive, 0o644); err != nil {
				return fmt.Errorf("failed to write archive: %w", err)
			}

			fmt.Fprintln(w, result.Message)
			printMaps(w, result.Maps)
			fmt.Fprintf(w, "Wrote %s (%d bytes, %d rows dropped)\n", out, len(result.Archive), result.DroppedRows)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&groups, "group", nil, "Grouping column (repeatable; the first partitions the maps)")
	cmd.Flags().StringArrayVar(&labels, "label", nil, "Popup label column (repeatable)")
	cmd.Flags().BoolVar(&noMap, "no-map", false, "Skip map generation and print the grouping summary")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Archive path (default from ARCHIVE_NAME)")
	return cmd
}

func newSummaryCmd() *cobra.Command {
	var columns []string

	cmd := &cobra.Command{
		Use:   "summary [data-file]",
		Short: "Print the distinct combinations of the selected columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			table, err := rt.readTable(args[0])
			if err != nil {
				return err
			}

			result, err := rt.service.GenerateMapSet(cmd.Context(), table, ports.Selection{GroupColumns: columns})
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), result.Summary)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&columns, "column", nil, "Column to summarize (repeatable)")
	return cmd
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [archive.zip]",
		Short: "List the maps inside a generated archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read archive: %w", err)
			}
			entries, err := mapset.ReadArchive(data)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tBYTES")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%d\n", e.Name, len(e.Content))
			}
			return tw.Flush()
		},
	}
}

func newSampleCmd() *cobra.Command {
	siteConfig := testkit.DefaultSiteConfig()
	var regions string
	var out string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a synthetic site dataset with coordinates as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if regions != "" {
				siteConfig.Regions = strings.Split(regions, ",")
			}
			generator := testkit.NewSiteDataGenerator(siteConfig)

			if out == "" || out == "-" {
				return generator.WriteCSV(cmd.OutOrStdout())
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := generator.WriteCSV(f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&regions, "regions", "", "Comma separated region names")
	cmd.Flags().IntVar(&siteConfig.SitesPerRegion, "per-region", siteConfig.SitesPerRegion, "Sites per region")
	cmd.Flags().Float64Var(&siteConfig.InvalidRate, "invalid-rate", siteConfig.InvalidRate, "Share of rows with broken coordinates")
	cmd.Flags().Int64Var(&siteConfig.Seed, "seed", siteConfig.Seed, "Random seed for deterministic output")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func printTableInfo(w io.Writer, info ports.TableInfo) {
	fmt.Fprintf(w, "Source:      %s (%s)\n", info.Source, info.Format)
	fmt.Fprintf(w, "Rows:        %d\n", info.RowCount)
	fmt.Fprintf(w, "Fingerprint: %s\n", info.Fingerprint.Short())
	fmt.Fprintf(w, "Latitude:    %s\n", orNone(info.Coordinates.Latitude))
	fmt.Fprintf(w, "Longitude:   %s\n", orNone(info.Coordinates.Longitude))
	fmt.Fprintf(w, "Map:         %t\n", info.MapAvailable)
	fmt.Fprintln(w, "Columns:")
	for _, h := range info.Headers {
		fmt.Fprintf(w, "  %s\n", h)
	}
}

func printMaps(w io.Writer, docs []mapset.MapDocument) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MAP\tGROUP\tPOINTS\tCENTER")
	for _, d := range docs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.5f, %.5f\n", d.Name, d.Group, d.PointCount, d.Center.Lat, d.Center.Lon)
	}
	tw.Flush()
}

func printSummary(w io.Writer, summary *mapset.Summary) {
	if summary == nil {
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(summary.Columns, "\t"))
	for _, row := range summary.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
	fmt.Fprintf(w, "(%d distinct combination(s))\n", summary.Distinct)
}

func orNone(s string) string {
	if s == "" {
		return "(not found)"
	}
	return s
}
