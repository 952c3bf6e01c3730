package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/salesboard/internal/config"
	"github.com/andresuchdata/salesboard/internal/domain"
	"github.com/andresuchdata/salesboard/internal/locale"
	"github.com/andresuchdata/salesboard/internal/report"
	"github.com/andresuchdata/salesboard/internal/service"
	"github.com/andresuchdata/salesboard/internal/source"
)

// newReportService builds an uncached service over --file or the configured source.
func newReportService(c *cli.Context) (*service.ReportService, error) {
	cfg := config.Load()

	var loader *source.Loader
	if path := fileFlag(c); path != "" {
		delim, err := source.ParseDelimiter(cfg.Source.Delimiter)
		if err != nil {
			return nil, err
		}
		loader = source.NewLoader(&source.FileFetcher{Path: path}, source.WithDelimiter(delim))
	} else {
		var err error
		loader, err = source.NewLoaderFromConfig(contextOf(c), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to configure source: %w", err)
		}
	}

	return service.NewReportService(loader, nil, cfg.Report), nil
}

// fileFlag and jsonFlag read the shared flags from whichever level set them, the
// command's own flags taking precedence over the app's.
func fileFlag(c *cli.Context) string {
	for _, cc := range c.Lineage() {
		if cc.IsSet("file") {
			return cc.String("file")
		}
	}
	return ""
}

func jsonFlag(c *cli.Context) bool {
	for _, cc := range c.Lineage() {
		if cc.IsSet("json") {
			return cc.Bool("json")
		}
	}
	return false
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
}

func units(v float64) string {
	return locale.FormatNumber(v, 0)
}

func runLoad(c *cli.Context) error {
	svc, err := newReportService(c)
	if err != nil {
		return err
	}

	st, err := svc.Status(contextOf(c))
	if err != nil {
		return err
	}

	out := c.App.Writer
	if jsonFlag(c) {
		return printJSON(out, st)
	}

	fmt.Fprintf(out, "source:  %s\n", st.Source)
	fmt.Fprintf(out, "status:  %s\n", st.Status)
	if st.Reason != "" {
		fmt.Fprintf(out, "reason:  %s\n", st.Reason)
	}
	fmt.Fprintf(out, "run id:  %s\n", st.RunID)
	fmt.Fprintf(out, "rows:    %d (canonical %d, dropped %d, unclassified %d)\n",
		st.Rows, st.Canonical, st.Dropped, st.Unclassified)

	tw := newTable(out)
	fmt.Fprintln(tw, "type\tlabel\tcount\t")
	for _, t := range domain.EntityTypes() {
		fmt.Fprintf(tw, "%s\t%s\t%d\t\n", t, t.Label(), st.Counts[t])
	}
	return tw.Flush()
}

func runGroups(c *cli.Context) error {
	t, err := domain.ParseEntityType(c.String("type"))
	if err != nil {
		return fmt.Errorf("%w: %q", err, c.String("type"))
	}

	svc, err := newReportService(c)
	if err != nil {
		return err
	}

	opts := report.ParseTableOptions(c.String("sort-field"), c.String("sort-direction"))
	table, err := svc.Table(contextOf(c), t, opts)
	if err != nil {
		return err
	}

	out := c.App.Writer
	if jsonFlag(c) {
		return printJSON(out, table)
	}

	tw := newTable(out)
	fmt.Fprintln(tw, "name\ttotal\tmonthly avg\t")
	for _, row := range table.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", row.Name, units(row.TotalUnits), locale.FormatNumber(row.MonthlyAverage, 2))
	}
	fmt.Fprintf(tw, "%s\t%s\t\t\n", "TOPLAM", units(table.GrandTotal))
	return tw.Flush()
}

func runExpiry(c *cli.Context) error {
	svc, err := newReportService(c)
	if err != nil {
		return err
	}

	r, err := svc.Expiry(contextOf(c))
	if err != nil {
		return err
	}

	out := c.App.Writer
	buckets := domain.ExpiryBuckets()
	if c.Bool("dashboard") {
		if jsonFlag(c) {
			return printJSON(out, r.Dashboard())
		}
		buckets = buckets[:2]
	} else if jsonFlag(c) {
		return printJSON(out, r)
	}

	tw := newTable(out)
	for _, b := range buckets {
		br := r.Bucket(b)
		fmt.Fprintf(tw, "%s\t%s\t%%%s\t\n", b, units(br.TotalUnits), locale.FormatNumber(br.Percent, 2))
		for _, item := range br.Items {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t\n", item.Name, units(item.TotalUnits), item.ExpiryDate)
		}
	}
	fmt.Fprintf(tw, "stock\t%s\t\t\n", units(r.StockTotal))
	return tw.Flush()
}

func runSales(c *cli.Context) error {
	p, err := report.ParsePeriod(c.String("period"))
	if err != nil {
		return err
	}

	svc, err := newReportService(c)
	if err != nil {
		return err
	}

	entries, err := svc.PeriodSales(contextOf(c), p, c.Int("limit"))
	if err != nil {
		return err
	}

	out := c.App.Writer
	if jsonFlag(c) {
		return printJSON(out, entries)
	}

	fmt.Fprintf(out, "%s\n", p.Label())
	tw := newTable(out)
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t\n", e.Name, units(e.Sales))
	}
	return tw.Flush()
}

func runLevels(c *cli.Context) error {
	p, err := report.ParsePeriod(c.String("period"))
	if err != nil {
		return err
	}

	svc, err := newReportService(c)
	if err != nil {
		return err
	}

	levels, err := svc.StockLevels(contextOf(c), p)
	if err != nil {
		return err
	}

	out := c.App.Writer
	if jsonFlag(c) {
		return printJSON(out, levels)
	}

	fmt.Fprintf(out, "%s\n", p.Label())
	tw := newTable(out)
	fmt.Fprintln(tw, "name\tsales\tremaining\t")
	for _, l := range levels {
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", l.Name, units(l.Sales), units(l.Remaining))
	}
	return tw.Flush()
}

func contextOf(c *cli.Context) context.Context {
	if c.Context != nil {
		return c.Context
	}
	return context.Background()
}
