package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/proofreader/internal/catalog"
	"github.com/lehigh-university-libraries/proofreader/internal/lang"
	"github.com/lehigh-university-libraries/proofreader/internal/pagination"
	"github.com/lehigh-university-libraries/proofreader/internal/resource"
)

func newCatalogCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Scan catalog tools",
		Long: `Tools for the JSONL or Parquet scan catalogs that back index and
page resolution. Each record names a scan file, its page count, media
type and width, plus the index's display width and pagelist.`,
	}

	cmd.AddCommand(newCatalogInspectCmd(opts))
	cmd.AddCommand(newCatalogConvertCmd())

	return cmd
}

func newCatalogInspectCmd(opts *rootOptions) *cobra.Command {
	var limit int
	var preview int
	var name string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect catalog records and preview their page numbering",
		Example: `  # Inspect the first 5 records
  proofreader catalog inspect --catalog ./catalog.parquet --limit 5

  # Inspect all records, previewing 20 page labels each
  proofreader catalog inspect --catalog ./catalog.jsonl --limit 0 --preview 20

  # Inspect one record, labels in the configured language
  proofreader catalog inspect --catalog ./catalog.jsonl --name LoremIpsum.djvu`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.cfg.CatalogPath == "" {
				return fmt.Errorf("--catalog is required")
			}
			l, err := opts.cfg.Language()
			if err != nil {
				return err
			}
			if name != "" {
				return inspectRecord(cmd.OutOrStdout(), opts.cfg.CatalogPath, name, preview, l)
			}
			return executeInspect(cmd.Context(), cmd.OutOrStdout(), opts.cfg.CatalogPath, limit, preview, l)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of records to inspect (0 for all)")
	cmd.Flags().IntVar(&preview, "preview", 10, "Page labels to preview per record")
	cmd.Flags().StringVar(&name, "name", "", "Inspect only the record of this scan")

	return cmd
}

// inspectRecord validates the whole catalog, then prints the record of name.
func inspectRecord(w io.Writer, path, name string, preview int, l lang.Language) error {
	c, err := catalog.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	record, ok := c.Record(name)
	if !ok {
		return fmt.Errorf("%w: %s", resource.ErrResourceNotFound, name)
	}
	printRecord(w, record, preview, l)
	return nil
}

func executeInspect(ctx context.Context, w io.Writer, path string, limit, preview int, l lang.Language) error {
	loader := catalog.NewLoader(path)

	var records []catalog.IndexRecord
	var err error
	if limit > 0 {
		records, err = loader.LoadSample(limit)
	} else {
		records, err = loader.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	fmt.Fprintf(w, "Loaded %d records from %s\n", len(records), path)
	fmt.Fprintln(w, strings.Repeat("=", 80))

	for i, record := range records {
		select {
		case <-ctx.Done():
			fmt.Fprintln(w, "\nInspection interrupted.")
			return nil
		default:
		}

		fmt.Fprintf(w, "RECORD %d/%d\n", i+1, len(records))
		fmt.Fprintln(w, strings.Repeat("-", 80))
		printRecord(w, record, preview, l)
	}

	return nil
}

func printRecord(w io.Writer, record catalog.IndexRecord, preview int, l lang.Language) {
	scan := record.Resource()
	fmt.Fprintf(w, "Name:           %s\n", record.Name)
	fmt.Fprintf(w, "Media type:     %s\n", record.MediaType)
	fmt.Fprintf(w, "Pages:          %d\n", scan.Pages())
	fmt.Fprintf(w, "Multi-page:     %t\n", scan.MultiPage)
	fmt.Fprintf(w, "Width:          %d\n", record.Width)
	if record.DisplayWidth > 0 {
		fmt.Fprintf(w, "Display width:  %d\n", record.DisplayWidth)
	}

	if len(record.PageList) == 0 {
		fmt.Fprintln(w, "Pagelist:       (none)")
		fmt.Fprintln(w)
		return
	}

	keys := make([]string, 0, len(record.PageList))
	for k := range record.PageList {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	params := make([]string, 0, len(keys))
	for _, k := range keys {
		params = append(params, k+"="+record.PageList[k])
	}
	fmt.Fprintf(w, "Pagelist:       %s\n", strings.Join(params, " "))

	list, err := pagination.ParsePageList(record.PageList)
	if err != nil {
		fmt.Fprintf(w, "  Invalid:      %v\n\n", err)
		return
	}

	n := min(preview, scan.Pages())
	labels := make([]string, 0, n)
	for ordinal := 1; ordinal <= n; ordinal++ {
		label := list.Number(ordinal).Raw(l)
		if label == "" {
			label = "-"
		}
		labels = append(labels, label)
	}
	fmt.Fprintf(w, "Labels:         %s\n", strings.Join(labels, " "))
	if n < scan.Pages() {
		fmt.Fprintf(w, "                [... %d more pages ...]\n", scan.Pages()-n)
	}
	fmt.Fprintln(w)
}

func newCatalogConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "convert <input> <output.parquet>",
		Short:   "Convert a catalog to Parquet",
		Example: `  proofreader catalog convert ./catalog.jsonl ./catalog.parquet`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := catalog.NewLoader(args[0]).Load()
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}
			// refuse catalogs that would not load
			if _, err := catalog.New(records); err != nil {
				return err
			}
			if err := catalog.WriteParquet(args[1], records); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d records to %s\n", len(records), args[1])
			return nil
		},
	}
}
