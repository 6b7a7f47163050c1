package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/proofreader/internal/resource"
)

func newResolveCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve index and page names to their scans",
	}

	pageCmd := &cobra.Command{
		Use:   "page <page-id>",
		Short: "Resolve a page name to its scan and 1-based page",
		Example: `  proofreader resolve page "Page:LoremIpsum.djvu/3" --catalog ./catalog.jsonl
  proofreader resolve page LoremIpsum.djvu/djvu/3 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp()
			if err != nil {
				return err
			}
			res, err := a.resolver.ResolveForPage(cmd.Context(), args[0])
			if err != nil && !errors.Is(err, resource.ErrPageNumberNotFound) {
				return err
			}
			if res.Resource != nil {
				if perr := printResolution(cmd.OutOrStdout(), format, res); perr != nil {
					return perr
				}
			}
			return err
		},
	}

	indexCmd := &cobra.Command{
		Use:     "index <index-id>",
		Short:   "Resolve an index name to its scan",
		Example: `  proofreader resolve index "Index:LoremIpsum.djvu"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp()
			if err != nil {
				return err
			}
			scan, err := a.resolver.ResolveForIndex(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printResolution(cmd.OutOrStdout(), format, resource.Resolution{Resource: scan})
		},
	}

	ordinalCmd := &cobra.Command{
		Use:     "ordinal <page-id>",
		Short:   "Print the 1-based page of a page name without looking up its scan",
		Example: `  proofreader resolve ordinal "Page:LoremIpsum.djvu/3"   # 3`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := resource.NewResolver(nil, opts.cfg.ResolverOptions()...)
			ordinal, err := resolver.OrdinalOf(args[0])
			if err != nil {
				return err
			}
			if format == "json" {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]int{"ordinal": ordinal})
			}
			fmt.Fprintln(cmd.OutOrStdout(), ordinal)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&format, "format", "text", "Output format: text or json")
	cmd.AddCommand(pageCmd, indexCmd, ordinalCmd)
	return cmd
}

func printResolution(w io.Writer, format string, res resource.Resolution) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(res)
	case "text":
		scan := res.Resource
		fmt.Fprintf(w, "Scan:       %s\n", scan.Name)
		fmt.Fprintf(w, "Pages:      %d\n", scan.Pages())
		fmt.Fprintf(w, "Multi-page: %t\n", scan.MultiPage)
		if scan.MediaType != "" {
			fmt.Fprintf(w, "Media type: %s\n", scan.MediaType)
		}
		if res.HasOrdinal() {
			fmt.Fprintf(w, "Page:       %d\n", res.Ordinal)
			if !res.InRange() {
				fmt.Fprintf(w, "Warning:    page %d is beyond the end of the scan\n", res.Ordinal)
			}
		} else if res.NeedsExplicitPage() {
			fmt.Fprintln(w, "Page:       none (multi-page scan needs an explicit page)")
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
