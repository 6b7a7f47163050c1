package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/proofreader/internal/lang"
	"github.com/lehigh-university-libraries/proofreader/internal/proofread"
)

func newPagesCmd(opts *rootOptions) *cobra.Command {
	var format string
	var langCode string

	cmd := &cobra.Command{
		Use:   "pages <index-id>",
		Short: "List the page labels and quality of an index",
		Example: `  proofreader pages LoremIpsum.djvu --catalog ./catalog.jsonl
  proofreader pages "Index:LoremIpsum.djvu" --format csv --lang bn`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp()
			if err != nil {
				return err
			}
			l, err := a.language(opts, langCode)
			if err != nil {
				return err
			}
			store, err := opts.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			pages, err := opts.newViewer(a, store).Pages(cmd.Context(), args[0], l)
			if err != nil {
				return err
			}
			return printPages(cmd.OutOrStdout(), format, args[0], l, pages)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json or csv")
	cmd.Flags().StringVar(&langCode, "lang", "", "Language code (default from config)")

	return cmd
}

func printPages(w io.Writer, format, index string, l lang.Language, pages []proofread.PageLabel) error {
	switch format {
	case "text":
		return printTextPages(w, index, l, pages)
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(pages)
	case "csv":
		return printCSVPages(w, pages)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func printTextPages(w io.Writer, index string, l lang.Language, pages []proofread.PageLabel) error {
	fmt.Fprintln(w, "========================================")
	fmt.Fprintf(w, "Pages of %s (%d)\n", index, len(pages))
	fmt.Fprintf(w, "Language: %s\n", l.Tag())
	fmt.Fprintln(w, "========================================")

	counts := make(map[string]int)
	for _, p := range pages {
		label := p.RawLabel
		if p.Empty {
			label = "(empty)"
		}
		fmt.Fprintf(w, "%5d  %-12s %s\n", p.Ordinal, label, p.Category)
		counts[p.Category]++
	}

	fmt.Fprintln(w, "\nSummary:")
	for _, p := range pages {
		if n, ok := counts[p.Category]; ok {
			fmt.Fprintf(w, "  %s: %d\n", p.Category, n)
			delete(counts, p.Category)
		}
	}
	return nil
}

func printCSVPages(w io.Writer, pages []proofread.PageLabel) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"Ordinal", "Label", "Numeric", "Empty", "Level", "Category"}); err != nil {
		return err
	}
	for _, p := range pages {
		row := []string{
			strconv.Itoa(p.Ordinal),
			p.RawLabel,
			strconv.FormatBool(p.Numeric),
			strconv.FormatBool(p.Empty),
			strconv.Itoa(int(p.Level)),
			p.Category,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
