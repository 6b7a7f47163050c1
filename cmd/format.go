package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/proofreader/internal/lang"
	"github.com/lehigh-university-libraries/proofreader/internal/pagination"
)

func newFormatCmd(opts *rootOptions) *cobra.Command {
	var (
		mode     string
		langCode string
		empty    bool
		verso    bool
		raw      bool
	)

	cmd := &cobra.Command{
		Use:   "format <number>",
		Short: "Render a page number in a display mode and language",
		Long: `Render a raw page number the way it appears on a page.

Modes: normal, roman, highroman, folio, folioroman, foliohighroman.
Non-numeric input is printed as given.`,
		Example: `  proofreader format 12 --mode highroman        # XII
  proofreader format 12 --mode folio --verso     # 12<sup>v</sup>
  proofreader format 12 --lang fa                # ۱۲`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			displayMode, err := pagination.ParseDisplayMode(mode)
			if err != nil {
				return err
			}

			l, err := opts.cfg.Language()
			if err != nil {
				return err
			}
			if langCode != "" {
				registry, err := opts.cfg.Languages()
				if err != nil {
					return err
				}
				if l, err = registry.Lookup(langCode); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), render(pagination.New(args[0], displayMode, empty, !verso), l, raw))
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", string(pagination.DisplayNormal), "Display mode")
	cmd.Flags().StringVar(&langCode, "lang", "", "Language code (default from config)")
	cmd.Flags().BoolVar(&empty, "empty", false, "Render as an unnumbered page")
	cmd.Flags().BoolVar(&verso, "verso", false, "Folio modes: render the verso side")
	cmd.Flags().BoolVar(&raw, "raw", false, "Plain text, without folio markup")

	return cmd
}

func render(p pagination.PageNumber, l lang.Language, raw bool) string {
	if raw {
		return p.Raw(l)
	}
	return p.Format(l)
}
