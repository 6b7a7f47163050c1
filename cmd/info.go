package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/proofreader/internal/info"
)

func newInfoCmd(opts *rootOptions) *cobra.Command {
	var props string
	var format string

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show the proofreading namespaces and quality levels",
		Example: `  proofreader info
  proofreader info --prop qualitylevels --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := opts.cfg.Info().Query(info.ParseProps(props))
			if err != nil {
				return err
			}

			switch format {
			case "yaml":
				encoder := yaml.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent(2)
				if err := encoder.Encode(result); err != nil {
					return fmt.Errorf("failed to marshal YAML: %w", err)
				}
				return encoder.Close()
			case "json":
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(result)
			default:
				return fmt.Errorf("unsupported format: %s", format)
			}
		},
	}

	cmd.Flags().StringVar(&props, "prop", "", "Props to show, separated by |: namespaces, qualitylevels (default all)")
	cmd.Flags().StringVar(&format, "format", "yaml", "Output format: yaml or json")

	return cmd
}
