package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/proofreader/internal/quality"
)

// qualityFlags describe a page state and the user acting on it.
type qualityFlags struct {
	level  string
	setBy  string
	user   string
	groups []string
}

func (f *qualityFlags) register(cmd *cobra.Command, levelFlag string) {
	cmd.Flags().StringVar(&f.level, levelFlag, "1", "Current quality level, 0-4 or its name")
	cmd.Flags().StringVar(&f.setBy, "set-by", "", "User who set the current level")
	cmd.Flags().StringVar(&f.user, "user", "", "Acting user")
	cmd.Flags().StringSliceVar(&f.groups, "groups", nil, "Groups of the acting user")
}

func (f *qualityFlags) state() (quality.State, quality.User, error) {
	level, err := quality.ParseLevel(f.level)
	if err != nil {
		return quality.State{}, quality.User{}, err
	}
	return quality.State{Level: level, User: f.setBy}, quality.User{Name: f.user, Groups: f.groups}, nil
}

func newQualityCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quality",
		Short: "Inspect proofreading quality transitions",
		Long: `Quality levels: 0 without text, 1 not proofread, 2 problematic,
3 proofread, 4 validated. Users in elevated_users or elevated_groups may
set any level; others may only move between 0 and 1.`,
	}

	var levelsFlags qualityFlags
	levelsCmd := &cobra.Command{
		Use:     "levels",
		Short:   "List the levels a user may choose for a page",
		Example: `  proofreader quality levels --level proofread --set-by Alice --user Bob --groups proofreaders`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			old, user, err := levelsFlags.state()
			if err != nil {
				return err
			}
			categories := opts.cfg.Categories()
			for _, l := range opts.cfg.Machine().AllowedLevels(old, user) {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", int(l), l, categories.Label(l))
			}
			return nil
		},
	}
	levelsFlags.register(levelsCmd, "level")

	var checkFlags qualityFlags
	var to string
	checkCmd := &cobra.Command{
		Use:     "check",
		Short:   "Check whether a user may change a page's level",
		Example: `  proofreader quality check --from validated --set-by Alice --to proofread --user Alice --groups proofreaders`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			old, user, err := checkFlags.state()
			if err != nil {
				return err
			}
			target, err := quality.ParseLevel(to)
			if err != nil {
				return err
			}
			if err := opts.cfg.Machine().Check(old, target, user); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "allowed: %s -> %s by %s\n", old.Level, target, displayUser(user))
			return nil
		},
	}
	checkFlags.register(checkCmd, "from")
	checkCmd.Flags().StringVar(&to, "to", "", "Requested quality level, 0-4 or its name")
	_ = checkCmd.MarkFlagRequired("to")

	cmd.AddCommand(levelsCmd, checkCmd)
	return cmd
}

func displayUser(u quality.User) string {
	name := u.Name
	if name == "" {
		name = "anonymous"
	}
	if len(u.Groups) > 0 {
		name += " (" + strings.Join(u.Groups, ", ") + ")"
	}
	return name
}
