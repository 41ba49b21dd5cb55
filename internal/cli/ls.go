package cli

import (
	"github.com/lucasnoah/surgeon/internal/workspace"
	"github.com/spf13/cobra"
)

var (
	lsDepth  int
	lsHidden bool
	lsMax    int
)

var lsCmd = &cobra.Command{
	Use:   "ls [path]",
	Short: "List a directory, directories first",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "."
		if len(args) == 1 {
			path = args[0]
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		l, err := workspace.ListDir(path, workspace.ListOptions{
			MaxDepth:      lsDepth,
			IncludeHidden: lsHidden,
			MaxEntries:    lsMax,
			Excludes:      cfg.Excludes,
		})
		if err != nil {
			return err
		}
		return printJSON(cmd, l)
	},
}

func init() {
	lsCmd.Flags().IntVar(&lsDepth, "depth", 1, "recursion depth")
	lsCmd.Flags().BoolVar(&lsHidden, "hidden", false, "include dotfiles")
	lsCmd.Flags().IntVar(&lsMax, "max", 200, "entry cap")
}
