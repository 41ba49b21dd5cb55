package cli

import (
	"github.com/lucasnoah/surgeon/internal/workspace"
	"github.com/spf13/cobra"
)

var (
	findType   string
	findDepth  int
	findHidden bool
	findMax    int
)

var findCmd = &cobra.Command{
	Use:   "find <pattern> [path]",
	Short: "Find files and directories by glob pattern",
	Long: `Searches for entries whose names match a glob pattern. Patterns with a
path separator or ** match against the path relative to the search root;
bare patterns match base names. Examples:

  surgeon find '*.go'
  surgeon find 'internal/**/*_test.go'
  surgeon find node_modules --type directory`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 2 {
			root = args[1]
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		res, err := workspace.FindByName(root, args[0], workspace.FindOptions{
			MaxDepth:      findDepth,
			FileType:      findType,
			IncludeHidden: findHidden,
			MaxResults:    findMax,
			Excludes:      cfg.Excludes,
		})
		if err != nil {
			return err
		}
		return printJSON(cmd, res)
	},
}

func init() {
	findCmd.Flags().StringVar(&findType, "type", "any", "file, directory, or any")
	findCmd.Flags().IntVar(&findDepth, "depth", 10, "maximum search depth")
	findCmd.Flags().BoolVar(&findHidden, "hidden", false, "include dotfiles")
	findCmd.Flags().IntVar(&findMax, "max", 100, "result cap")
}
