package cli

import (
	"github.com/lucasnoah/surgeon/internal/workspace"
	"github.com/spf13/cobra"
)

var outlineCmd = &cobra.Command{
	Use:   "outline <file>",
	Short: "Show the top-level declarations of a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := workspace.OutlineFile(args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, o)
	},
}
