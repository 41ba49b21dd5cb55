package cli

import (
	"github.com/lucasnoah/surgeon/internal/gitinfo"
	"github.com/spf13/cobra"
)

var gitDiffStaged bool

var gitCmd = &cobra.Command{
	Use:   "git",
	Short: "Inspect the git state of the workspace",
}

var gitStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show branch, staged, unstaged, and untracked files",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := gitinfo.GetStatus(&gitinfo.ExecGit{}, ".")
		if err != nil {
			return err
		}
		return printJSON(cmd, s)
	},
}

var gitDiffCmd = &cobra.Command{
	Use:   "diff <file>",
	Short: "Show the diff of a single file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := gitinfo.DiffFile(&gitinfo.ExecGit{}, ".", args[0], gitDiffStaged)
		if err != nil {
			return err
		}
		if out == "" {
			cmd.Println("no changes")
			return nil
		}
		cmd.Println(out)
		return nil
	},
}

var commitMsgCmd = &cobra.Command{
	Use:   "commit-msg",
	Short: "Suggest a commit message for the staged changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		sug, err := gitinfo.SuggestCommit(&gitinfo.ExecGit{}, ".")
		if err != nil {
			return err
		}
		return printJSON(cmd, sug)
	},
}

func init() {
	gitDiffCmd.Flags().BoolVar(&gitDiffStaged, "staged", false, "diff the staged version instead of the working tree")
	gitCmd.AddCommand(gitStatusCmd)
	gitCmd.AddCommand(gitDiffCmd)
}
