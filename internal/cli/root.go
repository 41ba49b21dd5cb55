package cli

import (
	"encoding/json"
	"fmt"

	"github.com/lucasnoah/surgeon/internal/config"
	"github.com/spf13/cobra"
)

var version = "dev"

func SetVersion(v string) {
	version = v
}

var configFile string

var rootCmd = &cobra.Command{
	Use:   "surgeon",
	Short: "surgeon — transactional multi-file editing for coding agents",
	Long: `surgeon applies batches of search/replace edits across files as a single
transaction: every file succeeds or every file is rolled back. Matching
falls through a cascade of strategies (exact, whitespace-normalized,
context-anchored, line-range) and failed matches get fuzzy suggestions.

Companion commands cover the rest of an agent's workspace loop: listing
and finding files, outlining source, git status and diffs, commit message
suggestions, and running the test suite. Transactions are journaled in
~/.surgeon/surgeon.db.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to surgeon config file")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(outlineCmd)
	rootCmd.AddCommand(gitCmd)
	rootCmd.AddCommand(commitMsgCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(configCmd)
}

func loadConfig() (*config.Config, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	return config.LoadDefault()
}

// printJSON writes v as indented JSON, the output format every agent-facing
// command shares.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
