package cli

import (
	"fmt"
	"time"

	"github.com/lucasnoah/surgeon/internal/testrun"
	"github.com/spf13/cobra"
)

var (
	testCommand string
	testTimeout string
)

var testCmd = &cobra.Command{
	Use:   "test [path]",
	Short: "Run the configured test command and report structured results",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		command := cfg.Test.Command
		if testCommand != "" {
			command = testCommand
		}
		timeoutStr := cfg.Test.Timeout
		if testTimeout != "" {
			timeoutStr = testTimeout
		}
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return fmt.Errorf("bad timeout %q: %w", timeoutStr, err)
		}

		runner := testrun.NewRunner(&testrun.ExecRunner{})
		res, err := runner.Run(dir, command, timeout)
		if err != nil {
			return err
		}
		if err := printJSON(cmd, res); err != nil {
			return err
		}
		if !res.Passed {
			return fmt.Errorf("tests failed: %s", res.Summary)
		}
		return nil
	},
}

func init() {
	testCmd.Flags().StringVar(&testCommand, "command", "", "test command to run (overrides config)")
	testCmd.Flags().StringVar(&testTimeout, "timeout", "", "timeout, e.g. 90s or 5m (overrides config)")
}
