package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/lucasnoah/surgeon/internal/config"
	"github.com/lucasnoah/surgeon/internal/edit"
	"github.com/lucasnoah/surgeon/internal/journal"
	"github.com/spf13/cobra"
)

var (
	editApply      bool
	editCheck      bool
	editNoFailFast bool
	editRoot       string
)

var editCmd = &cobra.Command{
	Use:   "edit [batch.json]",
	Short: "Apply a batch of edits as one transaction",
	Long: `Reads an edit batch (JSON) from a file or stdin and runs it. The default
is a dry run that prints diffs without touching disk; pass --apply to
write. With --check only match validity is reported. When any file fails
under fail-fast, already-written files are rolled back from backups.

Batch format:

  {
    "files": [
      {"path": "main.go", "edits": [{"search": "...", "replace": "..."}]}
    ]
  }

Edits may carry context_before/context_after anchors or line_start and
line_end bounds to pin down ambiguous matches.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readBatchInput(args)
		if err != nil {
			return err
		}
		batch, err := edit.DecodeBatch(data)
		if err != nil {
			return err
		}

		// Flags override the batch's own settings.
		if editCheck {
			batch.CheckOnly = true
		}
		if editApply {
			batch.DryRun = false
		}
		if editNoFailFast {
			batch.FailFast = false
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		outcome, err := edit.Run(batch, edit.Options{
			Root:          editRoot,
			MaxFileSize:   cfg.Edit.MaxFileSize,
			MinConfidence: cfg.Edit.MinConfidence,
			BackupSuffix:  cfg.Edit.BackupSuffix,
			RejectSuffix:  cfg.Edit.RejectSuffix,
		})
		if err != nil {
			return err
		}

		recordOutcome(cmd, cfg, outcome)

		if err := printJSON(cmd, outcome); err != nil {
			return err
		}
		if !outcome.Success {
			return fmt.Errorf("transaction %s: %s", outcome.ID, outcome.Summary)
		}
		return nil
	},
}

func readBatchInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read batch file: %w", err)
	}
	return data, nil
}

// recordOutcome journals the transaction. Best-effort: a broken journal
// must never fail an edit that already ran.
func recordOutcome(cmd *cobra.Command, cfg *config.Config, o *edit.TransactionOutcome) {
	if cfg.Journal.Disabled {
		return
	}
	path, err := cfg.JournalPath()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: journal unavailable: %v\n", err)
		return
	}
	db, err := journal.Open(path)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: journal unavailable: %v\n", err)
		return
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: journal migrate: %v\n", err)
		return
	}
	if err := db.Record(o); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: journal record: %v\n", err)
	}
}

func init() {
	editCmd.Flags().BoolVar(&editApply, "apply", false, "write changes to disk (default is dry run)")
	editCmd.Flags().BoolVar(&editCheck, "check", false, "validate matches only, no diffs")
	editCmd.Flags().BoolVar(&editNoFailFast, "no-fail-fast", false, "best-effort mode: apply what matches, write .rej artifacts for the rest")
	editCmd.Flags().StringVar(&editRoot, "root", "", "directory that relative paths resolve against")
}
