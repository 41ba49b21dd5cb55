package cli

import (
	"fmt"

	"github.com/lucasnoah/surgeon/internal/journal"
	"github.com/spf13/cobra"
)

var journalLimit int

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect the transaction journal",
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent transactions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openJournal()
		if err != nil {
			return err
		}
		defer db.Close()

		txns, err := db.Recent(journalLimit)
		if err != nil {
			return err
		}
		return printJSON(cmd, txns)
	},
}

var journalShowCmd = &cobra.Command{
	Use:   "show <transaction-id>",
	Short: "Show a transaction and its per-file records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openJournal()
		if err != nil {
			return err
		}
		defer db.Close()

		txn, err := db.Get(args[0])
		if err != nil {
			return err
		}
		files, err := db.Files(args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, struct {
			Transaction *journal.Transaction `json:"transaction"`
			Files       []journal.FileRecord `json:"files"`
		}{txn, files})
	},
}

var journalHistoryCmd = &cobra.Command{
	Use:   "history <path>",
	Short: "Show every recorded edit of a file, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openJournal()
		if err != nil {
			return err
		}
		defer db.Close()

		recs, err := db.FileHistory(args[0], journalLimit)
		if err != nil {
			return err
		}
		return printJSON(cmd, recs)
	},
}

func openJournal() (*journal.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Journal.Disabled {
		return nil, fmt.Errorf("journal is disabled in config")
	}
	path, err := cfg.JournalPath()
	if err != nil {
		return nil, err
	}
	db, err := journal.Open(path)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func init() {
	journalCmd.PersistentFlags().IntVar(&journalLimit, "limit", 20, "maximum rows to return")
	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalShowCmd)
	journalCmd.AddCommand(journalHistoryCmd)
}
