package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/leandrochavesf/gofinances/ledger-backend/internal/domain"
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import transactions from a CSV file",
		Long: `Import rows of title,type,value,category after a header line.
Malformed rows are skipped and missing categories are created.
The file is staged in the upload store first, so the original is left in place.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]

	rt, err := openRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	uploads, err := rt.uploadStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize upload store: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	key, err := uploads.Save(ctx, filepath.Base(path), f)
	f.Close()
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", path, err)
	}

	importService := service.NewImportService(uploads, rt.categoryRepo, rt.transactionRepo, rt.transactor)
	transactions, err := importService.ImportTransactions(ctx, key)
	if err != nil {
		return err
	}

	log.Info().Str("file", path).Int("count", len(transactions)).Msg("Import finished")
	return printImported(cmd.OutOrStdout(), transactions)
}

func printImported(w io.Writer, transactions []*domain.Transaction) error {
	for _, t := range transactions {
		category := ""
		if t.Category != nil {
			category = t.Category.Title
		}
		if _, err := fmt.Fprintf(w, "%s\t%-7s\t%12s\t%s\t%s\n", t.ID, t.Type, t.Value.StringFixed(2), category, t.Title); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d transactions imported\n", len(transactions))
	return err
}
