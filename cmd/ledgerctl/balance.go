package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/leandrochavesf/gofinances/ledger-backend/internal/domain"
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/service"
	"github.com/spf13/cobra"
)

func balanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Print income, outcome and total",
		Args:  cobra.NoArgs,
		RunE:  runBalance,
	}

	cmd.Flags().Bool("json", false, "print the balance as JSON")

	return cmd
}

func runBalance(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	rt, err := openRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	balance, err := service.NewBalanceService(rt.transactionRepo).ComputeBalance(cmd.Context())
	if err != nil {
		return err
	}
	return printBalance(cmd.OutOrStdout(), balance, asJSON)
}

func printBalance(w io.Writer, b domain.Balance, asJSON bool) error {
	if asJSON {
		return json.NewEncoder(w).Encode(map[string]string{
			"income":  b.Income.StringFixed(2),
			"outcome": b.Outcome.StringFixed(2),
			"total":   b.Total.StringFixed(2),
		})
	}
	_, err := fmt.Fprintf(w, "income\t%s\noutcome\t%s\ntotal\t%s\n",
		b.Income.StringFixed(2), b.Outcome.StringFixed(2), b.Total.StringFixed(2))
	return err
}
