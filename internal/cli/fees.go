package cli

import (
	"encoding/json"

	"github.com/myfans/settlement/internal/service"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var quoteEarnings string

var feesCmd = &cobra.Command{
	Use:   "fees",
	Short: "Print the creator fee schedule, or a quote with --earnings",
	Args:  cobra.NoArgs,
	RunE:  runFees,
}

func init() {
	feesCmd.Flags().StringVar(&quoteEarnings, "earnings", "", "quote a withdrawal of this amount")
	rootCmd.AddCommand(feesCmd)
}

func runFees(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	fees := service.NewFeeService(cfg.Withdrawal)

	var out any
	if quoteEarnings != "" {
		earnings, err := decimal.NewFromString(quoteEarnings)
		if err != nil {
			return err
		}
		if out, err = fees.Quote(earnings); err != nil {
			return err
		}
	} else if out, err = fees.Transparency(); err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
