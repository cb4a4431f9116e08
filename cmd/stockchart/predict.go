package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"stockchart/internal/app/di"
)

func newPredictCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "predict TICKER",
		Short: "Print the service's linear-trend estimate of the next close",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ticker := strings.ToUpper(strings.TrimSpace(args[0]))
			if ticker == "" {
				return fmt.Errorf("ticker code required")
			}

			p, err := di.NewStockAPIClient(a.cfg).FetchPrediction(cmd.Context(), ticker)
			if err != nil {
				a.logger.Error().Err(err).Str("ticker", ticker).Msg("prediction request failed")
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s next close: %.2f (from %d closes)\n", p.Ticker, p.PredictedClose, p.Observations)
			return nil
		},
	}
}
