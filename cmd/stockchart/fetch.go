package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stockchart/internal/app/di"
	"stockchart/internal/feature/search/transport/tui"
)

func newFetchCmd(a *app) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "fetch TICKER",
		Short: "Fetch one year of closes and print the chart without the terminal UI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := di.NewSearchUsecase(a.cfg, a.logger)
			uc.SetTicker(args[0])
			s := uc.Search(cmd.Context())

			out := cmd.OutOrStdout()
			if s.HasError() {
				fmt.Fprintln(out, s.Error)
				return errReported
			}
			fmt.Fprintln(out, tui.RenderChart(s.Ticker, s.Series, width))
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "terminal width used to size the chart (0 for the default)")
	return cmd
}
