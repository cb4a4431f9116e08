package main

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"stockchart/internal/app/di"
	"stockchart/internal/feature/search/transport/tui"
	"stockchart/internal/platform/config"
	"stockchart/internal/platform/logger"
)

// errReported は出力済みのエラーで終了コード 1 だけが必要なことを表します。
var errReported = errors.New("error already reported")

type app struct {
	configPath string
	cfg        *config.ClientConfig
	logger     zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "stockchart",
		Short:         "Search a stock ticker and chart its closing prices",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			m := tui.NewModel(cmd.Context(), di.NewSearchUsecase(a.cfg, a.logger))
			_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("run terminal UI: %w", err)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultClientConfigPath(), "path to the YAML config file")

	root.AddCommand(newFetchCmd(a), newPredictCmd(a))
	return root
}

// init は設定を読み込み、ファイルへのログ出力を初期化します。
// 標準エラーはターミナルUIが使うため、ログはファイルにのみ書き込みます。
func (a *app) init() error {
	cfg, err := config.LoadClient(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	l, err := logger.New(logger.Config{
		Level:    cfg.Log.Level,
		Format:   "json",
		Dir:      cfg.Log.Dir,
		FileName: "stockchart.log",
		Service:  "stockchart",
	})
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	a.logger = l
	return nil
}
