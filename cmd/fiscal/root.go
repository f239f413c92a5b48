package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rpgo/withholding-calculator/internal/calculation"
	"github.com/rpgo/withholding-calculator/internal/config"
	"github.com/rpgo/withholding-calculator/internal/logging"
	"github.com/rpgo/withholding-calculator/internal/provenance"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	cfgFile  string
	v        *viper.Viper
	settings config.Settings
	logger   *zap.Logger
	engine   *calculation.CalculationEngine
	now      func() time.Time
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), now: time.Now, logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "fiscal",
		Short: "Withholding tax calculator for court-ordered payouts",
		Long: `fiscal computes income-tax withholding, secondary contributions and net
amounts for professional fees, cumulative income, period payments and
corporate payees.

Examples:
  fiscal fees --gross 10000
  fiscal rra --months 12 --gross 60000 --base 60000
  fiscal fepa --start 01/2020 --end 03/2020 --gross 9000 --format verbose
  fiscal pj --gross 10000 --corrected 12000 --branch 1
  fiscal batch calculations.yaml --format csv
  fiscal history 0001234`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.initialize,
		PersistentPostRun: func(*cobra.Command, []string) { _ = a.logger.Sync() },
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.config/fiscal/config.yaml)")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("log-format", "", "Log format (console, json)")
	flags.String("history-path", "", "Calculation history database")
	flags.String("actor", "", "Name recorded with saved calculations")

	_ = a.v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("logging.format", flags.Lookup("log-format"))
	_ = a.v.BindPFlag("history.path", flags.Lookup("history-path"))
	_ = a.v.BindPFlag("actor", flags.Lookup("actor"))

	rootCmd.AddCommand(
		a.feesCmd(),
		a.amortizedCmd(),
		a.periodCmd(),
		a.flatRateCmd(),
		a.batchCmd(),
		a.historyCmd(),
		versionCmd(),
	)
	return rootCmd
}

func (a *app) initialize(cmd *cobra.Command, _ []string) error {
	settings, err := config.LoadSettings(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.settings = settings

	logger, err := logging.New(settings.Logging)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	a.logger = logger

	a.engine = calculation.NewCalculationEngine()
	a.engine.SetLogger(logger.Sugar())
	a.logger.Debug("configuration loaded", zap.String("history", settings.History.Path), zap.String("actor", settings.Actor))
	return nil
}

// service builds the calculation service, opening the history database only
// when withHistory is set. The returned close func is never nil.
func (a *app) service(ctx context.Context, withHistory bool) (*provenance.Service, func(), error) {
	if !withHistory {
		return provenance.NewService(a.engine, nil, nil), func() {}, nil
	}
	store, err := provenance.OpenSQLiteStore(ctx, a.settings.History.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open calculation history: %w", err)
	}
	closeFn := func() {
		if err := store.Close(); err != nil {
			a.logger.Warn("failed to close calculation history", zap.Error(err))
		}
	}
	return provenance.NewService(a.engine, store, provenance.StaticActor(a.settings.Actor)), closeFn, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "fiscal version 0.1.0")
		},
	}
}
