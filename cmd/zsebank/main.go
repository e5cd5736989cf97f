package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shubham-patill/Stock-Exchange-Bank/internal/config"
	"github.com/shubham-patill/Stock-Exchange-Bank/internal/game"
	"github.com/shubham-patill/Stock-Exchange-Bank/internal/report"
)

func main() {
	var cfgPath string

	root := &cobra.Command{
		Use:          "zsebank",
		Short:        "ZSE Bank, the bookkeeping dashboard for the stock exchange party game",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.zsebank/config.toml)")

	root.AddCommand(
		newPlayCmd(&cfgPath),
		newPlanCmd(&cfgPath),
		newCompaniesCmd(&cfgPath),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(cfgPath *string) (config.Config, error) {
	path := *cfgPath
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".zsebank", "config.toml")
		}
	}
	return config.Load(path)
}

func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Log.Level, AddSource: cfg.Log.AddSource}
	dir, err := report.BaseDir()
	if err != nil {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	f, err := os.OpenFile(filepath.Join(dir, "session.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(f, opts))
}

func newPlayCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Run an interactive game session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			bank := game.NewBank(cfg.Rules(), cfg.Seeds(), newLogger(cfg))
			return runSession(bank)
		},
	}
}

func newPlanCmd(cfgPath *string) *cobra.Command {
	var price float64
	var budget int64
	var lot int64

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Right-issue planner: how many shares to buy now for a later discounted entitlement",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			if price <= 0 {
				return fmt.Errorf("--price must be > 0")
			}
			if budget <= 0 {
				return fmt.Errorf("--budget must be > 0")
			}
			if lot == 0 {
				lot = cfg.Game.LotSize
			}
			plan := game.PlanRightIssue(game.RupeesToPaise(price), budget*game.PaisePerRupee, lot)
			renderPlan(plan, lot)
			return nil
		},
	}
	cmd.Flags().Float64Var(&price, "price", 0, "current share price in rupees")
	cmd.Flags().Int64Var(&budget, "budget", 0, "cash budget in rupees")
	cmd.Flags().Int64Var(&lot, "lot", 0, "lot size (default from config)")
	return cmd
}

func newCompaniesCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "companies",
		Short: "Print the configured company list with seed prices",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			accent.Println("\n== COMPANIES ==")
			fmt.Printf("%-16s %12s %12s\n", "NAME", "PRICE", "SHARES")
			for _, c := range cfg.Companies {
				fmt.Printf("%-16s %12s %12d\n", c.Name, formatPaise(game.RupeesToPaise(c.Price)), c.Shares)
			}
			return nil
		},
	}
}
