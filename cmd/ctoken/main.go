// Package main is the confidential token wallet CLI. It talks to a ledger
// over JSON-RPC and keeps its keys and account names under the configured
// root path.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cosmossdk.io/math"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/btcq-org/ctoken/confidential"
	"github.com/btcq-org/ctoken/config"
	"github.com/btcq-org/ctoken/service"
)

var (
	configPath string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ctoken",
		Short: "Confidential token wallet",
		Long: `ctoken creates confidential mints and accounts and moves tokens between
them. Balances are encrypted on the ledger: deposits and withdrawals move
tokens between the public and the encrypted balance, transfers move
encrypted amounts and are backed by zero-knowledge proofs.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.WarnLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the JSON config file (default ./config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log operation progress")

	rootCmd.AddCommand(
		airdropCmd(),
		mintCmd(),
		accountCmd(),
		mintToCmd(),
		depositCmd(),
		applyCmd(),
		transferCmd(),
		withdrawCmd(),
		balanceCmd(),
		serveCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withService runs fn against a service built from the config file.
func withService(cmd *cobra.Command, fn func(ctx context.Context, s *service.Service) error) error {
	cfg, err := config.GetConfig(configPath)
	if err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	s, err := service.NewService(ctx, *cfg)
	if err != nil {
		return err
	}
	defer s.Stop()
	return fn(ctx, s)
}

func parseAmount(s string) (math.LegacyDec, error) {
	amount, err := math.LegacyNewDecFromStr(s)
	if err != nil {
		return math.LegacyDec{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if !amount.IsPositive() {
		return math.LegacyDec{}, fmt.Errorf("amount must be positive, got %s", s)
	}
	return amount, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printSettlement(s *confidential.Settlement) error {
	fmt.Printf("%s settled in %s\n", s.Op, s.Signature)
	for _, c := range s.Contexts {
		fmt.Printf("  proof context %s (closed)\n", c)
	}
	if s.RecipientApply != nil {
		fmt.Printf("  recipient applied pending balance in %s\n", s.RecipientApply.Signature)
	}
	return nil
}

// amountCmd builds a command taking an account name and an amount.
func amountCmd(use, short string, run func(ctx context.Context, s *service.Service, name string, amount math.LegacyDec) (*confidential.Settlement, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <account> <amount>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			return withService(cmd, func(ctx context.Context, s *service.Service) error {
				settlement, err := run(ctx, s, args[0], amount)
				if err != nil {
					return err
				}
				return printSettlement(settlement)
			})
		},
	}
}
