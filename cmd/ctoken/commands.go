package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/btcq-org/ctoken/confidential"
	"github.com/btcq-org/ctoken/config"
	"github.com/btcq-org/ctoken/service"
)

func airdropCmd() *cobra.Command {
	var lamports uint64
	cmd := &cobra.Command{
		Use:   "airdrop",
		Short: "Fund the payer key (local ledgers only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, s *service.Service) error {
				if err := s.Airdrop(ctx, lamports); err != nil {
					return err
				}
				fmt.Printf("airdropped %d lamports to %s\n", lamports, s.Payer())
				return nil
			})
		},
	}
	cmd.Flags().Uint64Var(&lamports, "lamports", 100_000_000_000, "Lamports to request")
	return cmd
}

func mintCmd() *cobra.Command {
	var decimals uint8
	cmd := &cobra.Command{
		Use:   "mint <name>",
		Short: "Create a confidential mint, the payer becomes its authority",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, s *service.Service) error {
				if !cmd.Flags().Changed("decimals") {
					cfg, err := config.GetConfig(configPath)
					if err != nil {
						return err
					}
					decimals = cfg.Mint.Decimals
				}
				rec, err := s.CreateMint(ctx, args[0], decimals)
				if err != nil {
					return err
				}
				return printJSON(rec)
			})
		},
	}
	cmd.Flags().Uint8Var(&decimals, "decimals", 6, "Decimals of the mint (default from config)")
	return cmd
}

func accountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "account <name> <mint>",
		Short: "Open a confidential token account of a registered mint",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, s *service.Service) error {
				rec, err := s.OpenAccount(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				return printJSON(rec)
			})
		},
	}
}

func mintToCmd() *cobra.Command {
	return amountCmd("mint-to", "Mint public tokens into an account", func(ctx context.Context, s *service.Service, name string, amount math.LegacyDec) (*confidential.Settlement, error) {
		return s.MintTo(ctx, name, amount)
	})
}

func depositCmd() *cobra.Command {
	return amountCmd("deposit", "Move public tokens into the pending confidential balance", func(ctx context.Context, s *service.Service, name string, amount math.LegacyDec) (*confidential.Settlement, error) {
		return s.Deposit(ctx, name, amount)
	})
}

func withdrawCmd() *cobra.Command {
	return amountCmd("withdraw", "Move tokens from the available confidential balance to the public balance", func(ctx context.Context, s *service.Service, name string, amount math.LegacyDec) (*confidential.Settlement, error) {
		return s.Withdraw(ctx, name, amount)
	})
}

func applyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <account>",
		Short: "Apply the pending balance to the available balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, s *service.Service) error {
				settlement, err := s.ApplyPending(ctx, args[0])
				if err != nil {
					return err
				}
				return printSettlement(settlement)
			})
		},
	}
}

func transferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transfer <from> <to> <amount>",
		Short: "Transfer tokens confidentially",
		Long: `Transfer moves amount from the available balance of a registered account
to another account. <to> is either a registered account name, whose pending
balance is applied right away, or the address of someone else's account.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[2])
			if err != nil {
				return err
			}
			return withService(cmd, func(ctx context.Context, s *service.Service) error {
				settlement, err := s.Transfer(ctx, args[0], args[1], amount)
				if settlement != nil {
					if printErr := printSettlement(settlement); printErr != nil {
						return printErr
					}
				}
				return err
			})
		},
	}
}

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <account>",
		Short: "Decrypt and show the balances of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, s *service.Service) error {
				balance, err := s.Balance(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(service.NewBalanceResponse(balance))
			})
		},
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve health, balance and metrics endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.GetConfig(configPath)
			if err != nil {
				return err
			}
			s, err := service.NewService(cmd.Context(), *cfg)
			if err != nil {
				return err
			}
			addr, err := s.Start()
			if err != nil {
				s.Stop()
				return err
			}
			fmt.Printf("serving on %s\n", addr)
			// wait for termination signal (Ctrl+C / SIGINT or SIGTERM)
			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			received := <-sig
			fmt.Printf("received signal %v, shutting down\n", received)
			s.Stop()
			return nil
		},
	}
}
