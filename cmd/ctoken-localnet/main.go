package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
	flag "github.com/spf13/pflag"

	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/ledger/localnet"
	"github.com/btcq-org/ctoken/ledger/rpc"
)

// parseFunding parses address=lamports pairs.
func parseFunding(entries []string) (map[common.Address]uint64, error) {
	out := make(map[common.Address]uint64, len(entries))
	for _, entry := range entries {
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid fund entry %q, want address=lamports", entry)
		}
		addr, err := common.NewAddress(parts[0])
		if err != nil {
			return nil, err
		}
		lamports, err := cast.ToUint64E(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid lamports in %q: %w", entry, err)
		}
		out[addr] = lamports
	}
	return out, nil
}

func run(ctx context.Context) error {
	listenAddr := flag.String("listen-addr", "127.0.0.1:8899", "JSON-RPC listen address")
	dbPath := flag.String("db-path", ".ctoken/ledger", "Ledger database directory, empty for an in-memory ledger")
	compact := flag.Bool("compact", true, "Compact the database on start")
	fund := flag.StringSlice("fund", nil, "Fund address=lamports on start, repeatable")
	flag.Parse()

	if _, p, err := net.SplitHostPort(*listenAddr); err != nil {
		return err
	} else if _, err := cast.ToUint16E(p); err != nil {
		return fmt.Errorf("invalid port %q: %w", p, err)
	}
	funding, err := parseFunding(*fund)
	if err != nil {
		return err
	}

	// handle signals
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ledger, err := localnet.New(localnet.Config{DBPath: *dbPath, CompactOnInit: *compact})
	if err != nil {
		return err
	}
	defer func() {
		if err := ledger.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close ledger")
		}
	}()
	for addr, lamports := range funding {
		if err := ledger.RequestAirdrop(ctx, addr, lamports); err != nil {
			return fmt.Errorf("fail to fund %s: %w", addr, err)
		}
		log.Info().Str("address", addr.String()).Uint64("lamports", lamports).Msg("funded")
	}

	server, err := rpc.NewServer(ledger, *listenAddr)
	if err != nil {
		return err
	}
	addr, err := server.Start()
	if err != nil {
		return err
	}
	defer func() {
		if err := server.Stop(); err != nil {
			log.Error().Err(err).Msg("failed to stop rpc server")
		}
	}()
	log.Info().Str("listen_addr", addr).Str("db_path", *dbPath).Msg("ctoken localnet running")

	<-ctx.Done()
	log.Info().Msg("shutting down")
	return nil
}

func main() {
	ctx := context.Background()
	err := run(ctx)
	if err != nil {
		fmt.Printf("error %s\n", err.Error())
		os.Exit(1)
	}
}
