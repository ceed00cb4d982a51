package service

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"cosmossdk.io/math"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/config"
	"github.com/btcq-org/ctoken/confidential"
	"github.com/btcq-org/ctoken/keystore"
	"github.com/btcq-org/ctoken/ledger"
	"github.com/btcq-org/ctoken/ledger/localnet"
	"github.com/btcq-org/ctoken/ledger/rpc"
	"github.com/btcq-org/ctoken/metrics"
)

// Service is the confidential token wallet. It wires the keystore, the
// ledger client, the local registry and the metrics around a
// confidential.Manager.
type Service struct {
	cfg      config.Config
	logger   zerolog.Logger
	node     ledger.Node
	kstore   keystore.Keystore
	payer    *keystore.Signer
	db       *leveldb.DB
	registry *Registry
	manager  *confidential.Manager
	metrics  *metrics.Metrics
	closers  []func()

	// http server
	hs *http.Server
}

// NewService dials the ledger at cfg.Ledger and opens the keystore and the
// registry under cfg.RootPath.
func NewService(ctx context.Context, cfg config.Config) (*Service, error) {
	client, err := rpc.Dial(ctx, cfg.Ledger)
	if err != nil {
		return nil, fmt.Errorf("fail to create ledger client: %w", err)
	}
	kstore, err := keystore.NewFileKeyStore(cfg.RootPath)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to create file key store,err: %w", err)
	}
	s, err := New(cfg, client, kstore)
	if err != nil {
		client.Close()
		return nil, err
	}
	s.closers = append(s.closers, client.Close)
	return s, nil
}

// New builds a service on an existing ledger node. The node stays owned by
// the caller.
func New(cfg config.Config, node ledger.Node, kstore keystore.Keystore) (*Service, error) {
	payer, err := keystore.GetOrCreateSigner(kstore, cfg.PayerKeyName)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create payer key, err: %w", err)
	}
	db, err := localnet.NewLevelDB(cfg.RegistryDBPath, false)
	if err != nil {
		return nil, fmt.Errorf("failed to create level db: %w", err)
	}
	logger := log.With().Str("module", "ctoken_service").Logger()
	m := metrics.NewMetrics()
	observer := confidential.NewMultiObserver(confidential.NewLogObserver(logger), m)
	manager := confidential.NewManager(node, payer,
		confidential.WithObserver(observer),
		confidential.WithMaxPendingCredits(cfg.MaxPendingCredits),
	)
	logger.Info().Str("payer", payer.Address().String()).Msg("loaded payer key")
	return &Service{
		cfg:      cfg,
		logger:   logger,
		node:     node,
		kstore:   kstore,
		payer:    payer,
		db:       db,
		registry: NewRegistry(db),
		manager:  manager,
		metrics:  m,
		hs: &http.Server{
			Addr:              cfg.HTTPListenAddress,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

func (s *Service) Payer() common.Address {
	return s.payer.Address()
}

func (s *Service) Registry() *Registry {
	return s.registry
}

// Airdrop funds the payer. Only local ledgers serve airdrops.
func (s *Service) Airdrop(ctx context.Context, lamports uint64) error {
	return s.node.RequestAirdrop(ctx, s.payer.Address(), lamports)
}

// CreateMint creates a mint with the payer as mint authority.
func (s *Service) CreateMint(ctx context.Context, name string, decimals uint8) (*MintRecord, error) {
	if err := s.registry.ensureFree(mintKeyPrefix + name); err != nil {
		return nil, err
	}
	signer, err := keystore.GenerateSigner()
	if err != nil {
		return nil, err
	}
	mint, err := s.manager.CreateMint(ctx, signer, s.payer.Address(), decimals)
	if err != nil {
		return nil, err
	}
	rec := MintRecord{Name: name, Address: mint.Address, Authority: mint.Authority, Decimals: mint.Decimals}
	if err := s.registry.PutMint(rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func ownerKeyName(account string) string {
	return "account-" + account
}

// OpenAccount opens a confidential account of the named mint, owned by a
// keystore key dedicated to it.
func (s *Service) OpenAccount(ctx context.Context, name, mintName string) (*AccountRecord, error) {
	if err := s.registry.ensureFree(accountKeyPrefix + name); err != nil {
		return nil, err
	}
	mintRec, err := s.registry.GetMint(mintName)
	if err != nil {
		return nil, err
	}
	owner, err := keystore.GetOrCreateSigner(s.kstore, ownerKeyName(name))
	if err != nil {
		return nil, err
	}
	signer, err := keystore.GenerateSigner()
	if err != nil {
		return nil, err
	}
	mint := &confidential.Mint{Address: mintRec.Address, Authority: mintRec.Authority, Decimals: mintRec.Decimals}
	acct, err := s.manager.OpenAccount(ctx, mint, owner, signer)
	if err != nil {
		return nil, err
	}
	rec := AccountRecord{Name: name, Address: acct.Address, Mint: acct.Mint, OwnerKey: ownerKeyName(name)}
	if err := s.registry.PutAccount(rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Account loads the handle of a registered account.
func (s *Service) Account(ctx context.Context, name string) (*confidential.Account, error) {
	rec, err := s.registry.GetAccount(name)
	if err != nil {
		return nil, err
	}
	owner, err := keystore.LoadSigner(s.kstore, rec.OwnerKey)
	if err != nil {
		return nil, err
	}
	return s.manager.LoadAccount(ctx, owner, rec.Address)
}

// recipient resolves a registered name or a base58 address.
func (s *Service) recipient(ctx context.Context, to string) (*confidential.Account, error) {
	if _, err := s.registry.GetAccount(to); err == nil {
		return s.Account(ctx, to)
	}
	addr, err := common.NewAddress(to)
	if err != nil {
		return nil, fmt.Errorf("recipient %s is neither registered nor an address: %w", to, err)
	}
	return s.manager.RemoteAccount(ctx, addr)
}

// MintTo mints public tokens into the named account. The payer must be the
// mint authority.
func (s *Service) MintTo(ctx context.Context, name string, amount math.LegacyDec) (*confidential.Settlement, error) {
	rec, err := s.registry.GetAccount(name)
	if err != nil {
		return nil, err
	}
	mint, err := s.manager.LoadMint(ctx, rec.Mint)
	if err != nil {
		return nil, err
	}
	return s.manager.MintTo(ctx, mint, s.payer, rec.Address, amount)
}

func (s *Service) Deposit(ctx context.Context, name string, amount math.LegacyDec) (*confidential.Settlement, error) {
	acct, err := s.Account(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.manager.Deposit(ctx, acct, amount)
}

func (s *Service) ApplyPending(ctx context.Context, name string) (*confidential.Settlement, error) {
	acct, err := s.Account(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.manager.ApplyPending(ctx, acct)
}

// Transfer sends amount from the named account to to, a registered name or
// an address.
func (s *Service) Transfer(ctx context.Context, from, to string, amount math.LegacyDec) (*confidential.Settlement, error) {
	src, err := s.Account(ctx, from)
	if err != nil {
		return nil, err
	}
	dst, err := s.recipient(ctx, to)
	if err != nil {
		return nil, err
	}
	return s.manager.Transfer(ctx, src, dst, amount)
}

func (s *Service) Withdraw(ctx context.Context, name string, amount math.LegacyDec) (*confidential.Settlement, error) {
	acct, err := s.Account(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.manager.Withdraw(ctx, acct, amount)
}

func (s *Service) Balance(ctx context.Context, name string) (*confidential.Balance, error) {
	acct, err := s.Account(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.manager.Balance(ctx, acct)
}

// Start serves the HTTP routes. It returns the bound address.
func (s *Service) Start() (string, error) {
	s.hs.Handler = s.registerRoutes()
	listener, err := net.Listen("tcp", s.hs.Addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen on %s: %w", s.hs.Addr, err)
	}
	go func() {
		if err := s.hs.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("failed to start http server")
		}
	}()
	s.logger.Info().Str("addr", listener.Addr().String()).Msg("ctoken service started")
	return listener.Addr().String(), nil
}

// Stop shuts the HTTP server down and closes the registry and the ledger
// client.
func (s *Service) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.hs.Shutdown(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to shutdown http server")
	} else {
		s.logger.Info().Msg("http server shutdown")
	}
	if err := s.db.Close(); err != nil {
		s.logger.Error().Err(err).Msg("failed to close leveldb")
	} else {
		s.logger.Info().Msg("leveldb closed")
	}
	for _, closeFn := range s.closers {
		closeFn()
	}
}
