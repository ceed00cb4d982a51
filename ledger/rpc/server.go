package rpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/ledger"
	"github.com/btcq-org/ctoken/x/ctoken/types"
)

// Namespace is the JSON-RPC namespace of the ledger methods.
const Namespace = "ledger"

// API exposes a ledger.Node as ledger_* JSON-RPC methods.
type API struct {
	node ledger.Node
}

func NewAPI(node ledger.Node) *API {
	return &API{node: node}
}

func (api *API) GetAccountState(ctx context.Context, addr common.Address) (*types.Account, error) {
	acct, err := api.node.GetAccountState(ctx, addr)
	return acct, toRPCError(err)
}

func (api *API) LatestBlockhash(ctx context.Context) (common.Hash, error) {
	h, err := api.node.LatestBlockhash(ctx)
	return h, toRPCError(err)
}

func (api *API) SendTransaction(ctx context.Context, raw hexutil.Bytes) (types.Signature, error) {
	tx, err := types.DecodeTransaction(raw)
	if err != nil {
		return types.NoSignature, toRPCError(err)
	}
	sig, err := api.node.SendTransaction(ctx, tx)
	return sig, toRPCError(err)
}

func (api *API) RentExemptMinimum(ctx context.Context, size uint64) (uint64, error) {
	lamports, err := api.node.GetRentExemptMinimum(ctx, size)
	return lamports, toRPCError(err)
}

func (api *API) RequestAirdrop(ctx context.Context, addr common.Address, lamports uint64) error {
	return toRPCError(api.node.RequestAirdrop(ctx, addr, lamports))
}

// Server serves the ledger API over HTTP.
type Server struct {
	logger zerolog.Logger
	rpc    *gethrpc.Server
	http   *http.Server
}

func NewServer(node ledger.Node, listenAddr string) (*Server, error) {
	srv := gethrpc.NewServer()
	if err := srv.RegisterName(Namespace, NewAPI(node)); err != nil {
		return nil, fmt.Errorf("fail to register ledger api: %w", err)
	}
	return &Server{
		logger: log.With().Str("module", "ledger_rpc").Logger(),
		rpc:    srv,
		http: &http.Server{
			Addr:              listenAddr,
			Handler:           srv,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// Handler returns the JSON-RPC http handler.
func (s *Server) Handler() http.Handler {
	return s.rpc
}

// Start listens in the background. The returned address is the one bound,
// which differs from the configured one when it names port 0.
func (s *Server) Start() (string, error) {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return "", fmt.Errorf("fail to listen on %s: %w", s.http.Addr, err)
	}
	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("ledger rpc server stopped")
		}
	}()
	s.logger.Info().Str("addr", ln.Addr().String()).Msg("ledger rpc server started")
	return ln.Addr().String(), nil
}

func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := s.http.Shutdown(ctx)
	s.rpc.Stop()
	return err
}
