package rpc

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/ledger"
	"github.com/btcq-org/ctoken/x/ctoken/types"
)

type Config struct {
	URL      string `mapstructure:"url"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// Client is a ledger.Node reached over JSON-RPC.
type Client struct {
	client *gethrpc.Client
	logger zerolog.Logger
}

var _ ledger.Node = (*Client)(nil)

// Dial connects to the ledger at cfg.URL.
func Dial(ctx context.Context, cfg Config) (*Client, error) {
	url := cfg.URL
	// default to http if no scheme is specified
	if !strings.Contains(url, "://") {
		url = "http://" + url
	}
	var opts []gethrpc.ClientOption
	if cfg.User != "" {
		authFn := func(h http.Header) error {
			auth := base64.StdEncoding.EncodeToString([]byte(cfg.User + ":" + cfg.Password))
			h.Set("Authorization", fmt.Sprintf("Basic %s", auth))
			return nil
		}
		opts = append(opts, gethrpc.WithHTTPAuth(authFn))
	}
	c, err := gethrpc.DialOptions(ctx, url, opts...)
	if err != nil {
		return nil, fmt.Errorf("fail to dial ledger %s: %w", url, err)
	}
	return &Client{
		client: c,
		logger: log.With().Str("module", "ledger_client").Logger(),
	}, nil
}

func (c *Client) Close() {
	c.client.Close()
}

func (c *Client) call(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	return fromRPCError(c.client.CallContext(ctx, result, Namespace+"_"+method, args...))
}

func (c *Client) GetAccountState(ctx context.Context, addr common.Address) (*types.Account, error) {
	var acct types.Account
	if err := c.call(ctx, &acct, "getAccountState", addr); err != nil {
		return nil, err
	}
	return &acct, nil
}

func (c *Client) LatestBlockhash(ctx context.Context) (common.Hash, error) {
	var h common.Hash
	err := c.call(ctx, &h, "latestBlockhash")
	return h, err
}

func (c *Client) SendTransaction(ctx context.Context, tx *types.Transaction) (ledger.Signature, error) {
	raw, err := tx.Encode()
	if err != nil {
		return types.NoSignature, fmt.Errorf("fail to encode transaction: %w", err)
	}
	var sig types.Signature
	if err := c.call(ctx, &sig, "sendTransaction", hexutil.Bytes(raw)); err != nil {
		return types.NoSignature, err
	}
	c.logger.Debug().Str("tx", sig.String()).Msg("transaction sent")
	return sig, nil
}

func (c *Client) Submit(ctx context.Context, instructions []types.Instruction, signers []common.Signer, feePayer common.Signer) (ledger.Signature, error) {
	blockhash, err := c.LatestBlockhash(ctx)
	if err != nil {
		return types.NoSignature, err
	}
	tx, err := types.BuildTransaction(blockhash, instructions, signers, feePayer)
	if err != nil {
		return types.NoSignature, err
	}
	return c.SendTransaction(ctx, tx)
}

func (c *Client) GetRentExemptMinimum(ctx context.Context, size uint64) (uint64, error) {
	var lamports uint64
	err := c.call(ctx, &lamports, "rentExemptMinimum", size)
	return lamports, err
}

func (c *Client) RequestAirdrop(ctx context.Context, addr common.Address, lamports uint64) error {
	return c.call(ctx, nil, "requestAirdrop", addr, lamports)
}
