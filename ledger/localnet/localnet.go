// Package localnet is an in-process ledger running the ctoken program over
// goleveldb. Transactions execute one at a time, each inside its own
// leveldb transaction, and are final when SendTransaction returns.
package localnet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	errorsmod "cosmossdk.io/errors"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/constants"
	"github.com/btcq-org/ctoken/ledger"
	"github.com/btcq-org/ctoken/x/ctoken/keeper"
	"github.com/btcq-org/ctoken/x/ctoken/types"
)

var (
	blockhashesKey     = []byte("meta/blockhashes")
	processedKeyPrefix = []byte("processed/")

	genesisSeed = []byte("ctoken localnet genesis")
)

type Config struct {
	// DBPath is the leveldb directory, empty for an in-memory ledger.
	DBPath        string `mapstructure:"db_path"`
	CompactOnInit bool   `mapstructure:"compact_on_init"`
}

// Ledger is a single node ledger.
type Ledger struct {
	mu     sync.Mutex
	db     *leveldb.DB
	keeper keeper.Keeper
	logger zerolog.Logger

	// recent blockhashes, oldest first
	blockhashes []common.Hash
}

var _ ledger.Node = (*Ledger)(nil)

// New opens the ledger described by cfg.
func New(cfg Config) (*Ledger, error) {
	db, err := NewLevelDB(cfg.DBPath, cfg.CompactOnInit)
	if err != nil {
		return nil, err
	}
	l := &Ledger{
		db:     db,
		keeper: keeper.NewKeeper(),
		logger: log.With().Str("module", "localnet").Logger(),
	}
	if err := l.loadBlockhashes(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return l, nil
}

// NewMemory returns an empty in-memory ledger.
func NewMemory() (*Ledger, error) {
	return New(Config{})
}

func (l *Ledger) loadBlockhashes() error {
	raw, err := l.db.Get(blockhashesKey, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		genesis := common.Hash(crypto.Keccak256Hash(genesisSeed))
		l.blockhashes = []common.Hash{genesis}
		return nil
	}
	if err != nil {
		return fmt.Errorf("fail to load blockhashes: %w", err)
	}
	if err := rlp.DecodeBytes(raw, &l.blockhashes); err != nil {
		return fmt.Errorf("fail to decode blockhashes: %w", err)
	}
	return nil
}

func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) LatestBlockhash(ctx context.Context) (common.Hash, error) {
	if err := ctx.Err(); err != nil {
		return common.EmptyHash, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.blockhashes[len(l.blockhashes)-1], nil
}

func (l *Ledger) GetAccountState(ctx context.Context, addr common.Address) (*types.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.keeper.GetAccount(readStore{db: l.db}, addr)
}

func (l *Ledger) GetRentExemptMinimum(ctx context.Context, size uint64) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return types.RentExemptMinimum(size), nil
}

// RequestAirdrop credits addr with freshly created lamports.
func (l *Ledger) RequestAirdrop(ctx context.Context, addr common.Address, lamports uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if limit := constants.Get(constants.MaxAirdropLamports); lamports > limit {
		return types.ErrInvalidRequest.Wrapf("airdrop of %d exceeds %d", lamports, limit)
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	tr, err := l.db.OpenTransaction()
	if err != nil {
		return fmt.Errorf("fail to open transaction: %w", err)
	}
	if err := l.keeper.Credit(txStore{tr: tr}, addr, lamports); err != nil {
		tr.Discard()
		return err
	}
	if err := tr.Commit(); err != nil {
		return fmt.Errorf("fail to commit airdrop: %w", err)
	}
	l.logger.Info().Str("address", addr.String()).Uint64("lamports", lamports).Msg("airdrop")
	return nil
}

// Submit signs the instructions against the latest blockhash and sends them.
func (l *Ledger) Submit(ctx context.Context, instructions []types.Instruction, signers []common.Signer, feePayer common.Signer) (ledger.Signature, error) {
	blockhash, err := l.LatestBlockhash(ctx)
	if err != nil {
		return types.NoSignature, err
	}
	tx, err := types.BuildTransaction(blockhash, instructions, signers, feePayer)
	if err != nil {
		return types.NoSignature, err
	}
	return l.SendTransaction(ctx, tx)
}

// SendTransaction executes tx atomically. Nothing of a failed transaction is
// kept, the fee included.
func (l *Ledger) SendTransaction(ctx context.Context, tx *types.Transaction) (ledger.Signature, error) {
	if err := ctx.Err(); err != nil {
		return types.NoSignature, err
	}
	raw, err := tx.Encode()
	if err != nil {
		return types.NoSignature, types.ErrInvalidRequest.Wrapf("fail to encode transaction: %s", err)
	}
	if limit := constants.Get(constants.MaxTransactionSize); uint64(len(raw)) > limit {
		return types.NoSignature, types.ErrTransactionTooLarge.Wrapf("%d bytes, max %d", len(raw), limit)
	}
	if err := tx.VerifySignatures(); err != nil {
		return types.NoSignature, err
	}
	id := tx.ID()

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.isRecent(tx.Message.RecentBlockhash) {
		return types.NoSignature, types.ErrBlockhashNotFound.Wrapf("%s", tx.Message.RecentBlockhash)
	}
	processedKey := append(append([]byte(nil), processedKeyPrefix...), id[:]...)
	if ok, err := l.db.Has(processedKey, nil); err != nil {
		return types.NoSignature, fmt.Errorf("fail to check processed transactions: %w", err)
	} else if ok {
		return types.NoSignature, types.ErrAlreadyProcessed.Wrapf("%s", id)
	}

	tr, err := l.db.OpenTransaction()
	if err != nil {
		return types.NoSignature, fmt.Errorf("fail to open transaction: %w", err)
	}
	if err := l.execute(txStore{tr: tr}, tx); err != nil {
		tr.Discard()
		l.logger.Debug().Err(err).Str("tx", id.String()).Msg("transaction rejected")
		return types.NoSignature, err
	}

	next := l.nextBlockhashes(id)
	encoded, err := rlp.EncodeToBytes(next)
	if err != nil {
		tr.Discard()
		return types.NoSignature, fmt.Errorf("fail to encode blockhashes: %w", err)
	}
	if err := tr.Put(blockhashesKey, encoded, nil); err != nil {
		tr.Discard()
		return types.NoSignature, err
	}
	if err := tr.Put(processedKey, []byte{1}, nil); err != nil {
		tr.Discard()
		return types.NoSignature, err
	}
	if err := tr.Commit(); err != nil {
		return types.NoSignature, fmt.Errorf("fail to commit transaction: %w", err)
	}
	l.blockhashes = next

	l.logger.Debug().
		Str("tx", id.String()).
		Int("instructions", len(tx.Message.Instructions)).
		Msg("transaction processed")
	return id, nil
}

func (l *Ledger) execute(store keeper.KVStore, tx *types.Transaction) error {
	fee := constants.Get(constants.LamportsPerSignature) * uint64(len(tx.Signatures))
	if err := l.keeper.ChargeFee(store, tx.Message.FeePayer, fee); err != nil {
		return err
	}
	signers := tx.Signers()
	for i, ix := range tx.Message.Instructions {
		if err := l.keeper.Execute(store, signers, ix); err != nil {
			return errorsmod.Wrapf(err, "instruction %d (%s)", i, ix.Type)
		}
	}
	return nil
}

func (l *Ledger) isRecent(h common.Hash) bool {
	for _, recent := range l.blockhashes {
		if recent == h {
			return true
		}
	}
	return false
}

// nextBlockhashes derives the blockhash produced by processing id and drops
// hashes that fell out of the window.
func (l *Ledger) nextBlockhashes(id types.Signature) []common.Hash {
	prev := l.blockhashes[len(l.blockhashes)-1]
	next := common.Hash(crypto.Keccak256Hash(prev[:], id[:]))
	out := append(append([]common.Hash(nil), l.blockhashes...), next)
	if window := int(constants.Get(constants.MaxRecentBlockhashes)); len(out) > window {
		out = out[len(out)-window:]
	}
	return out
}
