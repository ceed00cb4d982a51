// Package ledger defines what the confidential transfer client needs from a
// ledger: account reads, transaction submission and rent computation.
// localnet implements it in process, rpc over JSON-RPC.
package ledger

import (
	"context"

	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/x/ctoken/types"
)

// Signature identifies a submitted transaction.
type Signature = types.Signature

// ErrAccountNotFound is returned by GetAccountState for unknown addresses.
var ErrAccountNotFound = types.ErrAccountNotFound

// Backend executes instructions and serves account state. Submit returns
// once the transaction is final; a rejected transaction leaves no state
// change behind.
type Backend interface {
	GetAccountState(ctx context.Context, addr common.Address) (*types.Account, error)
	Submit(ctx context.Context, instructions []types.Instruction, signers []common.Signer, feePayer common.Signer) (Signature, error)
	GetRentExemptMinimum(ctx context.Context, size uint64) (uint64, error)
}

// Airdropper funds addresses out of thin air. Only test ledgers offer it.
type Airdropper interface {
	RequestAirdrop(ctx context.Context, addr common.Address, lamports uint64) error
}

// Node is a full ledger endpoint, as served over RPC.
type Node interface {
	Backend
	Airdropper
	LatestBlockhash(ctx context.Context) (common.Hash, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) (Signature, error)
}
