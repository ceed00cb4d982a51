package confidential

// Operation names a client operation.
type Operation uint8

const (
	OpDeposit Operation = iota + 1
	OpApplyPending
	OpTransfer
	OpWithdraw
	OpOpenAccount
	OpCreateMint
	OpMintTo
)

func (o Operation) String() string {
	switch o {
	case OpDeposit:
		return "deposit"
	case OpApplyPending:
		return "apply_pending"
	case OpTransfer:
		return "transfer"
	case OpWithdraw:
		return "withdraw"
	case OpOpenAccount:
		return "open_account"
	case OpCreateMint:
		return "create_mint"
	case OpMintTo:
		return "mint_to"
	default:
		return "unknown"
	}
}

// State is the progress of one operation.
//
//	Idle -> PendingProofs -> AwaitingExecution -> Settled
//
// with a transition to Failed from any state but Settled. Operations without
// proofs skip PendingProofs.
type State uint8

const (
	StateIdle State = iota
	StatePendingProofs
	StateAwaitingExecution
	StateSettled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePendingProofs:
		return "pending_proofs"
	case StateAwaitingExecution:
		return "awaiting_execution"
	case StateSettled:
		return "settled"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
