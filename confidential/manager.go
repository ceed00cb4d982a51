// Package confidential drives confidential token operations against a
// ledger: it reads the encrypted balance snapshot, builds the proofs,
// materializes them as proof contexts, submits the consuming instruction
// and cleans the contexts up again.
package confidential

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/ledger"
	"github.com/btcq-org/ctoken/x/ctoken/types"
	"github.com/btcq-org/ctoken/zk"
)

// Settlement is the outcome of a successful operation.
type Settlement struct {
	Op        Operation
	Account   common.Address
	Amount    uint64
	Signature ledger.Signature
	// Contexts are the proof contexts the operation used, all closed.
	Contexts []common.Address
	// RecipientApply is the apply-pending run on the recipient of a
	// transfer, nil when the recipient handle carries no keys.
	RecipientApply *Settlement
}

type Option func(*Manager)

// WithProofBackend replaces the proof system.
func WithProofBackend(backend zk.ProofBackend) Option {
	return func(m *Manager) { m.proofs = backend }
}

func WithObserver(observer Observer) Option {
	return func(m *Manager) { m.observer = observer }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithMaxPendingCredits sets the credit limit of accounts opened by the manager.
func WithMaxPendingCredits(n uint64) Option {
	return func(m *Manager) { m.maxPendingCredits = n }
}

// Manager runs confidential operations. It holds no locks: operations on
// the same account must not overlap, the ledger rejects the loser with
// ErrSnapshotStale.
type Manager struct {
	backend           ledger.Backend
	payer             common.Signer
	proofs            zk.ProofBackend
	observer          Observer
	logger            zerolog.Logger
	maxPendingCredits uint64

	generator    *zk.Generator
	orchestrator *Orchestrator
}

// NewManager returns a manager submitting through backend. payer pays fees
// and funds the accounts the manager creates. The backend lifecycle stays
// with the caller.
func NewManager(backend ledger.Backend, payer common.Signer, opts ...Option) *Manager {
	m := &Manager{
		backend:           backend,
		payer:             payer,
		observer:          noopObserver{},
		logger:            log.With().Str("module", "confidential").Logger(),
		maxPendingCredits: types.DefaultMaximumPendingBalanceCreditCounter,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.generator = zk.NewGenerator(m.proofs)
	m.orchestrator = NewOrchestrator(backend, payer, m.observer, m.logger)
	return m
}

// Orchestrator exposes the proof context orchestrator of the manager.
func (m *Manager) Orchestrator() *Orchestrator {
	return m.orchestrator
}

func (m *Manager) submit(ctx context.Context, signers []common.Signer, msgs ...types.Msg) (ledger.Signature, error) {
	ixs, err := types.NewInstructions(msgs...)
	if err != nil {
		return types.NoSignature, err
	}
	return m.backend.Submit(ctx, ixs, signers, m.payer)
}

// tokenState fetches the token account at addr.
func (m *Manager) tokenState(ctx context.Context, addr common.Address) (*types.TokenAccount, error) {
	acct, err := m.backend.GetAccountState(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("fail to get account %s: %w", addr, err)
	}
	return acct.TokenAccount()
}

// operation tracks the state of one run and reports it to the observer.
type operation struct {
	m       *Manager
	op      Operation
	account common.Address
	amount  uint64
	state   State
	start   time.Time
	opened  []*ContextHandle
}

func (m *Manager) begin(op Operation, account common.Address, amount uint64) *operation {
	o := &operation{m: m, op: op, account: account, amount: amount, state: StateIdle, start: time.Now()}
	m.observer.Observe(Event{Kind: EventOperationStarted, Op: op, State: StateIdle, Account: account, Amount: amount})
	return o
}

func (o *operation) transition(s State) {
	o.state = s
}

func (o *operation) event(kind EventKind) Event {
	return Event{Kind: kind, Op: o.op, State: o.state, Account: o.account, Amount: o.amount}
}

func (o *operation) proofGenerated(kind zk.ProofKind) {
	e := o.event(EventProofGenerated)
	e.ProofKind = kind
	o.m.observer.Observe(e)
}

func (o *operation) submitted(sig ledger.Signature) {
	e := o.event(EventSubmitted)
	e.Signature = sig
	o.m.observer.Observe(e)
}

// open materializes a proof context owned by this operation.
func (o *operation) open(ctx context.Context, data zk.ProofData, split bool) error {
	h, err := o.m.orchestrator.OpenProof(ctx, data, o.m.payer, split)
	if err != nil {
		return err
	}
	o.opened = append(o.opened, h)
	return nil
}

func (o *operation) contexts() []common.Address {
	out := make([]common.Address, 0, len(o.opened))
	for _, h := range o.opened {
		out = append(out, h.Address)
	}
	return out
}

// cleanup closes the contexts of the operation. It runs detached from ctx
// cancellation: the contexts hold the payer's rent.
func (o *operation) cleanup(ctx context.Context) error {
	if len(o.opened) == 0 {
		return nil
	}
	err := o.m.orchestrator.CloseAll(context.WithoutCancel(ctx), o.opened, o.m.payer)
	o.opened = nil
	return err
}

// fail closes whatever is open and returns the operation error.
func (o *operation) fail(ctx context.Context, err error) error {
	failedIn := o.state
	cleanupErr := o.cleanup(ctx)
	o.state = StateFailed
	e := o.event(EventFailed)
	e.Err = err
	e.Elapsed = time.Since(o.start)
	o.m.observer.Observe(e)
	o.m.logger.Debug().Err(err).Str("op", o.op.String()).Str("state", failedIn.String()).Msg("operation failed")
	return &OperationError{Op: o.op, State: failedIn, Err: err, Cleanup: cleanupErr}
}

// settle closes the contexts of a successful operation. A cleanup failure
// is returned next to the settlement.
func (o *operation) settle(ctx context.Context, sig ledger.Signature) (*Settlement, error) {
	o.state = StateSettled
	s := &Settlement{
		Op:        o.op,
		Account:   o.account,
		Amount:    o.amount,
		Signature: sig,
		Contexts:  o.contexts(),
	}
	e := o.event(EventSettled)
	e.Signature = sig
	e.Elapsed = time.Since(o.start)
	o.m.observer.Observe(e)

	if err := o.cleanup(ctx); err != nil {
		return s, &OperationError{Op: o.op, State: StateSettled, Err: err}
	}
	return s, nil
}

// classifyProofError maps generator failures to ErrProofConstruction and
// leaves cancellation untouched.
func classifyProofError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return proofConstructionError(err)
}
