package confidential

import (
	"context"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/keystore"
	"github.com/btcq-org/ctoken/ledger"
	"github.com/btcq-org/ctoken/x/ctoken/types"
	"github.com/btcq-org/ctoken/zk"
)

// ContextHandle refers to an open proof context account.
type ContextHandle struct {
	Address   common.Address
	Kind      zk.ProofKind
	Authority common.Address
	Lamports  uint64
}

// Orchestrator materializes proofs as context accounts on the ledger and
// closes them again. The payer funds the accounts and receives the rent
// back on close.
type Orchestrator struct {
	backend  ledger.Backend
	payer    common.Signer
	observer Observer
	logger   zerolog.Logger
}

func NewOrchestrator(backend ledger.Backend, payer common.Signer, observer Observer, logger zerolog.Logger) *Orchestrator {
	if observer == nil {
		observer = noopObserver{}
	}
	return &Orchestrator{
		backend:  backend,
		payer:    payer,
		observer: observer,
		logger:   logger,
	}
}

// Open stores payload in a fresh context account. Without split the proof is
// verified in the creating transaction, with split a second transaction
// verifies it, which keeps large proofs within the transaction size limit.
// A split open whose verification fails closes the account before
// returning.
func (o *Orchestrator) Open(ctx context.Context, kind zk.ProofKind, payload []byte, authority common.Signer, split bool) (*ContextHandle, error) {
	if len(payload) == 0 || zk.ProofKind(payload[0]) != kind {
		return nil, ErrContextCreation.Wrapf("payload does not hold a %s proof", kind)
	}
	signer, err := keystore.GenerateSigner()
	if err != nil {
		return nil, ErrContextCreation.Wrapf("fail to generate context key: %s", err)
	}
	space := types.ProofContextSpace(len(payload))
	rent, err := o.backend.GetRentExemptMinimum(ctx, space)
	if err != nil {
		return nil, errorsmod.Wrap(ErrContextCreation, err.Error())
	}
	handle := &ContextHandle{
		Address:   signer.Address(),
		Kind:      kind,
		Authority: authority.Address(),
		Lamports:  rent,
	}

	ixs, err := types.NewInstructions(
		&types.MsgCreateAccount{
			From:       o.payer.Address(),
			NewAccount: handle.Address,
			Lamports:   rent,
			Space:      space,
		},
		&types.MsgCreateProofContext{
			Context:   handle.Address,
			Authority: handle.Authority,
			Payload:   payload,
			Verify:    !split,
		},
	)
	if err != nil {
		return nil, errorsmod.Wrap(ErrContextCreation, err.Error())
	}
	if _, err := o.backend.Submit(ctx, ixs, []common.Signer{signer}, o.payer); err != nil {
		return nil, errorsmod.Wrapf(ErrContextCreation, "%s context: %s", kind, err)
	}

	if split {
		ixs, err := types.NewInstructions(&types.MsgVerifyProof{Context: handle.Address, Authority: handle.Authority})
		if err != nil {
			return nil, errorsmod.Wrap(ErrContextCreation, err.Error())
		}
		if _, err := o.backend.Submit(ctx, ixs, []common.Signer{authority}, o.payer); err != nil {
			openErr := errorsmod.Wrapf(ErrContextCreation, "verify %s context: %s", kind, err)
			if closeErr := o.Close(context.WithoutCancel(ctx), handle, authority); closeErr != nil {
				return nil, multierror.Append(openErr, closeErr)
			}
			return nil, openErr
		}
	}

	o.logger.Debug().
		Str("context", handle.Address.String()).
		Str("kind", kind.String()).
		Bool("split", split).
		Msg("proof context opened")
	o.observer.Observe(Event{Kind: EventContextOpened, ProofKind: kind, Context: handle.Address})
	return handle, nil
}

// OpenProof encodes data and opens a context for it.
func (o *Orchestrator) OpenProof(ctx context.Context, data zk.ProofData, authority common.Signer, split bool) (*ContextHandle, error) {
	payload, err := zk.EncodeProofData(data)
	if err != nil {
		return nil, errorsmod.Wrap(ErrContextCreation, err.Error())
	}
	return o.Open(ctx, data.Kind(), payload, authority, split)
}

// Close deletes the context and returns its rent to the payer.
func (o *Orchestrator) Close(ctx context.Context, handle *ContextHandle, authority common.Signer) error {
	start := time.Now()
	ixs, err := types.NewInstructions(&types.MsgCloseProofContext{
		Context:     handle.Address,
		Authority:   authority.Address(),
		Destination: o.payer.Address(),
	})
	if err != nil {
		return errorsmod.Wrap(ErrContextClose, err.Error())
	}
	if _, err := o.backend.Submit(ctx, ixs, []common.Signer{authority}, o.payer); err != nil {
		return errorsmod.Wrapf(ErrContextClose, "%s context %s: %s", handle.Kind, handle.Address, err)
	}
	o.observer.Observe(Event{
		Kind:      EventContextClosed,
		ProofKind: handle.Kind,
		Context:   handle.Address,
		Elapsed:   time.Since(start),
	})
	return nil
}

// CloseAll closes every handle, attempting all of them even when some fail.
func (o *Orchestrator) CloseAll(ctx context.Context, handles []*ContextHandle, authority common.Signer) error {
	var result *multierror.Error
	for _, h := range handles {
		if h == nil {
			continue
		}
		if err := o.Close(ctx, h, authority); err != nil {
			o.logger.Error().Err(err).Str("context", h.Address.String()).Msg("fail to close proof context")
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
