package confidential

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/ledger"
	"github.com/btcq-org/ctoken/zk"
)

type EventKind uint8

const (
	EventOperationStarted EventKind = iota + 1
	EventProofGenerated
	EventContextOpened
	EventSubmitted
	EventSettled
	EventContextClosed
	EventFailed
)

func (k EventKind) String() string {
	switch k {
	case EventOperationStarted:
		return "operation_started"
	case EventProofGenerated:
		return "proof_generated"
	case EventContextOpened:
		return "context_opened"
	case EventSubmitted:
		return "submitted"
	case EventSettled:
		return "settled"
	case EventContextClosed:
		return "context_closed"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event reports progress of an operation. Fields that do not apply to the
// kind are zero.
type Event struct {
	Kind      EventKind
	Op        Operation
	State     State
	Account   common.Address
	Amount    uint64
	ProofKind zk.ProofKind
	Context   common.Address
	Signature ledger.Signature
	Elapsed   time.Duration
	Err       error
}

// Observer receives events synchronously, it must not block.
type Observer interface {
	Observe(Event)
}

type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) { f(e) }

type multiObserver []Observer

func (m multiObserver) Observe(e Event) {
	for _, o := range m {
		o.Observe(e)
	}
}

// NewMultiObserver fans events out to every observer.
func NewMultiObserver(observers ...Observer) Observer {
	return multiObserver(observers)
}

type noopObserver struct{}

func (noopObserver) Observe(Event) {}

// LogObserver writes events to a zerolog logger.
type LogObserver struct {
	logger zerolog.Logger
}

func NewLogObserver(logger zerolog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) Observe(e Event) {
	ev := o.logger.Info()
	if e.Kind == EventFailed {
		ev = o.logger.Error().Err(e.Err)
	}
	ev = ev.Str("op", e.Op.String()).Str("state", e.State.String())
	if !e.Account.IsEmpty() {
		ev = ev.Str("account", e.Account.String())
	}
	if e.Amount > 0 {
		ev = ev.Uint64("amount", e.Amount)
	}
	if e.ProofKind != zk.ProofKindUnknown {
		ev = ev.Str("proof", e.ProofKind.String())
	}
	if !e.Context.IsEmpty() {
		ev = ev.Str("context", e.Context.String())
	}
	if !e.Signature.IsEmpty() {
		ev = ev.Str("tx", e.Signature.String())
	}
	if e.Elapsed > 0 {
		ev = ev.Dur("elapsed", e.Elapsed)
	}
	ev.Msg(e.Kind.String())
}
