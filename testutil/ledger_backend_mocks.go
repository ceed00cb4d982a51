package testutil

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"

	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/ledger"
	"github.com/btcq-org/ctoken/x/ctoken/types"
)

type MockLedgerBackendRecorder struct {
	mock *MockLedgerBackend
}
type MockLedgerBackend struct {
	ctrl     *gomock.Controller
	recorder *MockLedgerBackendRecorder
}

var _ ledger.Backend = &MockLedgerBackend{}

func NewMockLedgerBackend(ctrl *gomock.Controller) *MockLedgerBackend {
	mock := &MockLedgerBackend{ctrl: ctrl}
	mock.recorder = &MockLedgerBackendRecorder{mock: mock}
	return mock
}

func (m *MockLedgerBackend) EXPECT() *MockLedgerBackendRecorder {
	return m.recorder
}

// GetAccountState implements ledger.Backend.
func (m *MockLedgerBackend) GetAccountState(ctx context.Context, addr common.Address) (*types.Account, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetAccountState", ctx, addr)
	ret0, _ := ret[0].(*types.Account)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockLedgerBackendRecorder) GetAccountState(ctx, addr any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetAccountState", reflect.TypeOf((*MockLedgerBackend)(nil).GetAccountState), ctx, addr)
}

// Submit implements ledger.Backend.
func (m *MockLedgerBackend) Submit(ctx context.Context, instructions []types.Instruction, signers []common.Signer, feePayer common.Signer) (ledger.Signature, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Submit", ctx, instructions, signers, feePayer)
	ret0, _ := ret[0].(ledger.Signature)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockLedgerBackendRecorder) Submit(ctx, instructions, signers, feePayer any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Submit", reflect.TypeOf((*MockLedgerBackend)(nil).Submit), ctx, instructions, signers, feePayer)
}

// GetRentExemptMinimum implements ledger.Backend.
func (m *MockLedgerBackend) GetRentExemptMinimum(ctx context.Context, size uint64) (uint64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetRentExemptMinimum", ctx, size)
	ret0, _ := ret[0].(uint64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockLedgerBackendRecorder) GetRentExemptMinimum(ctx, size any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetRentExemptMinimum", reflect.TypeOf((*MockLedgerBackend)(nil).GetRentExemptMinimum), ctx, size)
}
