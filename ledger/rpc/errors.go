package rpc

import (
	"errors"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
)

// ledgerErrorCode is the JSON-RPC error code of every ledger failure; the
// registered error travels in the error data.
const ledgerErrorCode = -32000

type errorData struct {
	Codespace string `json:"codespace"`
	Code      uint32 `json:"code"`
}

type ledgerError struct {
	msg  string
	data errorData
}

var (
	_ gethrpc.Error     = (*ledgerError)(nil)
	_ gethrpc.DataError = (*ledgerError)(nil)
)

func (e *ledgerError) Error() string          { return e.msg }
func (e *ledgerError) ErrorCode() int         { return ledgerErrorCode }
func (e *ledgerError) ErrorData() interface{} { return e.data }

// toRPCError keeps the codespace and code of registered errors so the client
// can rebuild them.
func toRPCError(err error) error {
	if err == nil {
		return nil
	}
	codespace, code, msg := errorsmod.ABCIInfo(err, false)
	return &ledgerError{msg: msg, data: errorData{Codespace: codespace, Code: code}}
}

// fromRPCError is the inverse of toRPCError. Transport errors are returned
// unchanged.
func fromRPCError(err error) error {
	if err == nil {
		return nil
	}
	var de gethrpc.DataError
	if !errors.As(err, &de) {
		return err
	}
	fields, ok := de.ErrorData().(map[string]interface{})
	if !ok {
		return err
	}
	codespace, _ := fields["codespace"].(string)
	code, _ := fields["code"].(float64)
	if codespace == "" || code == 0 {
		return err
	}
	if code > float64(^uint32(0)) {
		return fmt.Errorf("invalid error code %v: %w", code, err)
	}
	return errorsmod.ABCIError(codespace, uint32(code), de.Error())
}
