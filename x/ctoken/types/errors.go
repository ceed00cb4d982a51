package types

import (
	errorsmod "cosmossdk.io/errors"
)

// x/ctoken module sentinel errors
var (
	ErrAccountNotFound               = errorsmod.Register(ModuleName, 2, "account not found")
	ErrAccountAlreadyExists          = errorsmod.Register(ModuleName, 3, "account already exists")
	ErrInvalidAccountKind            = errorsmod.Register(ModuleName, 4, "invalid account kind")
	ErrInsufficientLamports          = errorsmod.Register(ModuleName, 5, "insufficient lamports")
	ErrInsufficientRent              = errorsmod.Register(ModuleName, 6, "insufficient lamports for rent exemption")
	ErrAccountDataTooSmall           = errorsmod.Register(ModuleName, 7, "account data too small")
	ErrUnauthorized                  = errorsmod.Register(ModuleName, 8, "unauthorized")
	ErrMintMismatch                  = errorsmod.Register(ModuleName, 9, "mint mismatch")
	ErrDecimalsMismatch              = errorsmod.Register(ModuleName, 10, "decimals mismatch")
	ErrAccountNotConfigured          = errorsmod.Register(ModuleName, 11, "account not configured for confidential transfers")
	ErrAccountAlreadyConfigured      = errorsmod.Register(ModuleName, 12, "account already configured for confidential transfers")
	ErrAccountNotApproved            = errorsmod.Register(ModuleName, 13, "account not approved for confidential transfers")
	ErrConfidentialCreditsDisabled   = errorsmod.Register(ModuleName, 14, "confidential credits disabled")
	ErrMaximumPendingCreditsExceeded = errorsmod.Register(ModuleName, 15, "maximum pending balance credit counter exceeded")
	ErrPendingBalanceCounterMismatch = errorsmod.Register(ModuleName, 16, "pending balance credit counter mismatch")
	ErrInsufficientFunds             = errorsmod.Register(ModuleName, 17, "insufficient funds")
	ErrMaximumDepositAmountExceeded  = errorsmod.Register(ModuleName, 18, "maximum deposit amount exceeded")
	ErrInvalidProofContext           = errorsmod.Register(ModuleName, 19, "invalid proof context")
	ErrProofVerification             = errorsmod.Register(ModuleName, 20, "proof verification failed")
	ErrInvalidProofData              = errorsmod.Register(ModuleName, 21, "invalid proof data")
	ErrCiphertextMismatch            = errorsmod.Register(ModuleName, 22, "ciphertext does not match account state")
	ErrStatementMismatch             = errorsmod.Register(ModuleName, 23, "proof statements do not match")
	ErrProofNotVerified              = errorsmod.Register(ModuleName, 24, "proof context not verified")
	ErrProofAlreadyVerified          = errorsmod.Register(ModuleName, 25, "proof context already verified")
	ErrInvalidRequest                = errorsmod.Register(ModuleName, 26, "invalid request")
	ErrBlockhashNotFound             = errorsmod.Register(ModuleName, 27, "blockhash not found")
	ErrAlreadyProcessed              = errorsmod.Register(ModuleName, 28, "transaction already processed")
	ErrInvalidSignature              = errorsmod.Register(ModuleName, 29, "invalid signature")
	ErrTransactionTooLarge           = errorsmod.Register(ModuleName, 30, "transaction too large")
	ErrInsufficientFundsForFee       = errorsmod.Register(ModuleName, 31, "insufficient funds for fee")
	ErrOverflow                      = errorsmod.Register(ModuleName, 32, "arithmetic overflow")
	ErrMissingSigner                 = errorsmod.Register(ModuleName, 33, "missing required signature")
)
