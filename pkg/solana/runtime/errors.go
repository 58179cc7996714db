package runtime

import "errors"

// Instruction errors, mirroring the error keys the ledger reports for a
// failed instruction.
//
// Reference: https://github.com/solana-labs/solana/blob/4e2754341514cd181ae3f373cc2548bd22e918b8/sdk/program/src/instruction.rs#L23
var (
	ErrMissingRequiredSignature = errors.New("missing required signature")
	ErrNotEnoughAccountKeys     = errors.New("not enough account keys")
	ErrInvalidArgument          = errors.New("invalid argument")
	ErrInsufficientFunds        = errors.New("insufficient funds")
	ErrAccountAlreadyInUse      = errors.New("account already in use")
	ErrReadonlyAccount          = errors.New("account is not writable")
)
