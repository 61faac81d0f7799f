package goal

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrGoalNotFound    = errors.New("goal not found")
	ErrInvalidArgument = errors.New("invalid argument")

	ErrLedgerMismatch = errors.New("balance does not match contribution ledger")
)

var (
	ErrInvalidAmount            = fmt.Errorf("%w: amount must be greater than zero", ErrInvalidArgument)
	ErrInvalidContributionType  = fmt.Errorf("%w: type must be deposit or withdrawal", ErrInvalidArgument)
	ErrDepositExceedsTarget     = fmt.Errorf("%w: deposit exceeds target", ErrInvalidArgument)
	ErrWithdrawalExceedsBalance = fmt.Errorf("%w: withdrawal exceeds balance", ErrInvalidArgument)
	ErrEmptyPatch               = fmt.Errorf("%w: no fields to update", ErrInvalidArgument)
	ErrNameRequired             = fmt.Errorf("%w: name is required", ErrInvalidArgument)
	ErrNegativeTarget           = fmt.Errorf("%w: targetValue must not be negative", ErrInvalidArgument)
	ErrTargetBelowBalance       = fmt.Errorf("%w: targetValue is below the current balance", ErrInvalidArgument)
	ErrBalanceOutOfBounds       = fmt.Errorf("%w: balance out of bounds", ErrInvalidArgument)
)

// clientMessage strips the kind prefix from invalid-argument errors.
func clientMessage(err error) string {
	return strings.TrimPrefix(err.Error(), ErrInvalidArgument.Error()+": ")
}
