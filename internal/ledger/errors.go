package ledger

import (
	"errors"
	"fmt"

	"github.com/rickgao/payments-engine/internal/model"
)

// Domain errors. A rejected event never changes account state.
var (
	ErrDuplicateTransaction = errors.New("duplicate transaction")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrDisputeNotFound      = errors.New("dispute not found")
	ErrAlreadyDisputed      = errors.New("transaction already disputed")
	ErrAccountLocked        = errors.New("account locked")
	ErrAccountNotFound      = errors.New("account not found")
	ErrMissingAmount        = errors.New("missing amount")
	ErrNegativeAmount       = errors.New("negative amount")
	ErrUnknownKind          = errors.New("unknown event kind")
)

// RejectError describes an event the ledger refused to apply.
type RejectError struct {
	ClientID uint64
	TxID     uint64
	Kind     model.Kind
	Err      error
}

func (e *RejectError) Error() string {
	return fmt.Sprintf("%s tx %d for client %d rejected: %v", e.Kind, e.TxID, e.ClientID, e.Err)
}

func (e *RejectError) Unwrap() error {
	return e.Err
}

func reject(ev model.Event, err error) error {
	return &RejectError{ClientID: ev.ClientID, TxID: ev.TransactionID, Kind: ev.Kind, Err: err}
}
