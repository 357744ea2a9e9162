package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/rickgao/payments-engine/internal/model"
)

// Snapshot is a read-only view of an account's balances.
type Snapshot struct {
	ClientID  uint64
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}

// Account holds one client's balances and dispute history.
//
// total == available + held after every operation, and a failed operation
// leaves the account exactly as it was.
type Account struct {
	clientID uint64
	policy   LockPolicy

	available decimal.Decimal
	held      decimal.Decimal
	total     decimal.Decimal
	locked    bool

	// settled maps deposit and withdrawal ids to their amount.
	settled     map[uint64]decimal.Decimal
	open        map[uint64]struct{}
	resolved    map[uint64]struct{}
	chargedBack map[uint64]struct{}
}

// NewAccount creates an empty, unlocked account.
func NewAccount(clientID uint64, policy LockPolicy) *Account {
	return &Account{
		clientID:    clientID,
		policy:      policy,
		settled:     make(map[uint64]decimal.Decimal),
		open:        make(map[uint64]struct{}),
		resolved:    make(map[uint64]struct{}),
		chargedBack: make(map[uint64]struct{}),
	}
}

// ClientID returns the owning client id.
func (a *Account) ClientID() uint64 { return a.clientID }

// Locked reports whether a chargeback has locked the account.
func (a *Account) Locked() bool { return a.locked }

// Snapshot returns the current balances.
func (a *Account) Snapshot() Snapshot {
	return Snapshot{
		ClientID:  a.clientID,
		Available: a.available,
		Held:      a.held,
		Total:     a.total,
		Locked:    a.locked,
	}
}

// Settled returns the amount of a settled transaction.
func (a *Account) Settled(tx uint64) (decimal.Decimal, bool) {
	amt, ok := a.settled[tx]
	return amt, ok
}

// Disputed reports whether tx has an open dispute.
func (a *Account) Disputed(tx uint64) bool {
	_, ok := a.open[tx]
	return ok
}

// Apply runs the operation the event requests. The returned error is one of
// the package sentinels; Book wraps it with event context.
func (a *Account) Apply(ev model.Event) error {
	switch ev.Kind {
	case model.KindDeposit:
		if !ev.Amount.Valid {
			return ErrMissingAmount
		}
		return a.Deposit(ev.TransactionID, ev.Amount.Decimal)
	case model.KindWithdrawal:
		if !ev.Amount.Valid {
			return ErrMissingAmount
		}
		return a.Withdraw(ev.TransactionID, ev.Amount.Decimal)
	case model.KindDispute:
		return a.Dispute(ev.TransactionID)
	case model.KindResolve:
		return a.Resolve(ev.TransactionID)
	case model.KindChargeback:
		return a.Chargeback(ev.TransactionID)
	default:
		return ErrUnknownKind
	}
}

// Deposit credits amount to available funds.
func (a *Account) Deposit(tx uint64, amount decimal.Decimal) error {
	if a.locked && a.policy == RejectAll {
		return ErrAccountLocked
	}
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	if _, ok := a.settled[tx]; ok {
		return ErrDuplicateTransaction
	}

	a.available = a.available.Add(amount)
	a.total = a.total.Add(amount)
	a.settled[tx] = amount
	return nil
}

// Withdraw debits amount from available funds.
func (a *Account) Withdraw(tx uint64, amount decimal.Decimal) error {
	if a.locked && a.policy == RejectAll {
		return ErrAccountLocked
	}
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	if _, ok := a.settled[tx]; ok {
		return ErrDuplicateTransaction
	}
	if amount.GreaterThan(a.available) {
		return ErrInsufficientFunds
	}

	a.available = a.available.Sub(amount)
	a.total = a.total.Sub(amount)
	a.settled[tx] = amount
	return nil
}

// Dispute moves the settled amount of tx from available to held.
func (a *Account) Dispute(tx uint64) error {
	if a.locked {
		return ErrAccountLocked
	}
	amount, ok := a.settled[tx]
	if !ok {
		return ErrTransactionNotFound
	}
	if _, ok := a.open[tx]; ok {
		return ErrAlreadyDisputed
	}
	if _, ok := a.chargedBack[tx]; ok {
		return ErrAlreadyDisputed
	}
	if a.available.LessThan(amount) {
		return ErrInsufficientFunds
	}

	a.available = a.available.Sub(amount)
	a.held = a.held.Add(amount)
	delete(a.resolved, tx)
	a.open[tx] = struct{}{}
	return nil
}

// Resolve releases a disputed amount back to available funds.
func (a *Account) Resolve(tx uint64) error {
	if a.locked && a.policy == RejectAll {
		return ErrAccountLocked
	}
	if _, ok := a.open[tx]; !ok {
		return ErrDisputeNotFound
	}
	amount := a.settled[tx]

	a.held = a.held.Sub(amount)
	a.available = a.available.Add(amount)
	delete(a.open, tx)
	a.resolved[tx] = struct{}{}
	return nil
}

// Chargeback removes a disputed amount from the account and locks it.
func (a *Account) Chargeback(tx uint64) error {
	if a.locked && a.policy == RejectAll {
		return ErrAccountLocked
	}
	if _, ok := a.open[tx]; !ok {
		return ErrDisputeNotFound
	}
	amount := a.settled[tx]

	a.held = a.held.Sub(amount)
	a.total = a.total.Sub(amount)
	a.locked = true
	delete(a.open, tx)
	a.chargedBack[tx] = struct{}{}
	return nil
}
