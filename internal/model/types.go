package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// Kind identifies the ledger operation an Event requests.
type Kind uint8

const (
	KindDeposit Kind = iota + 1
	KindWithdrawal
	KindDispute
	KindResolve
	KindChargeback
)

// Kinds returns every defined Kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindDeposit, KindWithdrawal, KindDispute, KindResolve, KindChargeback}
}

// String returns the wire name of the kind (e.g. "deposit").
func (k Kind) String() string {
	switch k {
	case KindDeposit:
		return "deposit"
	case KindWithdrawal:
		return "withdrawal"
	case KindDispute:
		return "dispute"
	case KindResolve:
		return "resolve"
	case KindChargeback:
		return "chargeback"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// HasAmount reports whether records of this kind carry an amount.
func (k Kind) HasAmount() bool {
	return k == KindDeposit || k == KindWithdrawal
}

// ParseKind maps a wire name to a Kind. Matching is case-insensitive and
// ignores surrounding whitespace.
func ParseKind(s string) (Kind, error) {
	folded := cases.Fold().String(strings.TrimSpace(s))
	for _, k := range Kinds() {
		if folded == k.String() {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown event type %q", s)
}

// Event is one decoded input record. Events are immutable once built.
type Event struct {
	Kind          Kind
	TransactionID uint64
	ClientID      uint64

	// Amount is valid only for deposits and withdrawals.
	Amount decimal.NullDecimal
}

// NewDeposit builds a deposit event.
func NewDeposit(tx, client uint64, amount decimal.Decimal) Event {
	return Event{Kind: KindDeposit, TransactionID: tx, ClientID: client, Amount: decimal.NewNullDecimal(amount)}
}

// NewWithdrawal builds a withdrawal event.
func NewWithdrawal(tx, client uint64, amount decimal.Decimal) Event {
	return Event{Kind: KindWithdrawal, TransactionID: tx, ClientID: client, Amount: decimal.NewNullDecimal(amount)}
}

// NewDispute builds a dispute event.
func NewDispute(tx, client uint64) Event {
	return Event{Kind: KindDispute, TransactionID: tx, ClientID: client}
}

// NewResolve builds a resolve event.
func NewResolve(tx, client uint64) Event {
	return Event{Kind: KindResolve, TransactionID: tx, ClientID: client}
}

// NewChargeback builds a chargeback event.
func NewChargeback(tx, client uint64) Event {
	return Event{Kind: KindChargeback, TransactionID: tx, ClientID: client}
}
