package ledger

import (
	"sort"

	"github.com/rickgao/payments-engine/internal/model"
)

// Book is the set of accounts owned by one worker.
type Book struct {
	policy   LockPolicy
	accounts map[uint64]*Account
}

// NewBook creates an empty partition.
func NewBook(policy LockPolicy) *Book {
	return &Book{
		policy:   policy,
		accounts: make(map[uint64]*Account),
	}
}

// Apply applies ev to its client's account. The account is opened on the
// first deposit for an unknown client; any other kind for an unknown client
// is rejected with ErrAccountNotFound. Failures are returned as *RejectError.
func (b *Book) Apply(ev model.Event) error {
	acc, ok := b.accounts[ev.ClientID]
	if !ok {
		if ev.Kind != model.KindDeposit {
			return reject(ev, ErrAccountNotFound)
		}
		acc = NewAccount(ev.ClientID, b.policy)
		if err := acc.Apply(ev); err != nil {
			return reject(ev, err)
		}
		b.accounts[ev.ClientID] = acc
		return nil
	}

	if err := acc.Apply(ev); err != nil {
		return reject(ev, err)
	}
	return nil
}

// Account returns the account for a client, if one exists.
func (b *Book) Account(clientID uint64) (*Account, bool) {
	acc, ok := b.accounts[clientID]
	return acc, ok
}

// Len returns the number of accounts.
func (b *Book) Len() int {
	return len(b.accounts)
}

// Snapshots returns every account's balances ordered by client id.
func (b *Book) Snapshots() []Snapshot {
	out := make([]Snapshot, 0, len(b.accounts))
	for _, acc := range b.accounts {
		out = append(out, acc.Snapshot())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ClientID < out[j].ClientID
	})
	return out
}
