package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rickgao/payments-engine/internal/model"
)

func TestBook_OpensAccountOnFirstDeposit(t *testing.T) {
	b := NewBook(RejectAll)

	if err := b.Apply(model.NewDeposit(1, 5, dec("1.2345"))); err != nil {
		t.Fatalf("Apply deposit: %v", err)
	}
	acc, ok := b.Account(5)
	if !ok {
		t.Fatal("account 5 not created")
	}
	assertBalances(t, acc.Snapshot(), "1.2345", "0", "1.2345", false)
}

func TestBook_UnknownClientRejected(t *testing.T) {
	for _, ev := range []model.Event{
		model.NewWithdrawal(1, 9, dec("1")),
		model.NewDispute(1, 9),
		model.NewResolve(1, 9),
		model.NewChargeback(1, 9),
	} {
		t.Run(ev.Kind.String(), func(t *testing.T) {
			b := NewBook(RejectAll)
			err := b.Apply(ev)
			if !errors.Is(err, ErrAccountNotFound) {
				t.Fatalf("Apply() error = %v, want %v", err, ErrAccountNotFound)
			}
			if b.Len() != 0 {
				t.Errorf("Len() = %d, want 0", b.Len())
			}
		})
	}
}

func TestBook_RejectErrorCarriesContext(t *testing.T) {
	b := NewBook(RejectAll)
	_ = b.Apply(model.NewDeposit(1, 3, dec("10")))

	err := b.Apply(model.NewWithdrawal(2, 3, dec("11")))

	var rej *RejectError
	if !errors.As(err, &rej) {
		t.Fatalf("error %v is not a *RejectError", err)
	}
	if rej.ClientID != 3 || rej.TxID != 2 || rej.Kind != model.KindWithdrawal {
		t.Errorf("RejectError = %+v", rej)
	}
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("errors.Is(err, ErrInsufficientFunds) = false for %v", err)
	}
	want := "withdrawal tx 2 for client 3 rejected: insufficient funds"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestBook_FailedFirstDepositDoesNotOpenAccount(t *testing.T) {
	b := NewBook(RejectAll)
	err := b.Apply(model.Event{Kind: model.KindDeposit, TransactionID: 1, ClientID: 4})
	if !errors.Is(err, ErrMissingAmount) {
		t.Fatalf("Apply() error = %v, want %v", err, ErrMissingAmount)
	}
	if _, ok := b.Account(4); ok {
		t.Error("account 4 created by a rejected deposit")
	}
}

func TestBook_SnapshotsSortedByClient(t *testing.T) {
	b := NewBook(RejectAll)
	for _, client := range []uint64{30, 1, 12, 7} {
		_ = b.Apply(model.NewDeposit(client*10, client, dec("1")))
	}

	snaps := b.Snapshots()
	if len(snaps) != 4 {
		t.Fatalf("len(Snapshots()) = %d, want 4", len(snaps))
	}
	want := []uint64{1, 7, 12, 30}
	for i, s := range snaps {
		if s.ClientID != want[i] {
			t.Errorf("Snapshots()[%d].ClientID = %d, want %d", i, s.ClientID, want[i])
		}
	}
}

func TestBook_MixedDepositsAndWithdrawals(t *testing.T) {
	b := NewBook(RejectAll)
	for i := uint64(1); i < 100; i++ {
		amount := decimal.NewFromInt(int64(i))
		client := i%10 + 1
		if i%3 == 0 {
			_ = b.Apply(model.NewWithdrawal(i, client, amount))
		} else {
			_ = b.Apply(model.NewDeposit(i, client, amount))
		}
	}

	if b.Len() != 10 {
		t.Fatalf("Len() = %d, want 10", b.Len())
	}
	for _, s := range b.Snapshots() {
		if !s.Total.Equal(s.Available.Add(s.Held)) {
			t.Errorf("client %d: total %s != available %s + held %s", s.ClientID, s.Total, s.Available, s.Held)
		}
		if s.Available.IsNegative() {
			t.Errorf("client %d: available %s < 0", s.ClientID, s.Available)
		}
	}
}

func TestParseLockPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    LockPolicy
		wantErr bool
	}{
		{in: "", want: RejectAll},
		{in: "reject_all", want: RejectAll},
		{in: "block_disputes", want: BlockDisputes},
		{in: "lenient", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseLockPolicy(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseLockPolicy(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseLockPolicy(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
		if got.String() != tt.want.String() {
			t.Errorf("String() = %q, want %q", got.String(), tt.want.String())
		}
	}
}
