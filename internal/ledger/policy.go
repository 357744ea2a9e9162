package ledger

import "fmt"

// LockPolicy decides which operations a locked account still accepts.
type LockPolicy uint8

const (
	// RejectAll refuses every operation once the account is locked.
	RejectAll LockPolicy = iota

	// BlockDisputes refuses only new disputes. Deposits, withdrawals and the
	// settlement of disputes opened before the lock still apply.
	BlockDisputes
)

func (p LockPolicy) String() string {
	switch p {
	case RejectAll:
		return "reject_all"
	case BlockDisputes:
		return "block_disputes"
	default:
		return fmt.Sprintf("lock_policy(%d)", uint8(p))
	}
}

// ParseLockPolicy maps a config value to a LockPolicy. Empty selects RejectAll.
func ParseLockPolicy(s string) (LockPolicy, error) {
	switch s {
	case "", "reject_all":
		return RejectAll, nil
	case "block_disputes":
		return BlockDisputes, nil
	default:
		return 0, fmt.Errorf("unknown lock policy %q", s)
	}
}
