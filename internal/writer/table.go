package writer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/rickgao/payments-engine/internal/ledger"
)

// AmountPlaces is the number of decimal places printed for amounts.
const AmountPlaces = 4

const rowFormat = "%12s, %12s, %12s, %12s, %12s\n"

// TableWriter prints balances as a right-aligned comma separated table.
type TableWriter struct {
	mu  sync.Mutex
	out io.Writer
}

// NewTableWriter creates a TableWriter on out.
func NewTableWriter(out io.Writer) *TableWriter {
	return &TableWriter{out: out}
}

// Begin writes the header line.
func (t *TableWriter) Begin(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, err := fmt.Fprintf(t.out, rowFormat, "client", "available", "held", "total", "locked")
	return err
}

// Report writes one line per account in a single write so blocks from
// different workers never interleave.
func (t *TableWriter) Report(_ context.Context, _ int, accounts []ledger.Snapshot) error {
	if len(accounts) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, a := range accounts {
		fmt.Fprintf(&buf, rowFormat,
			strconv.FormatUint(a.ClientID, 10),
			a.Available.StringFixed(AmountPlaces),
			a.Held.StringFixed(AmountPlaces),
			a.Total.StringFixed(AmountPlaces),
			strconv.FormatBool(a.Locked),
		)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	_, err := t.out.Write(buf.Bytes())
	return err
}
