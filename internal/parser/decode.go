package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rickgao/payments-engine/internal/model"
)

// Separator is the field delimiter of input records.
const Separator = ','

var (
	errMissingAmount  = errors.New("missing amount")
	errNegativeAmount = errors.New("negative amount")
)

// rawLine is an undecoded input line and its 1-based position in the file.
type rawLine struct {
	num  int
	text string
}

// decodeRecord decodes one input line into an Event.
func decodeRecord(line string) (model.Event, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = Separator
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	fields, err := r.Read()
	if err != nil {
		return model.Event{}, fmt.Errorf("parse record: %w", err)
	}
	if len(fields) < 3 || len(fields) > 4 {
		return model.Event{}, fmt.Errorf("expected 3 or 4 fields, got %d", len(fields))
	}

	kind, err := model.ParseKind(fields[0])
	if err != nil {
		return model.Event{}, err
	}

	tx, err := strconv.ParseUint(strings.TrimSpace(fields[1]), 10, 64)
	if err != nil {
		return model.Event{}, fmt.Errorf("parse tx: %w", err)
	}

	client, err := strconv.ParseUint(strings.TrimSpace(fields[2]), 10, 64)
	if err != nil {
		return model.Event{}, fmt.Errorf("parse client: %w", err)
	}

	ev := model.Event{Kind: kind, TransactionID: tx, ClientID: client}
	if !kind.HasAmount() {
		return ev, nil
	}

	if len(fields) < 4 || strings.TrimSpace(fields[3]) == "" {
		return model.Event{}, errMissingAmount
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(fields[3]))
	if err != nil {
		return model.Event{}, fmt.Errorf("parse amount: %w", err)
	}
	if amount.IsNegative() {
		return model.Event{}, errNegativeAmount
	}
	ev.Amount = decimal.NewNullDecimal(amount)

	return ev, nil
}
