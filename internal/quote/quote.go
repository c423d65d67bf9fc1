// Package quote computes a sell price from a fare, fees and a margin.
package quote

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput is returned when there is nothing to price.
var ErrInvalidInput = errors.New("at least one of base fare, consolidator fee or internal fee must be nonzero")

var hundred = decimal.NewFromInt(100)

// Input holds the quote fields as the user typed them.
type Input struct {
	BaseFare        string `json:"base_fare"`
	ConsolidatorFee string `json:"consolidator_fee"`
	InternalFee     string `json:"internal_fee"`
	MarginPercent   string `json:"margin_percent"`
}

// Result is the full breakdown of a quote: the normalised inputs and the
// three computed amounts.
type Result struct {
	BaseFare        decimal.Decimal `json:"base_fare"`
	ConsolidatorFee decimal.Decimal `json:"consolidator_fee"`
	InternalFee     decimal.Decimal `json:"internal_fee"`
	MarginPercent   decimal.Decimal `json:"margin_percent"`

	Subtotal     decimal.Decimal `json:"subtotal"`
	MarginAmount decimal.Decimal `json:"margin_amount"`
	FinalPrice   decimal.Decimal `json:"final_price"`
}

// Calculate prices in. Blank or non-numeric fields count as zero; the call
// fails only when all three monetary fields are zero.
func Calculate(in Input) (*Result, error) {
	r := &Result{
		BaseFare:        Amount(in.BaseFare),
		ConsolidatorFee: Amount(in.ConsolidatorFee),
		InternalFee:     Amount(in.InternalFee),
		MarginPercent:   Amount(in.MarginPercent),
	}
	if r.BaseFare.IsZero() && r.ConsolidatorFee.IsZero() && r.InternalFee.IsZero() {
		return nil, ErrInvalidInput
	}

	r.Subtotal = r.BaseFare.Add(r.ConsolidatorFee).Add(r.InternalFee)
	r.MarginAmount = r.Subtotal.Mul(r.MarginPercent).Div(hundred)
	r.FinalPrice = r.Subtotal.Add(r.MarginAmount)
	return r, nil
}

// Amount parses a decimal amount, returning zero for blank or invalid text.
// A comma is accepted as the decimal separator.
func Amount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
