// Package validation marks errors caused by bad client input.
package validation

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Error is returned by Params.Validate methods. Handlers answer 400 with its text.
type Error struct {
	msg string
}

func (e *Error) Error() string {
	return e.msg
}

func New(msg string) error {
	return &Error{msg: msg}
}

// Is reports whether err, or any error it wraps, is a validation error.
func Is(err error) bool {
	var v *Error
	return errors.As(err, &v)
}

// Money columns are NUMERIC(14, 2).
const AmountScale = 2

var (
	maxAmount = decimal.New(1, 12)

	ErrAmountTooLarge   = New("amount must be less than 1000000000000")
	ErrAmountTooPrecise = New("amount must have at most 2 decimal places")
)

// Amount checks that d fits a money column without overflow or rounding.
func Amount(d decimal.Decimal) error {
	if d.Abs().GreaterThanOrEqual(maxAmount) {
		return ErrAmountTooLarge
	}
	if !d.Equal(d.Truncate(AmountScale)) {
		return ErrAmountTooPrecise
	}
	return nil
}
