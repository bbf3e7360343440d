package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a chain asset such as "0.1000 EOS" parsed into a decimal value.
type Amount struct {
	Value     decimal.Decimal `json:"value"`
	Symbol    string          `json:"symbol"`
	Precision int32           `json:"precision"`
}

// ParseAmount parses "<decimal> <SYMBOL>". The precision is taken from the
// number of digits after the decimal point, as the chain does for asset strings.
func ParseAmount(s string) (Amount, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) != 2 {
		return Amount{}, fmt.Errorf("invalid amount %q: expected \"<value> <SYMBOL>\"", s)
	}

	number, symbol := fields[0], fields[1]
	if !validSymbol(symbol) {
		return Amount{}, fmt.Errorf("invalid amount %q: bad symbol %q", s, symbol)
	}

	value, err := decimal.NewFromString(number)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	var precision int32
	if idx := strings.IndexByte(number, '.'); idx >= 0 {
		precision = int32(len(number) - idx - 1)
	}

	return Amount{Value: value, Symbol: symbol, Precision: precision}, nil
}

// MustParseAmount is ParseAmount for constants and tests.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// WithPrecision re-expresses the amount with the given number of decimals.
// It fails if the value carries more significant decimals than allowed.
func (a Amount) WithPrecision(precision int32) (Amount, error) {
	if !a.Value.Equal(a.Value.Truncate(precision)) {
		return Amount{}, fmt.Errorf("amount %s has more than %d decimals", a, precision)
	}
	a.Precision = precision
	return a, nil
}

func (a Amount) IsZero() bool {
	return a.Value.IsZero()
}

func (a Amount) String() string {
	return a.Value.StringFixed(a.Precision) + " " + a.Symbol
}

func validSymbol(symbol string) bool {
	if len(symbol) == 0 || len(symbol) > 7 {
		return false
	}
	for _, r := range symbol {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
