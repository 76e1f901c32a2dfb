package utils

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
	"github.com/tedchain/inputparser/types"
)

var coinMultiplier = decimal.New(1, types.CoinDecimals)

// ValidateAmount checks if an amount string is a valid non-negative decimal
func ValidateAmount(amount string) (*decimal.Decimal, error) {
	if amount == "" {
		return nil, fmt.Errorf("amount cannot be empty")
	}

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount format: %w", err)
	}

	if dec.IsNegative() {
		return nil, fmt.Errorf("amount cannot be negative")
	}

	return &dec, nil
}

// ParseCoins converts a decimal coin amount such as "1.5" into the smallest
// unit. More than CoinDecimals fractional digits and amounts above MaxMoney
// are rejected.
func ParseCoins(amount string) (int64, error) {
	dec, err := ValidateAmount(amount)
	if err != nil {
		return 0, err
	}

	units := dec.Mul(coinMultiplier)
	if !units.Equal(units.Truncate(0)) {
		return 0, fmt.Errorf("amount %s has more than %d decimal places", amount, types.CoinDecimals)
	}
	if units.GreaterThan(decimal.NewFromInt(types.MaxMoney)) {
		return 0, fmt.Errorf("amount %s exceeds maximum money", amount)
	}

	return units.IntPart(), nil
}

// FormatCoins renders a smallest-unit amount as whole.fraction with all
// fractional digits, e.g. 150000000 -> "1.50000000".
func FormatCoins(units int64) string {
	sign := ""
	abs := uint64(units)
	if units < 0 {
		sign = "-"
		abs = -abs
	}
	coin := uint64(types.Coin)
	return fmt.Sprintf("%s%d.%08d", sign, abs/coin, abs%coin)
}

var base58Pattern = regexp.MustCompile("^[" + Base58Alphabet + "]+$")

// IsBase58String reports whether s only uses the base58 alphabet.
func IsBase58String(s string) bool {
	return base58Pattern.MatchString(s)
}
