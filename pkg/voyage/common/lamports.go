package common

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	LamportsPerSol = 1_000_000_000

	lamportDecimals = 9
)

// SolToLamports converts a SOL amount to lamports, rounding to the nearest
// lamport.
func SolToLamports(sol float64) (uint64, error) {
	if math.IsNaN(sol) || math.IsInf(sol, 0) {
		return 0, NewValidationError("price", "must be a finite number")
	}
	if sol < 0 {
		return 0, NewValidationError("price", "must not be negative")
	}

	lamports := math.Round(sol * LamportsPerSol)
	if lamports >= math.MaxUint64 {
		return 0, NewValidationError("price", "exceeds the maximum lamport amount")
	}
	return uint64(lamports), nil
}

func LamportsToSol(lamports uint64) float64 {
	whole := lamports / LamportsPerSol
	frac := lamports % LamportsPerSol
	return float64(whole) + float64(frac)/LamportsPerSol
}

// StrToLamports parses a decimal SOL amount such as "1.5" without going
// through floating point. More than nine fractional digits is an error.
func StrToLamports(amount string) (uint64, error) {
	amount = strings.TrimSpace(amount)
	if len(amount) == 0 {
		return 0, NewValidationError("price", "is required")
	}

	whole, frac, hasFrac := strings.Cut(amount, ".")
	if len(whole) == 0 && (!hasFrac || len(frac) == 0) {
		return 0, NewValidationError("price", "%q is not a number", amount)
	}
	if len(frac) > lamportDecimals {
		return 0, NewValidationError("price", "more than %d decimal places", lamportDecimals)
	}
	if !isDigits(whole) || !isDigits(frac) {
		return 0, NewValidationError("price", "%q is not a number", amount)
	}

	var wholeLamports uint64
	if len(whole) > 0 {
		parsed, err := strconv.ParseUint(whole, 10, 64)
		if err != nil {
			return 0, NewValidationError("price", "%q is out of range", amount)
		}
		if parsed > math.MaxUint64/LamportsPerSol {
			return 0, NewValidationError("price", "%q is out of range", amount)
		}
		wholeLamports = parsed * LamportsPerSol
	}

	var fracLamports uint64
	if len(frac) > 0 {
		padded := frac + strings.Repeat("0", lamportDecimals-len(frac))
		parsed, err := strconv.ParseUint(padded, 10, 64)
		if err != nil {
			return 0, errors.Wrap(err, "unexpected fraction")
		}
		fracLamports = parsed
	}

	if wholeLamports > math.MaxUint64-fracLamports {
		return 0, NewValidationError("price", "%q is out of range", amount)
	}
	return wholeLamports + fracLamports, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
