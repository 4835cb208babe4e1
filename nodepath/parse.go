package nodepath

import (
	"fmt"
	"math/big"
	"strings"
	"unicode"

	"github.com/shibukawa/puzzlegen"
)

// Sentinel errors
var (
	ErrInvalidAddress   = fmt.Errorf("%w: environment address must be a positive integer", puzzlegen.ErrInvalidArgument)
	ErrInvalidDirection = fmt.Errorf("%w: unknown path direction", puzzlegen.ErrInvalidArgument)
	ErrNegativeIndex    = fmt.Errorf("%w: argument index must not be negative", puzzlegen.ErrInvalidArgument)
)

// FromArgs builds a path in argument-index notation. Each index n takes the
// rest component n times and then the first component, so FromArgs(0) is the
// first argument and FromArgs(1, 0) is the first element of the second argument.
func FromArgs(indices ...int) (Path, error) {
	var dirs []Direction

	for _, n := range indices {
		if n < 0 {
			return Path{}, fmt.Errorf("%w: %d", ErrNegativeIndex, n)
		}

		for range n {
			dirs = append(dirs, Right)
		}

		dirs = append(dirs, Left)
	}

	return Path{dirs: dirs}, nil
}

// Parse reads a path in textual notation. Steps are L/R, f/r or first/rest,
// separated by whitespace, commas or dots, or written compactly as "LRRL".
// An empty string and "." are the root.
func Parse(text string) (Path, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == '.'
	})

	var dirs []Direction

	for _, field := range fields {
		switch strings.ToLower(field) {
		case "first":
			dirs = append(dirs, Left)
			continue
		case "rest":
			dirs = append(dirs, Right)
			continue
		}

		for _, r := range field {
			switch r {
			case 'L', 'l', 'f', 'F':
				dirs = append(dirs, Left)
			case 'R', 'r':
				dirs = append(dirs, Right)
			default:
				return Path{}, fmt.Errorf("%w: %q in %q", ErrInvalidDirection, r, text)
			}
		}
	}

	return Path{dirs: dirs}, nil
}

// ParseAddress reads an address written in base 10 or as 0x-prefixed hex.
func ParseAddress(text string) (Address, error) {
	text = strings.TrimSpace(text)

	base := 10
	digits := text

	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		base = 16
		digits = digits[2:]
	}

	v, ok := new(big.Int).SetString(digits, base)
	if !ok || digits == "" || strings.HasPrefix(digits, "-") || strings.HasPrefix(digits, "+") {
		return Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, text)
	}

	return FromBigInt(v)
}

// FromBigInt validates v as an address.
func FromBigInt(v *big.Int) (Address, error) {
	if v == nil || v.Sign() <= 0 {
		return Address{}, ErrInvalidAddress
	}

	return fromBig(v), nil
}

// FromUint64 validates v as an address.
func FromUint64(v uint64) (Address, error) {
	if v == 0 {
		return Address{}, ErrInvalidAddress
	}

	return FromBigInt(new(big.Int).SetUint64(v))
}
